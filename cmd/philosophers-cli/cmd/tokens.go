// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/cli/prompt"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/utils"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Manage the payment token",
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the balance of address (the signer by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr codec.Address
		if len(args) == 1 {
			parsed, err := codec.ParseAddress(args[0])
			if err != nil {
				return err
			}
			addr = parsed
		} else {
			key, err := signer()
			if err != nil {
				return err
			}
			addr = key.Address
		}
		balance, err := newClient().GetBalance(cmd.Context(), addr)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %s\n", utils.FormatBalance(balance))
		return nil
	},
}

var mintTokensCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint payment tokens (admin only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		to, err := prompt.Address("recipient")
		if err != nil {
			return err
		}
		amount, err := prompt.Amount("amount", actions.MaxPrice)
		if err != nil {
			return err
		}
		return printResult(newClient().MintTokens(cmd.Context(), key, to, amount))
	},
}

var transferTokensCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Send payment tokens to another account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		cli := newClient()
		balance, err := cli.GetBalance(cmd.Context(), key.Address)
		if err != nil {
			return err
		}
		if balance == 0 {
			utils.Outf("{{red}}balance:{{/}} 0\n")
			utils.Outf("{{red}}please send funds to %s...exiting{{/}}\n", key.Address)
			return nil
		}
		utils.Outf("{{yellow}}balance:{{/}} %s\n", utils.FormatBalance(balance))
		to, err := prompt.Address("recipient")
		if err != nil {
			return err
		}
		amount, err := prompt.Amount("amount", balance)
		if err != nil {
			return err
		}
		cont, err := prompt.Continue()
		if err != nil || !cont {
			return err
		}
		return printResult(cli.Send(cmd.Context(), key, &actions.Transfer{To: to, Value: amount}))
	},
}
