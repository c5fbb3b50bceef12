// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/cli/prompt"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/storage"
	"github.com/ava-labs/philosophersvm/utils"
)

var ErrInvalidRoyalty = errors.New("royalty must be <cut>:<beneficiary>[:<description>]")

var royaltyArgs []string

var philosophersCmd = &cobra.Command{
	Use:   "philosophers",
	Short: "Manage philosopher collections",
}

var setupCollectionCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create an empty collection for the signer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		return printResult(newClient().SetupPhilosophersOnAccount(cmd.Context(), key))
	},
}

// parseRoyalty accepts "<cut>:<beneficiary>[:<description>]" where cut is a
// decimal share such as "0.05".
func parseRoyalty(s string) (storage.Royalty, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return storage.Royalty{}, fmt.Errorf("%w: %q", ErrInvalidRoyalty, s)
	}
	cut, err := utils.ParseBalance(parts[0])
	if err != nil {
		return storage.Royalty{}, fmt.Errorf("%w: %w", ErrInvalidRoyalty, err)
	}
	beneficiary, err := codec.ParseAddress(parts[1])
	if err != nil {
		return storage.Royalty{}, fmt.Errorf("%w: %w", ErrInvalidRoyalty, err)
	}
	r := storage.Royalty{Cut: cut, Beneficiary: beneficiary}
	if len(parts) == 3 {
		r.Description = parts[2]
	}
	return r, nil
}

var mintPhilosopherCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a philosopher (admin only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		to, err := prompt.Address("recipient")
		if err != nil {
			return err
		}
		kind, err := prompt.Kind("kind")
		if err != nil {
			return err
		}
		rarity, err := prompt.Rarity("rarity")
		if err != nil {
			return err
		}
		royalties := make([]storage.Royalty, 0, len(royaltyArgs))
		for _, arg := range royaltyArgs {
			r, err := parseRoyalty(arg)
			if err != nil {
				return err
			}
			royalties = append(royalties, r)
		}
		return printResult(newClient().MintPhilosopher(cmd.Context(), key, to, kind, rarity, royalties))
	},
}

func init() {
	mintPhilosopherCmd.Flags().StringArrayVar(
		&royaltyArgs,
		"royalty",
		nil,
		"royalty cut as <cut>:<beneficiary>[:<description>], may be repeated",
	)
}

var transferPhilosopherCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer a philosopher to another collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		to, err := prompt.Address("recipient")
		if err != nil {
			return err
		}
		id, err := prompt.Uint64("philosopher id")
		if err != nil {
			return err
		}
		return printResult(newClient().TransferPhilosopher(cmd.Context(), key, to, id))
	},
}

var showPhilosopherCmd = &cobra.Command{
	Use:   "show <owner> <id>",
	Short: "Show a philosopher held by owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := codec.ParseAddress(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return err
		}
		p, err := newClient().GetPhilosopher(cmd.Context(), owner, id)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}id:{{/}} %d {{yellow}}kind:{{/}} %s {{yellow}}rarity:{{/}} %s\n", p.ID, p.Kind, p.Rarity)
		for _, r := range p.Royalties {
			utils.Outf("  {{cyan}}royalty:{{/}} %s to %s %q\n", utils.FormatBalance(r.Cut), r.Beneficiary, r.Description)
		}
		return nil
	},
}

var collectionCmd = &cobra.Command{
	Use:   "collection <owner>",
	Short: "List the philosopher ids held by owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := codec.ParseAddress(args[0])
		if err != nil {
			return err
		}
		ids, err := newClient().GetPhilosopherIDs(cmd.Context(), owner)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}count:{{/}} %d {{yellow}}ids:{{/}} %v\n", len(ids), ids)
		return nil
	},
}

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show how many philosophers were ever minted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		supply, err := newClient().GetPhilosophersSupply(cmd.Context())
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}supply:{{/}} %d\n", supply)
		return nil
	},
}
