// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/api/jsonrpc"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Generate and inspect signing keys",
}

var genKeyCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a new ed25519 key, optionally saving it to file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		key, err := auth.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if err := key.Bytes.Save(args[0]); err != nil {
				return err
			}
			utils.Outf("{{green}}saved key to:{{/}} %s\n", args[0])
		} else {
			utils.Outf("{{green}}private key:{{/}} %s\n", key.Bytes.ToHex())
		}
		utils.Outf("{{green}}address:{{/}} %s\n", key.Address)
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the signer",
	RunE: func(_ *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		utils.Outf("{{green}}address:{{/}} %s\n", key.Address)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the node is reachable and show its chain",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rpc := jsonrpc.NewJSONRPCClient(uri)
		if _, err := rpc.Ping(cmd.Context()); err != nil {
			return err
		}
		chainID, admin, err := rpc.Network(cmd.Context())
		if err != nil {
			return err
		}
		_, height, timestamp, err := rpc.Accepted(cmd.Context())
		if err != nil {
			return err
		}
		utils.Outf("{{green}}chainID:{{/}} %s\n", chainID)
		utils.Outf("{{green}}admin:{{/}} %s\n", admin)
		utils.Outf(
			"{{green}}height:{{/}} %d {{green}}timestamp:{{/}} %s\n",
			height,
			time.UnixMilli(timestamp).Format(time.RFC3339),
		)
		return nil
	},
}

var scriptCmd = &cobra.Command{
	Use:       "script <name> [args...]",
	Short:     "Run a read-only script and print its JSON value",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: scripts.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value json.RawMessage
		if err := jsonrpc.NewJSONRPCClient(uri).ExecuteScript(cmd.Context(), args[0], args[1:], &value); err != nil {
			return err
		}
		utils.Outf("{{green}}%s:{{/}} %s\n", args[0], value)
		return nil
	},
}
