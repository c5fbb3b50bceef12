// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/api/ws"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/utils"
)

const (
	handshakeTimeout = 10 * time.Second
	pendingMessages  = 1_024
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream accepted blocks and the events they emitted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		client, err := ws.NewWebSocketClient(uri, handshakeTimeout, pendingMessages, units.MiB)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.RegisterBlocks(); err != nil {
			return err
		}
		utils.Outf("{{green}}watching for new blocks on %s{{/}}\n", uri)
		for {
			blk, err := client.ListenBlock(ctx, registry.Parser)
			if err != nil {
				return err
			}
			utils.Outf(
				"{{green}}height:{{/}} %d {{green}}txs:{{/}} %d {{green}}id:{{/}} %s\n",
				blk.Block.Height,
				len(blk.Block.Txs),
				blk.Block.ID(),
			)
			for i, tx := range blk.Block.Txs {
				result := blk.Results[i]
				if !result.Success {
					utils.Outf("  {{red}}%s reverted:{{/}} %s\n", tx.ID(), result.Error)
					continue
				}
				utils.Outf("  {{cyan}}%s{{/}} by %s\n", tx.ID(), tx.Actor())
				events, err := result.ParseEvents(registry.Parser)
				if err != nil {
					return err
				}
				for _, event := range events {
					printEvent(event)
				}
			}
		}
	},
}
