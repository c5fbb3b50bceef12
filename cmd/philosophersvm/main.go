// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "philosophersvm" runs a single philosophersvm node.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/node"
	"github.com/ava-labs/philosophersvm/utils"
)

var (
	configFile   string
	adminKey     string
	genesisFile  string
	listenAddr   string
	allocations  []string
	genesisAdmin string

	rootCmd = &cobra.Command{
		Use:          node.Name,
		Short:        "PhilosophersVM node",
		Version:      consts.Version.String(),
		SilenceUsage: true,
		RunE:         runFunc,
	}

	genesisCmd = &cobra.Command{
		Use:   "genesis <file>",
		Short: "Write a default genesis file",
		Args:  cobra.ExactArgs(1),
		RunE:  genesisFunc,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (.json, .yaml or .yml)")
	rootCmd.Flags().StringVar(&adminKey, "admin-key", "", "hex encoded ed25519 key of the registry admin")
	rootCmd.Flags().StringVar(&genesisFile, "genesis-file", "", "genesis file, overrides --admin-key")
	rootCmd.Flags().StringVar(&listenAddr, "listen-address", "", "HTTP listen address")

	genesisCmd.Flags().StringVar(&genesisAdmin, "admin", "", "address of the registry admin")
	genesisCmd.Flags().StringArrayVar(&allocations, "allocation", nil, "<address>:<balance> credited at genesis, may be repeated")
	_ = genesisCmd.MarkFlagRequired("admin")
	rootCmd.AddCommand(genesisCmd)
}

func loadConfig() (*config.Config, error) {
	cfg := config.NewDefault()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}
	if adminKey != "" {
		cfg.AdminKey = adminKey
	}
	if genesisFile != "" {
		cfg.GenesisFile = genesisFile
	}
	if listenAddr != "" {
		cfg.ListenAddress = listenAddr
	}
	return cfg, cfg.Verify()
}

func runFunc(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := node.NewLogger(node.Name, cfg)
	defer log.Stop()

	genesisBytes, err := node.LoadGenesis(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := node.New(ctx, log, cfg, genesisBytes)
	if err != nil {
		log.Error("failed to create node", zap.Error(err))
		return err
	}
	return n.Run(ctx)
}

func genesisFunc(_ *cobra.Command, args []string) error {
	admin, err := codec.ParseAddress(genesisAdmin)
	if err != nil {
		return err
	}
	allocs := make([]*genesis.CustomAllocation, 0, len(allocations))
	for _, raw := range allocations {
		alloc, err := genesis.ParseAllocation(raw)
		if err != nil {
			return err
		}
		allocs = append(allocs, alloc)
	}
	g := genesis.NewDefaultGenesis(admin, allocs)
	if err := g.Verify(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], b, 0o600); err != nil {
		return err
	}
	utils.Outf("{{green}}created genesis:{{/}} %s\n", args[0])
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		utils.Outf("{{red}}%s exited with error:{{/}} %v\n", node.Name, err)
		os.Exit(1)
	}
	os.Exit(0)
}
