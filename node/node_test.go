// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/api/jsonrpc"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/genesis"
)

func testConfig() *config.Config {
	cfg := config.NewDefault()
	cfg.ListenAddress = "127.0.0.1:0"
	cfg.AdminKey = auth.NamedKey("Admin").Bytes.ToHex()
	return cfg
}

func TestLoadGenesis(t *testing.T) {
	require := require.New(t)

	cfg := testConfig()
	b, err := LoadGenesis(cfg)
	require.NoError(err)
	g := new(genesis.Genesis)
	require.NoError(json.Unmarshal(b, g))
	require.Equal(auth.NamedKey("Admin").Address, g.Admin)

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(os.WriteFile(path, []byte(`{"admin":"x"}`), 0o600))
	cfg.GenesisFile = path
	b, err = LoadGenesis(cfg)
	require.NoError(err)
	require.Equal(`{"admin":"x"}`, string(b))

	cfg = testConfig()
	cfg.AdminKey = ""
	_, err = LoadGenesis(cfg)
	require.ErrorIs(err, ErrMissingAdmin)
}

func TestNodeServesAPI(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	genesisBytes, err := LoadGenesis(cfg)
	require.NoError(err)
	n, err := New(ctx, logging.NoLog{}, cfg, genesisBytes)
	require.NoError(err)

	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	cli := jsonrpc.NewJSONRPCClient(n.URI())
	require.Eventually(func() bool {
		ok, err := cli.Ping(ctx)
		return err == nil && ok
	}, 5*time.Second, 10*time.Millisecond)

	chainID, admin, err := cli.Network(ctx)
	require.NoError(err)
	require.Equal(n.VM().ChainID(), chainID)
	require.Equal(auth.NamedKey("Admin").Address, admin)

	_, height, _, err := cli.Accepted(ctx)
	require.NoError(err)
	require.Zero(height)

	resp, err := http.Get(n.URI() + MetricsEndpoint)
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Contains(string(body), "blocks_accepted")

	cancel()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(10 * time.Second):
		require.FailNow("node did not stop")
	}
}

func TestNodeRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseBackend = "leveldb"
	genesisBytes, err := LoadGenesis(cfg)
	require.NoError(t, err)
	_, err = New(context.Background(), logging.NoLog{}, cfg, genesisBytes)
	require.ErrorIs(t, err, config.ErrInvalidBackend)
}
