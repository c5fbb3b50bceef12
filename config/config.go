// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/philosophersvm/pebble"
	"github.com/ava-labs/philosophersvm/trace"
)

const (
	MemDB    = "memdb"
	PebbleDB = "pebble"
)

var (
	ErrInvalidBackend   = errors.New("invalid database backend")
	ErrInvalidValue     = errors.New("invalid config value")
	ErrUnknownExtension = errors.New("unknown config file extension")
)

type Config struct {
	LogLevel     string `json:"logLevel" yaml:"logLevel"`
	LogDir       string `json:"logDir" yaml:"logDir"`
	LogMaxSizeMB int    `json:"logMaxSizeMB" yaml:"logMaxSizeMB"`

	ListenAddress  string   `json:"listenAddress" yaml:"listenAddress"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`

	BlockBuildFrequency  time.Duration `json:"blockBuildFrequency" yaml:"blockBuildFrequency"`
	MempoolSize          int           `json:"mempoolSize" yaml:"mempoolSize"`
	StreamingBacklogSize int           `json:"streamingBacklogSize" yaml:"streamingBacklogSize"`
	AuthVerifyCores      int           `json:"authVerifyCores" yaml:"authVerifyCores"`

	DatabaseBackend string        `json:"databaseBackend" yaml:"databaseBackend"`
	DatabasePath    string        `json:"databasePath" yaml:"databasePath"`
	Pebble          pebble.Config `json:"pebble" yaml:"pebble"`

	// GenesisFile is optional. Without it the node starts from a default
	// genesis administered by [AdminKey].
	GenesisFile string `json:"genesisFile" yaml:"genesisFile"`
	// AdminKey is the hex encoded ed25519 key of the registry admin.
	AdminKey string `json:"adminKey" yaml:"adminKey"`

	Trace          trace.Config `json:"trace" yaml:"trace"`
	MetricsEnabled bool         `json:"metricsEnabled" yaml:"metricsEnabled"`
}

func NewDefault() *Config {
	return &Config{
		LogLevel:             logging.Info.LowerString(),
		LogMaxSizeMB:         8,
		ListenAddress:        "127.0.0.1:9650",
		AllowedOrigins:       []string{"*"},
		BlockBuildFrequency:  100 * time.Millisecond,
		MempoolSize:          4_096,
		StreamingBacklogSize: 1_024,
		AuthVerifyCores:      2,
		DatabaseBackend:      MemDB,
		Pebble:               pebble.NewDefaultConfig(),
		Trace:                trace.Config{SampleRate: 1, AppName: "philosophersvm"},
		MetricsEnabled:       true,
	}
}

// New parses a JSON config on top of the defaults.
func New(b []byte) (*Config, error) {
	c := NewDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	return c, c.Verify()
}

// Load reads a .json, .yaml or .yml config file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return New(b)
	case ".yaml", ".yml":
		c := NewDefault()
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return nil, err
		}
		return c, c.Verify()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: logLevel: %w", ErrInvalidValue, err)
	}
	switch c.DatabaseBackend {
	case MemDB:
	case PebbleDB:
		if c.DatabasePath == "" {
			return fmt.Errorf("%w: pebble requires databasePath", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.DatabaseBackend)
	}
	if c.BlockBuildFrequency <= 0 {
		return fmt.Errorf("%w: blockBuildFrequency must be positive", ErrInvalidValue)
	}
	if c.MempoolSize <= 0 {
		return fmt.Errorf("%w: mempoolSize must be positive", ErrInvalidValue)
	}
	if c.AuthVerifyCores <= 0 {
		return fmt.Errorf("%w: authVerifyCores must be positive", ErrInvalidValue)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return level
}
