// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/philosophersvm/config"
)

const (
	logMaxBackups = 4
	logMaxAgeDays = 7
)

// NewLogger writes colored logs to stderr and, when [config.LogDir] is
// set, JSON logs to a rotated file named after [name].
func NewLogger(name string, cfg *config.Config) logging.Logger {
	level := cfg.GetLogLevel()
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder()),
	}
	if cfg.LogDir != "" {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, name+".log"),
			MaxSize:    cfg.LogMaxSizeMB, // megabytes
			MaxAge:     logMaxAgeDays,
			MaxBackups: logMaxBackups,
			Compress:   true,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(name, cores...)
}
