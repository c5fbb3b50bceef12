// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ database.KeyValueReader        = (*Database)(nil)
	_ database.KeyValueWriterDeleter = (*Database)(nil)
	_ database.Batcher               = (*Database)(nil)
	_ database.Batch                 = (*batch)(nil)
)

type Config struct {
	CacheSize                   int64 `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync                int   `json:"bytesPerSync" yaml:"bytesPerSync"`
	WALBytesPerSync             int   `json:"walBytesPerSync" yaml:"walBytesPerSync"`
	MemTableStopWritesThreshold int   `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MaxOpenFiles                int   `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	ConcurrentCompactions       int   `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                        bool  `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a [database.KeyValueReader], writer and batcher backed by
// pebble.
type Database struct {
	db           *pebble.DB
	writeOptions *pebble.WriteOptions
	metrics      *metrics

	closing chan struct{}
	closed  chan struct{}
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// Create metrics
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		closing: make(chan struct{}),
		closed:  make(chan struct{}),
	}
	if cfg.Sync {
		d.writeOptions = pebble.Sync
	} else {
		d.writeOptions = pebble.NoSync
	}

	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go func() {
		defer close(d.closed)
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()

	data, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// pebble only guarantees [data] until [closer] is called
	value := make([]byte, len(data))
	copy(value, data)
	return value, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOptions)
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.writeOptions)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (db *Database) Close() error {
	close(db.closing)
	<-db.closed
	return db.db.Close()
}

// batch records operations in memory and applies them atomically on
// [Write].
type batch struct {
	database.BatchOps

	db *Database
}

func (b *batch) Write() error {
	start := time.Now()
	defer func() {
		b.db.metrics.batchLatency.Observe(float64(time.Since(start)))
	}()

	pb := b.db.db.NewBatch()
	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			_ = pb.Close()
			return err
		}
	}
	if err := pb.Commit(b.db.writeOptions); err != nil {
		return err
	}
	b.db.metrics.batchOps.Add(float64(len(b.Ops)))
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}
