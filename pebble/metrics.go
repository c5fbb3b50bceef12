// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsInterval = 10 * time.Second

	levelLabel = "level"
	kindLabel  = "kind"
)

type metrics struct {
	delayStart time.Time
	writeStall metric.Averager

	getLatency   metric.Averager
	batchLatency metric.Averager
	batchOps     prometheus.Counter

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	diskUsage      prometheus.Gauge
	tombstoneCount prometheus.Gauge
	// Files no longer referenced by the ledger, keyed by [kindLabel].
	unusedBytes *prometheus.GaugeVec
	unusedFiles *prometheus.GaugeVec
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	averager := func(name, desc string) metric.Averager {
		a, err := metric.NewAverager("", name, desc, r)
		errs.Add(err)
		return a
	}
	m := &metrics{
		writeStall:   averager("pebble_write_stall", "time spent waiting for disk write"),
		getLatency:   averager("pebble_read_latency", "time spent waiting for db get"),
		batchLatency: averager("pebble_batch_write", "time spent committing a block batch"),
		batchOps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "batch_ops",
			Help:      "number of puts and deletes committed in batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "compactions",
			Help:      "number of compactions started, by input level",
		}, []string{levelLabel}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
		diskUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "disk_usage",
			Help:      "bytes on disk used by the ledger",
		}),
		tombstoneCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "tombstone_count",
			Help:      "approximate count of internal tombstones",
		}),
		unusedBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "unused_bytes",
			Help:      "bytes in files the db no longer needs",
		}, []string{kindLabel}),
		unusedFiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "unused_files",
			Help:      "number of files the db no longer needs",
		}, []string{kindLabel}),
	}
	errs.Add(
		r.Register(m.batchOps),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.diskUsage),
		r.Register(m.tombstoneCount),
		r.Register(m.unusedBytes),
		r.Register(m.unusedFiles),
	)
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.delayStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.delayStart)))
}

func (db *Database) observeMetrics() {
	m := db.db.Metrics()
	db.metrics.diskUsage.Set(float64(m.DiskSpaceUsage()))
	db.metrics.tombstoneCount.Set(float64(m.Keys.TombstoneCount))
	for kind, v := range map[string][2]uint64{
		"obsolete_table": {m.Table.ObsoleteSize, uint64(m.Table.ObsoleteCount)},
		"zombie_table":   {m.Table.ZombieSize, uint64(m.Table.ZombieCount)},
		"obsolete_wal":   {m.WAL.ObsoletePhysicalSize, uint64(m.WAL.ObsoleteFiles)},
	} {
		db.metrics.unusedBytes.WithLabelValues(kind).Set(float64(v[0]))
		db.metrics.unusedFiles.WithLabelValues(kind).Set(float64(v[1]))
	}
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.observeMetrics()
		case <-db.closing:
			return
		}
	}
}
