// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	txsSubmitted   prometheus.Counter
	txsRejected    prometheus.Counter
	txsAccepted    prometheus.Counter
	txsReverted    prometheus.Counter
	txsExpired     prometheus.Counter
	blocksAccepted prometheus.Counter
	eventsEmitted  prometheus.Counter
	mempoolSize    prometheus.Gauge
	height         prometheus.Gauge
	blockBuild     metric.Averager
	blockExecute   metric.Averager
	blockCommit    metric.Averager
	scriptExecute  metric.Averager
}

func newMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()

	blockBuild, err := metric.NewAverager(
		"",
		"chain_block_build",
		"time spent building a block",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	blockExecute, err := metric.NewAverager(
		"",
		"chain_block_execute",
		"time spent executing the transactions of a block",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	blockCommit, err := metric.NewAverager(
		"",
		"chain_block_commit",
		"time spent writing a block and its state changes to disk",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	scriptExecute, err := metric.NewAverager(
		"",
		"scripts_execute",
		"time spent running read-only scripts",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of txs submitted to vm",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_rejected",
			Help:      "number of txs rejected at submission",
		}),
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_accepted",
			Help:      "number of txs included in accepted blocks",
		}),
		txsReverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_reverted",
			Help:      "number of included txs whose action reverted",
		}),
		txsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_expired",
			Help:      "number of txs dropped from the mempool after expiry",
		}),
		blocksAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "blocks_accepted",
			Help:      "number of blocks accepted",
		}),
		eventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "events_emitted",
			Help:      "number of events emitted by successful actions",
		}),
		mempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "mempool_size",
			Help:      "number of transactions in the mempool",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "height",
			Help:      "height of the last accepted block",
		}),
		blockBuild:    blockBuild,
		blockExecute:  blockExecute,
		blockCommit:   blockCommit,
		scriptExecute: scriptExecute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsRejected),
		r.Register(m.txsAccepted),
		r.Register(m.txsReverted),
		r.Register(m.txsExpired),
		r.Register(m.blocksAccepted),
		r.Register(m.eventsEmitted),
		r.Register(m.mempoolSize),
		r.Register(m.height),
	)
	return r, m, errs.Err
}
