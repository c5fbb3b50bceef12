// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/philosophersvm/tstate"
)

// Processor executes the transactions of a block strictly in order. Each
// transaction runs in its own view and is committed only when its action
// succeeds, so later transactions observe exactly the effects of earlier
// successful ones.
type Processor struct {
	tracer trace.Tracer
	log    logging.Logger
	rules  Rules
}

func NewProcessor(tracer trace.Tracer, log logging.Logger, rules Rules) *Processor {
	return &Processor{
		tracer: tracer,
		log:    log,
		rules:  rules,
	}
}

func (p *Processor) Execute(
	ctx context.Context,
	ts *tstate.TState,
	timestamp int64,
	txs []*Transaction,
) ([]*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Chain.Execute")
	defer span.End()
	span.SetAttributes(attribute.Int("txs", len(txs)))

	results := make([]*Result, 0, len(txs))
	for _, tx := range txs {
		tsv := ts.NewView()
		result, err := tx.Execute(ctx, p.rules, tsv, timestamp)
		if err != nil {
			return nil, err
		}
		if result.Success {
			tsv.Commit()
		} else {
			p.log.Debug("transaction reverted",
				zap.Stringer("txID", tx.ID()),
				zap.Stringer("actor", tx.Actor()),
				zap.ByteString("reason", result.Error),
			)
		}
		results = append(results, result)
	}
	return results, nil
}
