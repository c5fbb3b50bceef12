// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	_ trace.Tracer = (*noOpTracer)(nil)

	// Noop records nothing. It is used when tracing is disabled and in tests.
	Noop trace.Tracer = newNoop("")
)

type noOpTracer struct {
	embedded.Tracer

	t oteltrace.Tracer
}

func newNoop(name string) *noOpTracer {
	return &noOpTracer{t: noop.NewTracerProvider().Tracer(name)}
}

func (n *noOpTracer) Start(
	ctx context.Context,
	spanName string,
	opts ...oteltrace.SpanStartOption,
) (context.Context, oteltrace.Span) {
	return n.t.Start(ctx, spanName, opts...)
}

func (*noOpTracer) Close() error {
	return nil
}
