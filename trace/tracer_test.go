// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(Config{AppName: "test"})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "span")
	require.False(span.IsRecording())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tr, err := New(Config{Enabled: true, SampleRate: 1, AppName: "test"})
	require.NoError(err)
	require.IsType(&tracer{}, tr)
	require.NoError(tr.Close())
}
