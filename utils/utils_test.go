// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadBytes(t *testing.T) {
	require := require.New(t)
	filename := filepath.Join(t.TempDir(), "SaveBytes")

	id := ids.GenerateTestID()
	require.NoError(SaveBytes(filename, id[:]))
	require.FileExists(filename)

	b, err := LoadBytes(filename, ids.IDLen)
	require.NoError(err)
	require.Equal(id[:], b)
}

func TestLoadBytesIncorrectLength(t *testing.T) {
	require := require.New(t)
	filename := filepath.Join(t.TempDir(), "LoadBytes")
	require.NoError(os.WriteFile(filename, []byte{1, 2, 3, 4, 5}, 0o600))

	_, err := LoadBytes(filename, ids.IDLen)
	require.ErrorIs(err, ErrInvalidSize)
}

func TestParseBalance(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want uint64
		err  error
	}{
		{in: "1.11", want: 111_000_000},
		{in: "100.0", want: 10_000_000_000},
		{in: "0.00000001", want: 1},
		{in: "42", want: 4_200_000_000},
		{in: ".5", want: 50_000_000},
		{in: "0", want: 0},
		{in: "-1.0", err: ErrInvalidBalance},
		{in: "1.000000001", err: ErrInvalidBalance},
		{in: "abc", err: ErrInvalidBalance},
		{in: "", err: ErrInvalidBalance},
		{in: ".", err: ErrInvalidBalance},
		{in: "184467440737.09551616", err: ErrInvalidBalance},
	} {
		t.Run(tt.in, func(t *testing.T) {
			require := require.New(t)
			got, err := ParseBalance(tt.in)
			if tt.err != nil {
				require.ErrorIs(err, tt.err)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestFormatBalance(t *testing.T) {
	require := require.New(t)
	require.Equal("1.11000000", FormatBalance(111_000_000))
	require.Equal("0.00000001", FormatBalance(1))
	require.Equal("0.00000000", FormatBalance(0))

	parsed, err := ParseBalance(FormatBalance(98_765_432_100))
	require.NoError(err)
	require.Equal(uint64(98_765_432_100), parsed)
}

func TestUnixRMilli(t *testing.T) {
	require := require.New(t)
	require.Equal(int64(12_000), UnixRMilli(12_345, 0))
	require.Equal(int64(14_000), UnixRMilli(12_345, 2_000))
}
