// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"math/bits"
	"net"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/philosophersvm/consts"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var (
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidBalance = errors.New("invalid balance")
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

func ErrBytes(err error) []byte {
	return []byte(err.Error())
}

// Outf prints a ginkgo-formatted string to stdout.
//
// e.g.,
//
//	Outf("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Outf("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

func GetHost(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	host, _, err := net.SplitHostPort(purl.Host)
	return host, err
}

func GetPort(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return purl.Port(), err
}

var decimalsFactor = pow10(consts.Decimals)

func pow10(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// FormatBalance renders a fixed point amount with all of its decimals,
// e.g. 111000000 -> "1.11000000".
func FormatBalance(bal uint64) string {
	return fmt.Sprintf("%d.%0*d", bal/decimalsFactor, consts.Decimals, bal%decimalsFactor)
}

// ParseBalance parses a decimal string like "1.11" into its fixed point
// representation. Negative values, more than [consts.Decimals] fractional
// digits and values that overflow uint64 are rejected.
func ParseBalance(bal string) (uint64, error) {
	bal = strings.TrimSpace(bal)
	if len(bal) == 0 || strings.HasPrefix(bal, "-") || strings.HasPrefix(bal, "+") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	whole, frac, _ := strings.Cut(bal, ".")
	if len(whole) == 0 && len(frac) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	if len(frac) > consts.Decimals {
		return 0, fmt.Errorf("%w: too many decimals in %q", ErrInvalidBalance, bal)
	}
	var (
		w   uint64
		f   uint64
		err error
	)
	if len(whole) > 0 {
		w, err = strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
		}
	}
	if len(frac) > 0 {
		f, err = strconv.ParseUint(frac+strings.Repeat("0", consts.Decimals-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
		}
	}
	hi, lo := bits.Mul64(w, decimalsFactor)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidBalance, bal)
	}
	sum, carry := bits.Add64(lo, f, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidBalance, bal)
	}
	return sum, nil
}

// UnixRMilli returns the current unix time in milliseconds, rounded
// down to the nearsest second.
//
// [now] is used as the current unix time in milliseconds if >= 0.
//
// [add] (in ms) is added to the unix time before it is rounded (typically
// used when generating an expiry time with a validity window).
func UnixRMilli(now, add int64) int64 {
	if now < 0 {
		now = time.Now().UnixMilli()
	}
	t := now + add
	return t - t%consts.MillisecondsPerSecond
}

// SaveBytes writes [b] to [filename] with 0o600 permissions.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, 0o600)
}

// LoadBytes returns bytes stored at a file [filename]. If [expectedSize]
// is not -1, the file length must match it.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}
