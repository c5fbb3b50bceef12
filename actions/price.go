// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"

	"github.com/ava-labs/philosophersvm/utils"
)

// MaxPrice is the largest listing price accepted (1e10 tokens).
const MaxPrice uint64 = 10_000_000_000 * 100_000_000

// ParsePrice converts a decimal price such as "1.11" into fixed point.
// Negative and malformed prices are rejected with [ErrInvalidPrice].
func ParsePrice(s string) (uint64, error) {
	price, err := utils.ParseBalance(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPrice, err)
	}
	if price > MaxPrice {
		return 0, fmt.Errorf("%w: %s exceeds maximum", ErrInvalidPrice, s)
	}
	return price, nil
}
