// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "strings"

// RevertError is returned to clients for a transaction that was included
// but reverted. It matches [ErrTxReverted] and, when the reason names one
// of the known sentinel errors, that sentinel too.
type RevertError struct {
	Reason string

	cause error
}

func (e *RevertError) Error() string {
	return ErrTxReverted.Error() + ": " + e.Reason
}

func (e *RevertError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrTxReverted}
	}
	return []error{ErrTxReverted, e.cause}
}

// Err returns nil for a successful result and a [*RevertError] otherwise.
// The revert reason is matched against [known] so callers can use
// errors.Is across the RPC boundary. The outermost (earliest) match wins,
// ties going to the longest message.
func (r *Result) Err(known ...error) error {
	if r.Success {
		return nil
	}
	reason := string(r.Error)
	var (
		cause error
		pos   = len(reason) + 1
		best  int
	)
	for _, k := range known {
		msg := k.Error()
		i := strings.Index(reason, msg)
		if i < 0 {
			continue
		}
		if i < pos || (i == pos && len(msg) > best) {
			cause = k
			pos = i
			best = len(msg)
		}
	}
	return &RevertError{Reason: reason, cause: cause}
}
