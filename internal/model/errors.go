package model

import "errors"

// Shared error taxonomy. Components return these as wrapped sentinels;
// callers branch with errors.Is and translate to user-facing text in the
// notifier layer only.
var (
	// ErrDataUnavailable: provider unreachable, non-success response,
	// or empty/malformed payload.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInsufficientHistory: series shorter than a component's minimum.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrComputation: unexpected numeric edge case, e.g. a non-finite input.
	ErrComputation = errors.New("indicator computation error")

	// ErrUnauthorized: ledger check failed for the caller.
	ErrUnauthorized = errors.New("user not authorized")
)
