package genetic_tsp

import "errors"

var (
	// ErrConfiguration covers missing or out of range run parameters. It is
	// always reported before any computation starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariantViolation means a tour stopped being a permutation of the
	// input points. The run must stop rather than report a bogus tour.
	ErrInvariantViolation = errors.New("invariant violation")
)
