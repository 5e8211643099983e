// SPDX-License-Identifier: MIT
// Package between: sentinel error set (unified, consistent).
// This file defines ONLY the package-level sentinel errors plus the one
// structured error type used across the between package. All operators
// MUST return these sentinels and tests MUST check them via errors.Is.
// No operator panics on caller-triggered conditions.

package between

import (
	"errors"
	"fmt"
)

// NOTE ON THE TAXONOMY
// --------------------
// The four kinds below are deliberately distinct because a scheduler
// reacts differently to each:
//
//	ErrInvalidArgument — the caller violated the operator contract
//	                     (NaN input, improper belief where a proper one
//	                     is required, message requested for a constant).
//	                     A bug in the calling code; never retried.
//	ErrAllZero         — the current beliefs put zero probability on
//	                     every outcome. The model may still be
//	                     consistent; the scheduler usually aborts
//	                     inference for the affected variable.
//	ErrUnsupported     — a documented permanent limitation (VMP with
//	                     random bounds has no conjugate solution).
//	                     Always fails; never retryable.
//	ErrNumerical       — NaN/Inf appeared where mathematically
//	                     impossible: a gap in the stable-formula
//	                     coverage. Fatal; carries its inputs via
//	                     NumericalError for diagnosis.
var (
	// ErrInvalidArgument is returned for inputs that violate an
	// operator's contract. Wrapped with context at each return site.
	ErrInvalidArgument = errors.New("between: invalid argument")

	// ErrAllZero is returned when the combination of beliefs excludes
	// all probability mass, including the impossible configuration of a
	// lower bound above an upper bound.
	ErrAllZero = errors.New("between: all probability mass excluded")

	// ErrUnsupported is returned for permanently unsupported operator
	// combinations.
	ErrUnsupported = errors.New("between: unsupported combination")

	// ErrNumerical signals a violated numerical invariant. Returned
	// wrapped in a *NumericalError holding the offending inputs.
	ErrNumerical = errors.New("between: numerical invariant violated")
)

// NumericalError reports a NaN or Inf in a place the stable formulas
// should have made impossible. Op names the operator; Inputs holds the
// raw values the failing computation saw, since reproducing these
// failures is otherwise hopeless.
type NumericalError struct {
	Op     string
	Inputs []float64
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%v: %s with inputs %v", ErrNumerical, e.Op, e.Inputs)
}

// Unwrap makes errors.Is(err, ErrNumerical) match.
func (e *NumericalError) Unwrap() error { return ErrNumerical }
