// SPDX-License-Identifier: MIT

// Package gauss provides the immutable distribution value types that
// message-passing operators exchange: Gaussian, Bernoulli and
// TruncatedGaussian.
//
// A Gaussian is held in canonical natural parameters
// (meanTimesPrecision, precision), which makes the two operations a
// factor graph needs exact and trivial:
//
//	product — add natural parameters
//	ratio   — subtract natural parameters
//
// The representation admits three degenerate states, each a first-class
// citizen here because operators dispatch on them:
//
//	uniform    — precision 0 (no information)
//	point mass — precision +Inf (all mass at one value)
//	improper   — precision < 0 (a valid intermediate, an invalid message)
//
// All types are plain value types: construct, read, combine; never
// mutate. Shape() exposes the state as a tagged variant so regime
// dispatch is an explicit, exhaustive switch rather than a chain of
// predicate calls.
package gauss
