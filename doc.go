// SPDX-License-Identifier: MIT

// Package epfactors is a library of stateless message operators for
// approximate Bayesian inference (Expectation Propagation and
// Variational Message Passing), centered on the bounded-interval
// (truncation) factor: the constraint "X lies in [L, U)".
//
// 🚀 What is epfactors?
//
//	A pure-Go collection of numerically hardened operators that a
//	message-passing scheduler calls to update beliefs on a factor graph:
//		• Tail-probability primitives: log Φ(z), Mills-ratio variants,
//		  moment-ratio recurrences, log/exp helpers
//		• Interval log-partition: log P(L ≤ X < U) for Gaussian X and
//		  constant or Gaussian-distributed bounds
//		• EP messages to X and to each bound, with alpha/beta projection
//		• VMP messages and evidence for constant bounds
//
// ✨ Why choose epfactors?
//
//   - Stable across an enormous dynamic range: z-scores from 0 to beyond
//     1e20 without NaN, negative probabilities, or improper messages
//   - Pure functions over immutable value types, safe under concurrent
//     scheduler traffic; configuration passed per call, never global
//   - A strict, errors.Is-friendly failure taxonomy: invalid argument,
//     zero probability mass, unsupported combination, numerical invariant
//
// Everything is organized under three subpackages:
//
//	gauss/   — Gaussian, Bernoulli and TruncatedGaussian value types
//	specfn/  — stable special functions for normal tails
//	between/ — the bounded-interval factor operator family
//
// The factor-graph scheduler itself (message ordering, convergence,
// damping between iterations) is deliberately out of scope: operators
// follow the <Target>AverageConditional / <Target>AverageLogarithm
// naming convention a scheduler dispatches on, and nothing more.
//
//	go get github.com/katalvlaran/epfactors
package epfactors
