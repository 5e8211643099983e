// SPDX-License-Identifier: MIT

// Package between implements the message operators for the
// bounded-interval (truncation) factor: the constraint that a Gaussian
// variable X lies in [L, U), where each bound is either a literal
// number or itself Gaussian-distributed.
//
// 🚀 What does a truncation operator do?
//
//	Given the current beliefs of the factor's neighbors, each operator
//	returns the outgoing message to one neighbor:
//		• IsBetweenAverageConditional — message to the boolean output
//		• XAverageConditional         — EP message to X
//		• LowerBoundAverageConditional / UpperBoundAverageConditional —
//		  EP messages to Gaussian-distributed bounds
//		• XAverageLogarithm           — VMP message to X (constant
//		  bounds only; random bounds have no conjugate solution and
//		  fail with ErrUnsupported)
//		• LogAverageFactor / LogEvidenceRatio — evidence contributions
//
//	All EP messages are derived from one scalar: the interval
//	log-partition LogProbBetween = log P(L <= X < U). Its first and
//	second derivatives with respect to X's mean (alpha, beta) are
//	projected onto a Gaussian by GaussianFromAlphaBeta, the single
//	choke point where the proper-message guarantee is enforced.
//
// ✨ Numerical posture:
//
//   - No closed-form conjugate update exists for this factor; every
//     formula is a regime of a decision tree over the shapes of the
//     inputs (point mass / proper / uniform; bounds constant / random;
//     equal / one-sided / general). The tree is total: every
//     combination a scheduler can produce has a defined branch.
//   - Offsets up to |z| ~ 1e20 return finite, monotone results; the
//     heavy lifting is in specfn's dual-formula primitives.
//   - Operators are pure functions of their arguments plus an explicit
//     Config; there is no package state of any kind.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/epfactors/between"
//
//	cfg := between.DefaultConfig()
//	prior := gauss.FromMeanAndPrecision(0, 1)
//	msg, err := between.XAverageConditional(
//	    gauss.BernoulliPointMass(true), prior,
//	    between.ConstBound(1), between.ConstBound(math.Inf(1)), cfg)
//	if err != nil {
//	    // errors.Is against ErrAllZero / ErrInvalidArgument /
//	    // ErrUnsupported / ErrNumerical
//	}
//	posterior := prior.Times(msg)
//
// Damping between scheduler iterations is the caller's job
// (DampGaussian with Config.Damping); the only internal damping is the
// documented fixed sub-step applied to bound messages
// (BoundMessageDamping).
package between
