// SPDX-License-Identifier: MIT

package between

import (
	"math"

	"github.com/katalvlaran/epfactors/gauss"
)

// Empirically chosen numerical policy constants. These are stability
// cutoffs, not tunables; each is pinned by a boundary-value test.
// The dual-formula switch thresholds (0.7 relative, 1e-3 absolute) and
// the 3.5-sigma asymptotic cutoff live with the primitives in specfn.
const (
	// DefaultLowPrecisionThreshold is the precision below which a
	// degenerate belief about X makes logZ = -Inf non-informative in
	// the random-bound operators; see Config.LowPrecisionThreshold.
	DefaultLowPrecisionThreshold = 1e-10

	// ForcedPrecisionCap bounds the precision of any outgoing message
	// and marks the point where an incoming belief is treated as a
	// point mass, keeping natural parameters out of Inf-Inf territory.
	ForcedPrecisionCap = 1e100

	// BoundMessageDamping is the fixed internal damping applied to the
	// messages to a random bound when a previous message is available.
	// Bound messages feed back into their own cavity through the
	// correlation with X, and this sub-step damping keeps that loop
	// contractive.
	BoundMessageDamping = 0.9
)

// IsBetween is the deterministic factor itself: true when
// lower <= x < upper.
func IsBetween(x, lower, upper float64) bool {
	return lower <= x && x < upper
}

// Config carries the per-call numerical policy. It replaces what the
// scheduler would otherwise set as process-wide state, so concurrent
// inference runs with different policies cannot interfere.
type Config struct {
	// ForceProper clips an otherwise improper (non-positive-precision)
	// outgoing message to the boundary of validity instead of
	// returning it as-is.
	ForceProper bool

	// LowPrecisionThreshold activates a single deterministic retry in
	// the random-bound operators: when X's precision is below the
	// threshold and logZ comes out -Inf (so the result would carry no
	// information), X's precision is raised to the threshold and the
	// message recomputed once. Zero disables the retry.
	LowPrecisionThreshold float64

	// Damping in [0, 1) is the caller-side blend weight for
	// DampGaussian: 0 keeps the fresh message, values near 1 mostly
	// keep the previous one. The operators themselves never read it;
	// it travels in the Config so one value object describes the whole
	// numerical policy of a run.
	Damping float64
}

// DefaultConfig returns the policy used by the stock scheduler:
// messages forced proper, the low-precision retry enabled, no damping.
func DefaultConfig() Config {
	return Config{
		ForceProper:           true,
		LowPrecisionThreshold: DefaultLowPrecisionThreshold,
	}
}

// Bound is one endpoint of the interval constraint: either a literal
// real number (possibly infinite) or a Gaussian belief. A random bound
// that is a point mass is collapsed to the constant case at
// construction, so the two representations of certainty cannot
// diverge.
type Bound struct {
	random bool
	value  float64
	belief gauss.Gaussian
}

// ConstBound returns a literal bound. NaN is accepted here and
// rejected by the operators, which can attach operator context.
func ConstBound(v float64) Bound {
	return Bound{value: v}
}

// RandomBound returns a bound with a Gaussian belief. Point-mass
// beliefs collapse to ConstBound; a uniform belief stays random (a
// bound nobody knows anything about).
func RandomBound(g gauss.Gaussian) Bound {
	if g.IsPointMass() {
		return ConstBound(g.Point())
	}
	return Bound{random: true, belief: g}
}

// IsConst reports whether the bound is a literal value.
func (b Bound) IsConst() bool { return !b.random }

// Const returns the literal value; meaningful only when IsConst.
func (b Bound) Const() float64 { return b.value }

// Belief returns the Gaussian belief over the bound. A constant bound
// reports its point mass.
func (b Bound) Belief() gauss.Gaussian {
	if b.random {
		return b.belief
	}
	return gauss.PointMass(b.value)
}

// MeanAndVariance returns the bound's mean and variance; constants
// have zero variance.
func (b Bound) MeanAndVariance() (mean, variance float64) {
	if b.random {
		return b.belief.MeanAndVariance()
	}
	return b.value, 0
}

// isNegInf reports a literal lower bound of -Inf (no constraint).
func (b Bound) isNegInf() bool { return !b.random && math.IsInf(b.value, -1) }

// isPosInf reports a literal upper bound of +Inf (no constraint).
func (b Bound) isPosInf() bool { return !b.random && math.IsInf(b.value, 1) }

// valid reports whether the bound is usable: a literal must not be
// NaN, a belief must not be improper.
func (b Bound) valid() bool {
	if b.random {
		return b.belief.Precision >= 0
	}
	return !math.IsNaN(b.value)
}
