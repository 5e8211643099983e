// SPDX-License-Identifier: MIT

package between

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/katalvlaran/epfactors/specfn"
)

// LogProbBetween returns log P(lower <= X < upper) under the given
// beliefs, a value in [-Inf, 0].
//
// Constant bounds go through the univariate dual-formula engine;
// a Gaussian bound turns the event into a bivariate one:
//
//	P(L <= X < U) = Phi2(yL, yU; r)
//	yL = (mx-mL)/sqrt(vx+vL),  yU = (mU-mx)/sqrt(vx+vU)
//	r  = -vx/sqrt((vx+vL)(vx+vU))
//
// where r is the correlation induced between the events X >= L and
// X < U by their shared X (derived here, never stored). Point-mass
// bounds collapse to the constant case before any of this runs.
//
// Errors: ErrAllZero when lower > upper (constants); ErrInvalidArgument
// for NaN bounds or improper beliefs. A legitimately zero-probability
// configuration returns -Inf with no error.
func LogProbBetween(x gauss.Gaussian, lower, upper Bound) (float64, error) {
	if lower.IsConst() && upper.IsConst() {
		return LogProbBetweenConst(x, lower.Const(), upper.Const())
	}
	if err := validateInputs("LogProbBetween", x, lower, upper); err != nil {
		return math.NaN(), err
	}
	logZ, err := logProbRandom(x, lower, upper)
	if err != nil {
		return math.NaN(), err
	}
	if math.IsNaN(logZ) || logZ > 0 {
		return math.NaN(), &NumericalError{
			Op:     "LogProbBetween",
			Inputs: inputVector(x, lower, upper),
		}
	}
	return logZ, nil
}

// LogProbBetweenConst is the constant-bounds fast path of
// LogProbBetween.
//
// Degenerate cases, checked in order: lower > upper is the impossible
// configuration (ErrAllZero); equal bounds carry zero mass (-Inf); a
// doubly infinite interval carries all mass (0); a uniform X sees only
// how many bounds are finite; a point-mass X reduces to a containment
// test.
func LogProbBetweenConst(x gauss.Gaussian, lower, upper float64) (float64, error) {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return math.NaN(), fmt.Errorf("LogProbBetween: NaN bound [%g, %g]: %w", lower, upper, ErrInvalidArgument)
	case lower > upper:
		return math.NaN(), fmt.Errorf("LogProbBetween: bounds [%g, %g]: %w", lower, upper, ErrAllZero)
	case lower == upper:
		return math.Inf(-1), nil
	case math.IsInf(lower, -1) && math.IsInf(upper, 1):
		return 0, nil
	}
	switch x.Shape() {
	case gauss.ShapeImproper:
		return math.NaN(), fmt.Errorf("LogProbBetween: improper belief %v: %w", x, ErrInvalidArgument)
	case gauss.ShapeUniform:
		// exactly one bound is infinite: half the mass; no infinite
		// bound: a finite window gets zero mass from a flat belief
		if math.IsInf(lower, -1) || math.IsInf(upper, 1) {
			return -specfn.Ln2, nil
		}
		return math.Inf(-1), nil
	case gauss.ShapePointMass:
		if IsBetween(x.Point(), lower, upper) {
			return 0, nil
		}
		return math.Inf(-1), nil
	}
	sqrtPrec := math.Sqrt(x.Precision)
	mx := x.Mean()
	zL := (lower - mx) * sqrtPrec
	zU := (upper - mx) * sqrtPrec
	logZ := specfn.NormalCdfDiffLn(zL, zU)
	if math.IsNaN(logZ) || logZ > 0 {
		return math.NaN(), &NumericalError{
			Op:     "LogProbBetween",
			Inputs: []float64{x.MeanTimesPrecision, x.Precision, lower, upper},
		}
	}
	return logZ, nil
}

// logProbRandom handles the case of at least one Gaussian bound.
func logProbRandom(x gauss.Gaussian, lower, upper Bound) (float64, error) {
	switch x.Shape() {
	case gauss.ShapePointMass:
		// the bounds are independent given X: the event factorizes
		x0 := x.Point()
		logZ := 0.0
		switch {
		case lower.IsConst() && !(lower.Const() <= x0):
			return math.Inf(-1), nil
		case !lower.IsConst():
			mL, vL := lower.MeanAndVariance()
			logZ += specfn.NormalCdfLn((x0 - mL) / math.Sqrt(vL))
		}
		switch {
		case upper.IsConst() && !(x0 < upper.Const()):
			return math.Inf(-1), nil
		case !upper.IsConst():
			mU, vU := upper.MeanAndVariance()
			logZ += specfn.NormalCdfLn((mU - x0) / math.Sqrt(vU))
		}
		return logZ, nil
	case gauss.ShapeUniform:
		// the limit of the bivariate reduction as vx grows: a single
		// constraining side leaves half the mass, two leave none
		oneSided := lower.isNegInf() || upper.isPosInf()
		if oneSided {
			return -specfn.Ln2, nil
		}
		return math.Inf(-1), nil
	}
	geo := newBoundGeometry(x, lower, upper)
	return geo.logZ(), nil
}

// boundGeometry caches the standardized quantities of the bivariate
// reduction; every random-bound operator reads from it.
type boundGeometry struct {
	yL, yU   float64 // standardized one-sided offsets
	sLinv    float64 // 1/sqrt(vx+vL)
	sUinv    float64 // 1/sqrt(vx+vU)
	vL, vU   float64 // bound variances (0 for a constant bound)
	r        float64 // induced correlation, in (-1, 0]
	omr2     float64 // 1-r^2, by the cancellation-free form
	lowOpen  bool    // lower bound is literally -Inf
	highOpen bool    // upper bound is literally +Inf
}

func newBoundGeometry(x gauss.Gaussian, lower, upper Bound) boundGeometry {
	mx, vx := x.MeanAndVariance()
	mL, vL := lower.MeanAndVariance()
	mU, vU := upper.MeanAndVariance()
	g := boundGeometry{
		vL:       vL,
		vU:       vU,
		lowOpen:  lower.isNegInf(),
		highOpen: upper.isPosInf(),
	}
	if !g.lowOpen {
		g.sLinv = 1 / math.Sqrt(vx+vL)
		g.yL = (mx - mL) * g.sLinv
	}
	if !g.highOpen {
		g.sUinv = 1 / math.Sqrt(vx+vU)
		g.yU = (mU - mx) * g.sUinv
	}
	if !g.lowOpen && !g.highOpen {
		g.r = -vx * g.sLinv * g.sUinv
		// 1 - r^2 without subtracting near-equal quantities
		g.omr2 = (vx*(vL+vU) + vL*vU) * (g.sLinv * g.sLinv) * (g.sUinv * g.sUinv)
	}
	return g
}

func (g boundGeometry) logZ() float64 {
	switch {
	case g.lowOpen && g.highOpen:
		return 0
	case g.lowOpen:
		return specfn.NormalCdfLn(g.yU)
	case g.highOpen:
		return specfn.NormalCdfLn(g.yL)
	default:
		return specfn.NormalCdfLn2(g.yL, g.yU, g.r)
	}
}

// validateInputs applies the shared contract checks for operators that
// take (x, lower, upper).
func validateInputs(op string, x gauss.Gaussian, lower, upper Bound) error {
	if x.Shape() == gauss.ShapeImproper {
		return fmt.Errorf("%s: improper belief %v: %w", op, x, ErrInvalidArgument)
	}
	if !lower.valid() || !upper.valid() {
		return fmt.Errorf("%s: invalid bound: %w", op, ErrInvalidArgument)
	}
	return nil
}

// inputVector flattens the operator inputs for NumericalError payloads.
func inputVector(x gauss.Gaussian, lower, upper Bound) []float64 {
	lb, ub := lower.Belief(), upper.Belief()
	return []float64{
		x.MeanTimesPrecision, x.Precision,
		lb.MeanTimesPrecision, lb.Precision,
		ub.MeanTimesPrecision, ub.Precision,
	}
}
