// SPDX-License-Identifier: MIT

package between

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/katalvlaran/epfactors/specfn"
)

// LowerBoundAverageConditional returns the EP message to a random
// lower bound. The derivatives are taken with respect to the bound's
// mean instead of X's, so the constraint pushes the bound the opposite
// way it pushes X.
//
// previous is the message sent on the prior iteration, or
// gauss.Uniform() on the first one; when it carries information the
// result is damped toward it with BoundMessageDamping. Bound messages
// circle back into their own cavity through the correlation with X,
// and undamped they can oscillate.
//
// A constant lower bound has no belief to update: ErrInvalidArgument.
func LowerBoundAverageConditional(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, previous gauss.Gaussian, cfg Config) (gauss.Gaussian, error) {
	return boundMessage("LowerBoundAverageConditional", targetLower, isBetween, x, lower, upper, previous, cfg)
}

// UpperBoundAverageConditional is the mirror of
// LowerBoundAverageConditional for a random upper bound.
func UpperBoundAverageConditional(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, previous gauss.Gaussian, cfg Config) (gauss.Gaussian, error) {
	return boundMessage("UpperBoundAverageConditional", targetUpper, isBetween, x, lower, upper, previous, cfg)
}

type boundSide int

const (
	targetLower boundSide = iota
	targetUpper
)

func boundMessage(op string, side boundSide, isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, previous gauss.Gaussian, cfg Config) (gauss.Gaussian, error) {
	target := lower
	if side == targetUpper {
		target = upper
	}
	if target.IsConst() {
		return gauss.Gaussian{}, fmt.Errorf("%s: constant bound has no belief to update: %w", op, ErrInvalidArgument)
	}
	if err := validateInputs(op, x, lower, upper); err != nil {
		return gauss.Gaussian{}, err
	}
	if isBetween.IsUniform() || x.Shape() == gauss.ShapeUniform {
		return gauss.Uniform(), nil
	}

	// with x observed and the opposite bound constant, that side of the
	// constraint is a yes/no fact, not a Gaussian integral
	if x.IsPointMass() {
		if done, msg, err := resolveConstSide(op, side, isBetween, x.Point(), lower, upper); done {
			return msg, err
		}
	}

	msg, logZ, err := boundMessageOnce(op, side, isBetween, x, lower, upper, cfg)
	if err == nil && math.IsInf(logZ, -1) && x.Precision < cfg.LowPrecisionThreshold && cfg.LowPrecisionThreshold > 0 {
		retryX := gauss.FromMeanAndPrecision(x.Mean(), cfg.LowPrecisionThreshold)
		msg, logZ, err = boundMessageOnce(op, side, isBetween, retryX, lower, upper, cfg)
	}
	if err != nil {
		return gauss.Gaussian{}, err
	}
	if math.IsInf(logZ, -1) {
		return gauss.Gaussian{}, fmt.Errorf("%s: zero mass under current beliefs: %w", op, ErrAllZero)
	}
	if !previous.IsUniform() {
		msg = DampGaussian(msg, previous, BoundMessageDamping)
	}
	return msg, nil
}

// resolveConstSide handles a point-mass x against a constant opposite
// bound. When the constant side already decides the event, the target
// bound sees either a plain probit factor or nothing at all; done
// reports whether the caller should return msg/err as-is.
func resolveConstSide(op string, side boundSide, isBetween gauss.Bernoulli, x0 float64, lower, upper Bound) (done bool, msg gauss.Gaussian, err error) {
	observedTrue := isBetween.IsPointMass() && isBetween.Point()
	var inPlay bool // the constant side permits the inside event
	switch side {
	case targetLower:
		if !upper.IsConst() {
			return false, gauss.Gaussian{}, nil
		}
		inPlay = x0 < upper.Const()
	case targetUpper:
		if !lower.IsConst() {
			return false, gauss.Gaussian{}, nil
		}
		inPlay = lower.Const() <= x0
	}
	if inPlay {
		// the event reduces to the target side's probit; the general
		// path handles it once the constant side is marked open
		return false, gauss.Gaussian{}, nil
	}
	if observedTrue {
		return true, gauss.Gaussian{}, fmt.Errorf("%s: observed x %g outside the constant bound: %w", op, x0, ErrAllZero)
	}
	// the inside component is impossible regardless of the target
	// bound, so the factor is flat in it
	return true, gauss.Uniform(), nil
}

func boundMessageOnce(op string, side boundSide, isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, cfg Config) (gauss.Gaussian, float64, error) {
	// a decided constant side contributes a factor of one; drop it
	// from the geometry rather than divide by its zero variance
	if x.IsPointMass() {
		if side == targetLower && upper.IsConst() {
			upper = ConstBound(math.Inf(1))
		}
		if side == targetUpper && lower.IsConst() {
			lower = ConstBound(math.Inf(-1))
		}
	}
	geo := newBoundGeometry(x, lower, upper)
	logZt := geo.logZ()
	alpha0, beta0 := geo.boundAlphaBeta(side, logZt)
	alpha, beta, logZ := mixtureAlphaBeta(isBetween, logZt, alpha0, beta0)
	if math.IsInf(logZ, -1) {
		return gauss.Gaussian{}, logZ, nil
	}
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return gauss.Gaussian{}, logZ, &NumericalError{
			Op:     op,
			Inputs: inputVector(x, lower, upper),
		}
	}
	target := lower
	if side == targetUpper {
		target = upper
	}
	msg, err := GaussianFromAlphaBeta(target.Belief(), alpha, beta, cfg.ForceProper)
	return msg, logZ, err
}

// boundAlphaBeta differentiates the inside log-mass with respect to
// the chosen bound's mean. Same corner-density ratios as the x-side
// derivatives, opposite orientation on the lower side.
func (g boundGeometry) boundAlphaBeta(side boundSide, logZ float64) (alpha, beta float64) {
	if math.IsInf(logZ, -1) {
		return 0, 0
	}
	oneSided := g.lowOpen || g.highOpen
	if oneSided {
		var y, sinv float64
		if side == targetLower {
			y, sinv = g.yL, g.sLinv
		} else {
			y, sinv = g.yU, g.sUinv
		}
		gr := math.Exp(specfn.NormalPdfLn(y) - logZ)
		alpha = gr * sinv
		if side == targetLower {
			alpha = -alpha
		}
		beta = alpha*alpha + y*gr*sinv*sinv
		return alpha, beta
	}
	sq := math.Sqrt(g.omr2)
	c1 := (g.yU - g.r*g.yL) / sq
	c2 := (g.yL - g.r*g.yU) / sq
	ratioC := math.Exp(specfn.NormalPdfLn(g.yL) + specfn.NormalPdfLn(c1) - logZ)
	if side == targetLower {
		ratioA := math.Exp(specfn.NormalPdfLn(g.yL) + specfn.NormalCdfLn(c1) - logZ)
		alpha = -ratioA * g.sLinv
		beta = g.sLinv * g.sLinv * (ratioA*ratioA + g.yL*ratioA + g.r*ratioC/sq)
		return alpha, beta
	}
	ratioB := math.Exp(specfn.NormalPdfLn(g.yU) + specfn.NormalCdfLn(c2) - logZ)
	alpha = ratioB * g.sUinv
	beta = g.sUinv * g.sUinv * (ratioB*ratioB + g.yU*ratioB + g.r*ratioC/sq)
	return alpha, beta
}
