// SPDX-License-Identifier: MIT

package between

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/katalvlaran/epfactors/specfn"
)

// XAverageConditional returns the EP message to X given a Bernoulli
// belief over the interval indicator. The factor seen from X is the
// mixture
//
//	f(x) = pT * 1[lower <= x < upper] + pF * 1[otherwise]
//
// so the derivatives of its log-partition function are a reweighting
// of the observed-true derivatives (alpha0, beta0):
//
//	k     = (pT - pF) * Zin / Z
//	alpha = k * alpha0
//	beta  = alpha^2 + k * (beta0 - alpha0^2)
//
// A uniform isBetween makes the factor constant and the message
// uniform. A point-mass-false belief routes through the same transform
// with k < 0, which pushes X away from the interval.
func XAverageConditional(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, cfg Config) (gauss.Gaussian, error) {
	if err := validateInputs("XAverageConditional", x, lower, upper); err != nil {
		return gauss.Gaussian{}, err
	}
	if isBetween.IsUniform() {
		return gauss.Uniform(), nil
	}
	if lower.IsConst() && upper.IsConst() {
		return xMessageConst(isBetween, x, lower.Const(), upper.Const(), cfg)
	}
	return xMessageRandom(isBetween, x, lower, upper, cfg)
}

// XAverageConditionalObserved is XAverageConditional with the interval
// indicator observed rather than inferred.
func XAverageConditionalObserved(isBetween bool, x gauss.Gaussian, lower, upper Bound, cfg Config) (gauss.Gaussian, error) {
	return XAverageConditional(gauss.BernoulliPointMass(isBetween), x, lower, upper, cfg)
}

func xMessageConst(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper float64, cfg Config) (gauss.Gaussian, error) {
	observedTrue := isBetween.IsPointMass() && isBetween.Point()
	switch {
	case lower > upper:
		return gauss.Gaussian{}, fmt.Errorf("XAverageConditional: bounds [%g, %g]: %w", lower, upper, ErrAllZero)
	case lower == upper:
		if math.IsInf(lower, 0) {
			return gauss.Gaussian{}, fmt.Errorf("XAverageConditional: empty interval at %g: %w", lower, ErrAllZero)
		}
		if observedTrue {
			return gauss.PointMass(lower), nil
		}
		// the inside component has zero width and zero mass
		return gauss.Uniform(), nil
	case math.IsInf(lower, -1) && math.IsInf(upper, 1):
		if isBetween.IsPointMass() && !isBetween.Point() {
			return gauss.Gaussian{}, fmt.Errorf("XAverageConditional: observed false on (-Inf, +Inf): %w", ErrAllZero)
		}
		return gauss.Uniform(), nil
	}
	switch x.Shape() {
	case gauss.ShapeUniform:
		// a flat belief has no tails to trade off: the best Gaussian
		// summary of the inside component is the interval itself
		if observedTrue && !math.IsInf(lower, 0) && !math.IsInf(upper, 0) {
			mid := lower + (upper-lower)/2
			return gauss.FromMeanAndVariance(mid, (upper-lower)*(upper-lower)/12), nil
		}
		return gauss.Uniform(), nil
	case gauss.ShapePointMass:
		// the indicator is flat almost everywhere around an observed x
		return gauss.Uniform(), nil
	}
	if x.Precision >= ForcedPrecisionCap {
		return gauss.Uniform(), nil
	}
	sqrtPrec := math.Sqrt(x.Precision)
	mx := x.Mean()
	logZt, ez, vz := specfn.IntervalMoments((lower-mx)*sqrtPrec, (upper-mx)*sqrtPrec)
	alpha0 := sqrtPrec * ez
	beta0 := x.Precision * (1 - vz)
	alpha, beta, logZ := mixtureAlphaBeta(isBetween, logZt, alpha0, beta0)
	if math.IsInf(logZ, -1) {
		return gauss.Gaussian{}, fmt.Errorf("XAverageConditional: zero mass on [%g, %g] under %v: %w", lower, upper, x, ErrAllZero)
	}
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return gauss.Gaussian{}, &NumericalError{
			Op:     "XAverageConditional",
			Inputs: []float64{x.MeanTimesPrecision, x.Precision, lower, upper, isBetween.LogOdds},
		}
	}
	return GaussianFromAlphaBeta(x, alpha, beta, cfg.ForceProper)
}

func xMessageRandom(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, cfg Config) (gauss.Gaussian, error) {
	if x.Shape() == gauss.ShapeUniform {
		return gauss.Uniform(), nil
	}
	msg, logZ, err := xMessageRandomOnce(isBetween, x, lower, upper, cfg)
	if err == nil && math.IsInf(logZ, -1) && x.Precision < cfg.LowPrecisionThreshold && cfg.LowPrecisionThreshold > 0 {
		// a near-flat belief can push both standardized offsets so far
		// out that Z underflows while the true mass is positive; one
		// retry at the threshold precision restores the information
		retryX := gauss.FromMeanAndPrecision(x.Mean(), cfg.LowPrecisionThreshold)
		msg, logZ, err = xMessageRandomOnce(isBetween, retryX, lower, upper, cfg)
	}
	if err != nil {
		return gauss.Gaussian{}, err
	}
	if math.IsInf(logZ, -1) {
		return gauss.Gaussian{}, fmt.Errorf("XAverageConditional: zero mass under current beliefs: %w", ErrAllZero)
	}
	return msg, nil
}

func xMessageRandomOnce(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound, cfg Config) (gauss.Gaussian, float64, error) {
	geo := newBoundGeometry(x, lower, upper)
	logZt := geo.logZ()
	alpha0, beta0 := geo.alphaBeta(logZt)
	alpha, beta, logZ := mixtureAlphaBeta(isBetween, logZt, alpha0, beta0)
	if math.IsInf(logZ, -1) {
		return gauss.Gaussian{}, logZ, nil
	}
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return gauss.Gaussian{}, logZ, &NumericalError{
			Op:     "XAverageConditional",
			Inputs: inputVector(x, lower, upper),
		}
	}
	if x.IsPointMass() {
		// limit of the projection as x's precision diverges
		msg := gauss.FromNatural(beta*x.Point()+alpha, beta)
		return msg, logZ, nil
	}
	msg, err := GaussianFromAlphaBeta(x, alpha, beta, cfg.ForceProper)
	return msg, logZ, err
}

// mixtureAlphaBeta folds the Bernoulli belief over the indicator into
// the observed-true derivatives. logZt is the log-mass of the inside
// component; the returned logZ is the log-partition of the mixture.
func mixtureAlphaBeta(isBetween gauss.Bernoulli, logZt, alpha0, beta0 float64) (alpha, beta, logZ float64) {
	if isBetween.IsPointMass() && isBetween.Point() {
		return alpha0, beta0, logZt
	}
	logZout := specfn.Log1MinusExp(logZt)
	logZ = specfn.LogSumExp(isBetween.LogProbTrue()+logZt, isBetween.LogProbFalse()+logZout)
	if math.IsInf(logZ, -1) {
		return 0, 0, logZ
	}
	// tanh(logOdds/2) is pT-pF without cancellation at either extreme
	k := math.Tanh(isBetween.LogOdds/2) * math.Exp(logZt-logZ)
	alpha = k * alpha0
	beta = alpha*alpha + k*(beta0-alpha0*alpha0)
	return alpha, beta, logZ
}

// alphaBeta returns the derivatives of the inside log-mass with
// respect to X's mean. For two finite random bounds these come from
// the bivariate corner density; writing them as exp-of-log-difference
// ratios keeps them finite however deep in the tails logZ sits.
func (g boundGeometry) alphaBeta(logZ float64) (alpha, beta float64) {
	if math.IsInf(logZ, -1) {
		return 0, 0
	}
	switch {
	case g.lowOpen && g.highOpen:
		return 0, 0
	case g.lowOpen:
		gU := math.Exp(specfn.NormalPdfLn(g.yU) - logZ)
		alpha = -gU * g.sUinv
		beta = alpha*alpha + g.yU*gU*g.sUinv*g.sUinv
		return alpha, beta
	case g.highOpen:
		gL := math.Exp(specfn.NormalPdfLn(g.yL) - logZ)
		alpha = gL * g.sLinv
		beta = alpha*alpha + g.yL*gL*g.sLinv*g.sLinv
		return alpha, beta
	}
	sq := math.Sqrt(g.omr2)
	c1 := (g.yU - g.r*g.yL) / sq
	c2 := (g.yL - g.r*g.yU) / sq
	ratioA := math.Exp(specfn.NormalPdfLn(g.yL) + specfn.NormalCdfLn(c1) - logZ)
	ratioB := math.Exp(specfn.NormalPdfLn(g.yU) + specfn.NormalCdfLn(c2) - logZ)
	ratioC := math.Exp(specfn.NormalPdfLn(g.yL) + specfn.NormalPdfLn(c1) - logZ)
	alpha = ratioA*g.sLinv - ratioB*g.sUinv
	cTerm := (g.vL*g.sLinv*g.sLinv + g.vU*g.sUinv*g.sUinv) * g.sLinv * g.sUinv
	beta = alpha*alpha +
		g.yL*ratioA*g.sLinv*g.sLinv +
		g.yU*ratioB*g.sUinv*g.sUinv +
		ratioC*cTerm/sq
	return alpha, beta
}
