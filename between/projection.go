// SPDX-License-Identifier: MIT

package between

import (
	"math"

	"github.com/katalvlaran/epfactors/gauss"
)

// GaussianFromAlphaBeta converts the derivatives of a log-partition
// function into the outgoing message, dividing the moment-matched
// posterior by the incoming belief in one step:
//
//	alpha = dlogZ/dm,  beta = -dalpha/dm
//	weight = beta / (prec - beta)
//	result = N(tau', prec') with prec' = prec*weight,
//	         tau' = weight*(tau+alpha) + alpha
//
// where (tau, prec) are x's natural parameters. Working in this form
// skips the posterior-variance subtraction that loses digits when the
// message is weak.
//
// beta > prec would make the division produce a negative-precision
// message; forceProper clips it to uniform instead. beta == prec is
// the genuinely deterministic case and yields a point mass at the
// posterior mean, as does any weight large enough to push prec' past
// ForcedPrecisionCap.
func GaussianFromAlphaBeta(x gauss.Gaussian, alpha, beta float64, forceProper bool) (gauss.Gaussian, error) {
	tau, prec := x.MeanTimesPrecision, x.Precision
	if beta == 0 {
		// flat logZ curvature: the factor moves the mean only
		return gauss.FromNatural(alpha, 0), nil
	}
	denom := prec - beta
	if denom == 0 {
		return pointMassResult(x, alpha)
	}
	weight := beta / denom
	if forceProper && weight < 0 {
		weight = 0
	}
	rPrec := prec * weight
	rTau := weight*(tau+alpha) + alpha
	if rPrec >= ForcedPrecisionCap {
		return pointMassResult(x, alpha)
	}
	if math.IsNaN(rTau) || math.IsNaN(rPrec) || math.IsInf(rTau, 0) {
		return gauss.Gaussian{}, &NumericalError{
			Op:     "GaussianFromAlphaBeta",
			Inputs: []float64{tau, prec, alpha, beta},
		}
	}
	return gauss.FromNatural(rTau, rPrec), nil
}

// pointMassResult is the limit of GaussianFromAlphaBeta as the
// message precision diverges: a point mass at the posterior mean.
func pointMassResult(x gauss.Gaussian, alpha float64) (gauss.Gaussian, error) {
	postMean := (x.MeanTimesPrecision + alpha) / x.Precision
	if math.IsNaN(postMean) {
		return gauss.Gaussian{}, &NumericalError{
			Op:     "GaussianFromAlphaBeta",
			Inputs: []float64{x.MeanTimesPrecision, x.Precision, alpha},
		}
	}
	return gauss.PointMass(postMean), nil
}

// DampGaussian blends a freshly computed message with the previous
// iteration's message in natural-parameter space:
//
//	result = next^(1-damping) * previous^damping
//
// damping 0 returns next unchanged. Point masses do not scale (a
// fractional power of a delta is the same delta), so either side
// being a point mass returns next as-is.
func DampGaussian(next, previous gauss.Gaussian, damping float64) gauss.Gaussian {
	if damping == 0 || next.IsPointMass() || previous.IsPointMass() {
		return next
	}
	return gauss.FromNatural(
		(1-damping)*next.MeanTimesPrecision+damping*previous.MeanTimesPrecision,
		(1-damping)*next.Precision+damping*previous.Precision,
	)
}
