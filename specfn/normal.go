// SPDX-License-Identifier: MIT

package specfn

import "math"

// Regime boundaries for the univariate normal CDF family. These are
// accuracy crossovers, not tunables: below cfRatioZ the erfc-based
// formulas for the ratio lose relative accuracy to the exp factor, so
// the continued fraction takes over; above logOnePlusZ the CDF is so
// close to 1 that log(CDF) must go through log1p of the opposite tail.
const (
	cfRatioZ    = -8.0
	logOnePlusZ = 5.0

	// cfDepth is the continued-fraction truncation depth. At the
	// shallowest point it is used (|z| = 8) the fraction has converged
	// to double precision well before 60 terms.
	cfDepth = 60
)

// NormalPdf returns the standard normal density at z.
func NormalPdf(z float64) float64 { return math.Exp(NormalPdfLn(z)) }

// NormalPdfLn returns the log of the standard normal density at z.
func NormalPdfLn(z float64) float64 { return -0.5*z*z - LnSqrt2Pi }

// NormalCdf returns Phi(z), the standard normal CDF, via erfc so that
// the lower tail keeps full relative accuracy down to the underflow
// threshold (z ~ -38).
func NormalCdf(z float64) float64 { return 0.5 * math.Erfc(-z/math.Sqrt2) }

// NormalCdfLn returns log(Phi(z)) for any real z, including tails far
// beyond the point where Phi itself underflows or rounds to 1.
//
// Three regimes:
//   - z > 5: Phi(z) rounds to 1, so go through the opposite tail with
//     log1p(-Phi(-z)).
//   - -8 <= z <= 5: direct log of the erfc-based CDF.
//   - z < -8: Phi(z) = phi(z)*R(z) with R the Mills-type ratio from the
//     continued fraction; log phi is exact arithmetic.
func NormalCdfLn(z float64) float64 {
	switch {
	case math.IsNaN(z):
		return math.NaN()
	case z > logOnePlusZ:
		return math.Log1p(-NormalCdf(-z))
	case z >= cfRatioZ:
		return math.Log(NormalCdf(z))
	case math.IsInf(z, -1):
		return math.Inf(-1)
	default:
		return NormalPdfLn(z) + math.Log(NormalCdfRatio(z))
	}
}

// NormalCdfRatio returns R(z) = Phi(z)/phi(z), the lower-tail variant of
// the Mills ratio.
//
// For z >= -8 the definition is evaluated directly (erfc keeps relative
// accuracy there, and the exp factor cannot overflow until z ~ 38, where
// R legitimately diverges to +Inf). For z < -8 the classical continued
// fraction
//
//	R(z) = 1/(-z + 1/(-z + 2/(-z + 3/(...))))
//
// is evaluated by backward recurrence; it converges fast in the deep
// tail and never cancels.
func NormalCdfRatio(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	if z < cfRatioZ {
		if math.IsInf(z, -1) {
			return 0
		}
		x := -z
		f := x
		for k := cfDepth; k >= 1; k-- {
			f = x + float64(k)/f
		}
		return 1 / f
	}
	return NormalCdf(z) * math.Exp(0.5*z*z) * Sqrt2Pi
}
