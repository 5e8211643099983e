// SPDX-License-Identifier: MIT

package specfn

import "math"

// Mathematical constants used throughout the package.
const (
	// Ln2 is the natural logarithm of 2.
	Ln2 = 0.6931471805599453

	// LnSqrt2Pi is ln(sqrt(2*pi)), the log-normalizer of the standard
	// normal density.
	LnSqrt2Pi = 0.9189385332046727

	// Sqrt2Pi is sqrt(2*pi).
	Sqrt2Pi = 2.5066282746310002
)

// ExpMinus1 returns exp(x)-1, accurate for x near zero where the naive
// subtraction would cancel.
func ExpMinus1(x float64) float64 { return math.Expm1(x) }

// Log1Plus returns log(1+x), accurate for x near zero.
func Log1Plus(x float64) float64 { return math.Log1p(x) }

// Log1PlusExp returns log(1+exp(x)) without overflowing for large x.
func Log1PlusExp(x float64) float64 {
	if x > 36 {
		// exp(-x) < 2^-52: log(1+exp(x)) == x to machine precision.
		return x
	}
	if x < -745 {
		// exp(x) underflows entirely.
		return 0
	}
	return math.Log1p(math.Exp(x))
}

// Log1MinusExp returns log(1-exp(x)) for x <= 0.
// Returns -Inf at x == 0 and NaN for x > 0.
func Log1MinusExp(x float64) float64 {
	if x > 0 {
		return math.NaN()
	}
	if x > -Ln2 {
		// 1-exp(x) is small: expm1 keeps the leading digits.
		return math.Log(-math.Expm1(x))
	}
	return math.Log1p(-math.Exp(x))
}

// LogSumExp returns log(exp(a)+exp(b)) without overflow.
// -Inf arguments behave as zero summands.
func LogSumExp(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) {
		// both -Inf
		return math.Inf(-1)
	}
	if math.IsInf(a, 1) {
		return math.Inf(1)
	}
	return a + Log1PlusExp(b-a)
}

// LogDifferenceOfExp returns log(exp(a)-exp(b)) for a >= b.
// Returns -Inf when a == b and NaN when a < b.
func LogDifferenceOfExp(a, b float64) float64 {
	if a < b {
		return math.NaN()
	}
	if a == b {
		return math.Inf(-1)
	}
	if math.IsInf(b, -1) {
		return a
	}
	return a + Log1MinusExp(b-a)
}

// LogitFromLogProb converts log(p) into log(p/(1-p)) without ever
// forming p. logProb must lie in [-Inf, 0]: -Inf maps to -Inf (certain
// false) and 0 maps to +Inf (certain true).
func LogitFromLogProb(logProb float64) float64 {
	if logProb >= 0 {
		return math.Inf(1)
	}
	return logProb - Log1MinusExp(logProb)
}

// Logistic returns 1/(1+exp(-x)), mapping a log-odds value to a
// probability. Saturates cleanly at 0 and 1 for infinite arguments.
func Logistic(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	// Evaluate through exp(x) to keep relative accuracy for x << 0.
	e := math.Exp(x)
	return e / (1 + e)
}

// LogisticLn returns log(Logistic(x)) = -Log1PlusExp(-x).
func LogisticLn(x float64) float64 { return -Log1PlusExp(-x) }
