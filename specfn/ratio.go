// SPDX-License-Identifier: MIT

package specfn

import "math"

// Threshold constants of the dual-formula policy. Each quantity in this
// file has two mathematically equivalent forms: a direct one that
// subtracts tail probabilities, and a ratio/series one that cannot
// cancel. The switch points below are empirically chosen stability
// cutoffs, not tunables.
const (
	// CdfDiffRelThreshold: the direct log-CDF subtraction in
	// NormalCdfDiffLn and IntervalMoments is used only when the
	// standardized interval width is at least this fraction of the
	// larger |z| offset.
	CdfDiffRelThreshold = 0.7

	// CdfDiffAbsThreshold: the direct subtraction additionally requires
	// the standardized width to exceed this absolute value.
	CdfDiffAbsThreshold = 1e-3

	// LargeZThreshold: beyond this many standard deviations the
	// truncated-moment formulas switch from direct algebra to the
	// Mills-ratio asymptotic forms to avoid 0/0 from vanishing tails.
	LargeZThreshold = 3.5
)

// Internal regime boundaries (accuracy crossovers, see each use).
const (
	// Upward moment-ratio recurrences subtract z*R_k from R_{k-1} and
	// lose about eps*z^2 relative accuracy; past these |z| marks the
	// asymptotic series takes over. The ratio-difference cutoff is
	// shallower because its Taylor error compounds per term.
	momentRatioAsymZ = -20.0
	ratioDiffAsymZ   = -100.0

	// The short-interval power series for interval moments is used when
	// width*max(1,|z|) stays below this; the series then converges in
	// ~15 terms with strictly decaying terms.
	narrowSeriesLimit = 0.5

	ratioSeriesMaxTerms = 2000
)

// NormalCdfMomentRatio returns R_n(z), the n-th moment ratio: the n-th
// derivative of NormalCdfRatio at z divided by n!. R_0 is
// NormalCdfRatio itself, and the family satisfies
//
//	(n+1) R_{n+1}(z) = z R_n(z) + R_{n-1}(z),  R_{-1} = 1.
//
// R_n(z) = (1/n!) * Integral_0^inf u^n exp(z u - u^2/2) du > 0 for all
// real z. Panics if n < 0.
func NormalCdfMomentRatio(n int, z float64) float64 {
	if n < 0 {
		panic("specfn: NormalCdfMomentRatio requires n >= 0")
	}
	if z < momentRatioAsymZ {
		return momentRatioAsym(n, z)
	}
	rPrev, rCur := 1.0, NormalCdfRatio(z)
	for k := 1; k <= n; k++ {
		rPrev, rCur = rCur, (z*rCur+rPrev)/float64(k)
	}
	return rCur
}

// momentRatioAsym evaluates R_n(z) for deep negative z by the
// asymptotic expansion
//
//	R_n(z) = sum_j (-1)^j (2j-1)!! C(2j+n,n) (-z)^(-(2j+1+n)),
//
// truncated at the smallest term.
func momentRatioAsym(n int, z float64) float64 {
	if math.IsInf(z, -1) {
		return 0
	}
	y := 1 / (-z)
	y2 := y * y
	// term_0 = (-z)^-(n+1)
	term := math.Pow(y, float64(n+1))
	sum := term
	prevAbs := math.Abs(term)
	for j := 0; j < 60; j++ {
		// ratio of consecutive terms: -(2j+n+1)(2j+n+2)/(2j+2) * y^2
		term *= -float64(2*j+n+1) * float64(2*j+n+2) / float64(2*j+2) * y2
		abs := math.Abs(term)
		if abs >= prevAbs {
			// asymptotic series started diverging; stop at min term
			break
		}
		sum += term
		if abs < 1e-18*math.Abs(sum) {
			break
		}
		prevAbs = abs
	}
	return sum
}

// NormalCdfRatioDiff returns R(z+delta) - R(z) for delta > 0, computed
// without the cancellation of the naive subtraction when delta is small
// relative to |z|. Intended for z <= 0; this is the ratio-difference
// primitive that underlies the interval computations.
//
// Four regimes, in order of preference once delta is validated:
//   - delta well separated from z (or delta*|z| >= 1, or any positive z
//     territory): direct subtraction, which cancels by at most a factor
//     of |z|/delta and keeps essentially full accuracy.
//   - z below ratioDiffAsymZ: term-by-term differencing of the
//     asymptotic expansion through expm1/log1p.
//   - otherwise (delta*|z| < 1): the Taylor series in delta. The
//     upward recurrence that generates its coefficients amplifies
//     roundoff by (|z|*delta)^n/n!, so the series is only entered when
//     that product is below one and the amplification stays bounded.
func NormalCdfRatioDiff(z, delta float64) float64 {
	if delta <= 0 {
		if delta == 0 {
			return 0
		}
		return math.NaN()
	}
	if delta >= 0.5*(-z) {
		return NormalCdfRatio(z+delta) - NormalCdfRatio(z)
	}
	if z < ratioDiffAsymZ {
		return ratioDiffAsym(z, delta)
	}
	if delta*(-z) >= 1 {
		return NormalCdfRatio(z+delta) - NormalCdfRatio(z)
	}
	// Taylor series: R(z+d) - R(z) = sum_{n>=1} R_n(z) d^n, with R_n
	// generated by the upward recurrence. All terms are positive.
	rPrev, rCur := 1.0, NormalCdfRatio(z)
	sum := 0.0
	pow := 1.0
	for n := 1; n <= ratioSeriesMaxTerms; n++ {
		rPrev, rCur = rCur, (z*rCur+rPrev)/float64(n)
		pow *= delta
		term := rCur * pow
		sum += term
		if term <= 1e-18*sum {
			break
		}
	}
	return sum
}

// ratioDiffAsym evaluates R(z+delta)-R(z) for deep z by differencing
// the asymptotic expansion term-by-term through expm1/log1p, which
// keeps full accuracy even when delta/|z| is tiny.
func ratioDiffAsym(z, delta float64) float64 {
	y := 1 / (-z)
	t := delta * y // in (0,1) here
	lg := math.Log1p(-t)
	coef := y // (2j-1)!! * y^(2j+1) at j=0
	sum := 0.0
	sign := 1.0
	for j := 0; j < 30; j++ {
		m := float64(2*j + 1)
		// (-z-delta)^-m - (-z)^-m = (-z)^-m * expm1(-m*log1p(-t))
		term := sign * coef * math.Expm1(-m*lg)
		sum += term
		if math.Abs(term) < 1e-18*math.Abs(sum) {
			break
		}
		sign = -sign
		coef *= m * y * y // (2(j+1)-1)!! = (2j+1)!! = (2j+1)*(2j-1)!!
	}
	return sum
}

// NormalCdfDiffLn returns log(Phi(zU) - Phi(zL)) for zL <= zU, stable
// for intervals anywhere in the real line, including both offsets deep
// in the same tail.
func NormalCdfDiffLn(zL, zU float64) float64 {
	logZ, _, _ := IntervalMoments(zL, zU)
	return logZ
}

// IntervalMoments returns, for a standard normal Z conditioned on the
// event zL <= Z < zU:
//
//	logZ — log P(zL <= Z < zU)
//	ez   — E[Z | event]
//	vz   — Var(Z | event)
//
// It is the single numerical engine behind the interval log-partition
// function and the truncated-Gaussian moments. The computation always
// subtracts two similar-magnitude, same-sign quantities: the interval
// is first reflected into the left tail, then one of three equivalent
// formulas runs:
//
//   - direct log-CDF subtraction, only when the width is large relative
//     to the offsets (CdfDiffRelThreshold, CdfDiffAbsThreshold);
//   - a short-interval power series when the width is small;
//   - the Mills-ratio difference recurrence otherwise, with asymptotic
//     moment forms once the interval sits beyond LargeZThreshold.
//
// Degenerate inputs: zL == zU gives logZ = -Inf with the point-limit
// moments; an empty or NaN configuration returns NaN moments.
func IntervalMoments(zL, zU float64) (logZ, ez, vz float64) {
	switch {
	case math.IsNaN(zL) || math.IsNaN(zU):
		nan := math.NaN()
		return nan, nan, nan
	case zL > zU:
		nan := math.NaN()
		return nan, nan, nan
	case zL == zU:
		return math.Inf(-1), zL, 0
	case math.IsInf(zL, -1) && math.IsInf(zU, 1):
		return 0, 0, 1
	case math.IsInf(zL, -1):
		ez, vz = upperTailMoments(zU)
		return NormalCdfLn(zU), ez, vz
	case math.IsInf(zU, 1):
		// reflect the one-sided case into the upper-truncated form
		ez, vz = upperTailMoments(-zL)
		return NormalCdfLn(-zL), -ez, vz
	}

	// Orient the finite interval into the left tail so that the
	// larger-magnitude offset is the lower edge a.
	flip := zL+zU > 0
	a, b := zL, zU
	if flip {
		a, b = -zU, -zL
	}
	d := b - a
	delta := -(a + b) / 2 // >= 0 by orientation
	em1 := math.Expm1(-d * delta)

	type method int
	const (
		direct method = iota
		narrow
		ratio
	)
	var logM method
	switch {
	case d >= CdfDiffRelThreshold*(-a) && d > CdfDiffAbsThreshold:
		logM = direct
	case d*math.Max(1, math.Abs(b)) <= narrowSeriesLimit:
		logM = narrow
	default:
		logM = ratio
	}

	w := math.NaN() // Z/phi(b), computed lazily
	switch logM {
	case direct:
		la, lb := NormalCdfLn(a), NormalCdfLn(b)
		logZ = lb + Log1MinusExp(la-lb)
	case narrow:
		m0, m1, m2 := narrowIntervalMoments(b, d)
		logZ = NormalPdfLn(b) + math.Log(m0)
		ezo := b - m1/m0
		vz = math.Max((m2*m0-m1*m1)/(m0*m0), 0)
		ez = ezo
		if flip {
			ez = -ezo
		}
		return logZ, ez, vz
	case ratio:
		w = NormalCdfRatioDiff(a, d) + (-em1)*NormalCdfRatio(a)
		logZ = NormalPdfLn(b) + math.Log(w)
	}

	var ezo float64
	if b < -LargeZThreshold {
		// interval deep in the tail: direct algebra would divide two
		// vanishing quantities, so use the moment-ratio forms
		if math.IsNaN(w) {
			w = NormalCdfRatioDiff(a, d) + (-em1)*NormalCdfRatio(a)
		}
		ezo, vz = tailIntervalMoments(a, b, d, delta, w)
	} else {
		invW := math.Exp(NormalPdfLn(b) - logZ)
		ezo = em1 * invW
		r2 := (a*em1 - d) * invW
		vz = math.Max(1+r2-ezo*ezo, 0)
	}
	ez = ezo
	if flip {
		ez = -ezo
	}
	return logZ, ez, vz
}

// upperTailMoments returns E[Z | Z < zU] and Var(Z | Z < zU).
func upperTailMoments(zU float64) (ez, vz float64) {
	if zU >= 0 {
		// truncation barely binds: small corrections off the prior
		g := 1 / NormalCdfRatio(zU) // phi(zU)/Phi(zU), underflows to 0 deep
		ez = -g
		vz = math.Max(1-zU*g-g*g, 0)
		return ez, vz
	}
	// deep or moderate left truncation point: moments of T = zU - Z,
	// which has density prop. to exp(zU*t - t^2/2) on t >= 0, so
	// E[T^n] = n! R_n(zU)/R_0(zU)
	r0 := NormalCdfRatio(zU)
	r1 := NormalCdfMomentRatio(1, zU)
	r2 := NormalCdfMomentRatio(2, zU)
	m1 := r1 / r0
	ez = zU - m1
	vz = math.Max(2*r2/r0-m1*m1, 0)
	return ez, vz
}

// narrowIntervalMoments computes M_n = Integral_0^d t^n exp(b*t-t^2/2) dt
// for n = 0,1,2 by power series, valid while d*max(1,|b|) is small. With
// T = b - Z these are the unnormalized moments of the interval.
func narrowIntervalMoments(b, d float64) (m0, m1, m2 float64) {
	// exp(b*t - t^2/2) = sum_m g_m t^m with m*g_m = b*g_{m-1} - g_{m-2}
	gPrev, gCur := 0.0, 1.0 // g_{-1}, g_0
	dPow := d
	for m := 0; m < 40; m++ {
		t0 := gCur * dPow / float64(m+1)
		t1 := gCur * dPow * d / float64(m+2)
		t2 := gCur * dPow * d * d / float64(m+3)
		m0 += t0
		m1 += t1
		m2 += t2
		if math.Abs(t0) < 1e-18*math.Abs(m0) && m > 2 {
			break
		}
		gPrev, gCur = gCur, (b*gCur-gPrev)/float64(m+1)
		dPow *= d
	}
	return m0, m1, m2
}

// tailIntervalMoments computes the oriented mean and variance for an
// interval [a, b] deep in the left tail via the moment-ratio family.
// With T = b - Z restricted to [0, d]:
//
//	M_0 = w
//	M_1 = R_1(b) - q (d R_0(a) + R_1(a))
//	M_2 = 2 R_2(b) - q (d^2 R_0(a) + 2 d R_1(a) + 2 R_2(a))
//
// where q = exp(-d*delta) = phi(a)/phi(b).
func tailIntervalMoments(a, b, d, delta, w float64) (ezo, vz float64) {
	r1b := NormalCdfMomentRatio(1, b)
	r2b := NormalCdfMomentRatio(2, b)
	m0 := w
	m1 := r1b
	m2 := 2 * r2b
	q := math.Exp(-d * delta)
	if q > 0 {
		r0a := NormalCdfRatio(a)
		r1a := NormalCdfMomentRatio(1, a)
		r2a := NormalCdfMomentRatio(2, a)
		m1 -= q * (d*r0a + r1a)
		m2 -= q * (d*d*r0a + 2*d*r1a + 2*r2a)
	}
	// T lives on [0, d], so its mean and variance are bracketed; the
	// clamps absorb roundoff from the subtractions above.
	mean := math.Min(math.Max(m1/m0, 0), d)
	ezo = b - mean
	vz = math.Min(math.Max(m2/m0-mean*mean, 0), d*d/4)
	return ezo, vz
}
