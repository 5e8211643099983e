// SPDX-License-Identifier: MIT

package gauss

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/specfn"
)

// ErrBoundsOrder is returned when a truncation interval has its lower
// bound above its upper bound.
var ErrBoundsOrder = errors.New("gauss: lower bound exceeds upper bound")

// TruncatedGaussian is a Gaussian core restricted to the interval
// [LowerBound, UpperBound]. It is the natural message type for a
// bounded-interval factor whose bounds are compile-time constants.
// Invariant: LowerBound <= UpperBound, enforced at construction.
type TruncatedGaussian struct {
	Gaussian   Gaussian
	LowerBound float64
	UpperBound float64
}

// NewTruncatedGaussian restricts core to [lower, upper].
func NewTruncatedGaussian(core Gaussian, lower, upper float64) (TruncatedGaussian, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return TruncatedGaussian{}, fmt.Errorf("gauss: NaN truncation bound [%g, %g]", lower, upper)
	}
	if lower > upper {
		return TruncatedGaussian{}, fmt.Errorf("gauss: [%g, %g]: %w", lower, upper, ErrBoundsOrder)
	}
	return TruncatedGaussian{Gaussian: core, LowerBound: lower, UpperBound: upper}, nil
}

// IsUnbounded reports whether the interval covers the whole real line.
func (t TruncatedGaussian) IsUnbounded() bool {
	return math.IsInf(t.LowerBound, -1) && math.IsInf(t.UpperBound, 1)
}

// MeanAndVariance returns the moments of the truncated distribution.
// A uniform core over a finite interval gives the uniform-interval
// moments; a uniform core over a half-line has no finite moments and
// reports an infinite variance.
func (t TruncatedGaussian) MeanAndVariance() (mean, variance float64) {
	g := t.Gaussian
	switch g.Shape() {
	case ShapePointMass:
		return g.Point(), 0
	case ShapeUniform:
		if !math.IsInf(t.LowerBound, 0) && !math.IsInf(t.UpperBound, 0) {
			w := t.UpperBound - t.LowerBound
			return (t.LowerBound + t.UpperBound) / 2, w * w / 12
		}
		return g.Mean(), math.Inf(1)
	case ShapeImproper:
		return math.NaN(), math.NaN()
	}
	if t.LowerBound == t.UpperBound {
		return t.LowerBound, 0
	}
	m, v := g.MeanAndVariance()
	s := math.Sqrt(g.Precision)
	zL := (t.LowerBound - m) * s
	zU := (t.UpperBound - m) * s
	_, ez, vz := specfn.IntervalMoments(zL, zU)
	return m + ez/s, v * vz
}

// Mean returns the truncated mean.
func (t TruncatedGaussian) Mean() float64 {
	m, _ := t.MeanAndVariance()
	return m
}

// Variance returns the truncated variance.
func (t TruncatedGaussian) Variance() float64 {
	_, v := t.MeanAndVariance()
	return v
}

// LogNormalizer returns log P(LowerBound <= X <= UpperBound) under the
// core belief: the log-partition of the truncation.
func (t TruncatedGaussian) LogNormalizer() float64 {
	g := t.Gaussian
	if g.Shape() != ShapeProper {
		return 0
	}
	m := g.Mean()
	s := math.Sqrt(g.Precision)
	return specfn.NormalCdfDiffLn((t.LowerBound-m)*s, (t.UpperBound-m)*s)
}

// ToGaussian projects the truncated distribution onto a Gaussian by
// moment matching.
func (t TruncatedGaussian) ToGaussian() Gaussian {
	mean, variance := t.MeanAndVariance()
	return FromMeanAndVariance(mean, variance)
}

func (t TruncatedGaussian) String() string {
	return fmt.Sprintf("TruncatedGaussian(%v on [%g, %g])", t.Gaussian, t.LowerBound, t.UpperBound)
}
