// SPDX-License-Identifier: MIT

package gauss

import (
	"fmt"
	"math"
)

// Shape is the tagged state of a Gaussian belief. Operators switch on
// it to pick the right regime; the cases are mutually exclusive and
// cover every representable value.
type Shape int

const (
	// ShapeProper: finite positive precision, a genuine distribution.
	ShapeProper Shape = iota
	// ShapePointMass: infinite precision, all mass at Point().
	ShapePointMass
	// ShapeUniform: zero precision, no information.
	ShapeUniform
	// ShapeImproper: negative precision; legal as an intermediate
	// (e.g. a cavity), illegal as an outgoing message unless forced.
	ShapeImproper
)

func (s Shape) String() string {
	switch s {
	case ShapeProper:
		return "proper"
	case ShapePointMass:
		return "point-mass"
	case ShapeUniform:
		return "uniform"
	case ShapeImproper:
		return "improper"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Gaussian is a one-dimensional Gaussian in canonical natural
// parameters. For a point mass (Precision = +Inf) MeanTimesPrecision
// holds the point location itself, so that the value stays finite and
// recoverable.
type Gaussian struct {
	MeanTimesPrecision float64
	Precision          float64
}

// FromNatural builds a Gaussian directly from natural parameters.
func FromNatural(meanTimesPrecision, precision float64) Gaussian {
	return Gaussian{MeanTimesPrecision: meanTimesPrecision, Precision: precision}
}

// FromMeanAndPrecision builds a Gaussian from its mean and precision.
// An infinite precision yields a point mass at the mean.
func FromMeanAndPrecision(mean, precision float64) Gaussian {
	if math.IsInf(precision, 1) {
		return PointMass(mean)
	}
	return Gaussian{MeanTimesPrecision: mean * precision, Precision: precision}
}

// FromMeanAndVariance builds a Gaussian from its mean and variance.
// Zero variance yields a point mass, infinite variance the uniform.
func FromMeanAndVariance(mean, variance float64) Gaussian {
	switch {
	case variance == 0:
		return PointMass(mean)
	case math.IsInf(variance, 1):
		return Uniform()
	default:
		return FromMeanAndPrecision(mean, 1/variance)
	}
}

// PointMass returns the degenerate Gaussian with all mass at v.
func PointMass(v float64) Gaussian {
	return Gaussian{MeanTimesPrecision: v, Precision: math.Inf(1)}
}

// Uniform returns the zero-information Gaussian.
func Uniform() Gaussian {
	return Gaussian{}
}

// IsPointMass reports whether g has all its mass at a single point.
func (g Gaussian) IsPointMass() bool { return math.IsInf(g.Precision, 1) }

// IsUniform reports whether g carries no information.
func (g Gaussian) IsUniform() bool {
	return g.Precision == 0 && g.MeanTimesPrecision == 0
}

// IsProper reports whether g is a normalizable distribution
// (point masses included).
func (g Gaussian) IsProper() bool { return g.Precision > 0 }

// Shape returns the tagged state of g.
func (g Gaussian) Shape() Shape {
	switch {
	case g.IsPointMass():
		return ShapePointMass
	case g.Precision < 0:
		return ShapeImproper
	case g.Precision == 0:
		return ShapeUniform
	default:
		return ShapeProper
	}
}

// Point returns the location of a point mass. For non-degenerate
// beliefs it coincides with Mean.
func (g Gaussian) Point() float64 {
	if g.IsPointMass() {
		return g.MeanTimesPrecision
	}
	return g.Mean()
}

// Mean returns the mean. The uniform Gaussian reports 0, matching the
// symmetric-limit convention.
func (g Gaussian) Mean() float64 {
	switch {
	case g.IsPointMass():
		return g.MeanTimesPrecision
	case g.Precision == 0:
		return 0
	default:
		return g.MeanTimesPrecision / g.Precision
	}
}

// Variance returns the variance: 0 for a point mass, +Inf for the
// uniform, negative for improper beliefs.
func (g Gaussian) Variance() float64 {
	switch {
	case g.IsPointMass():
		return 0
	case g.Precision == 0:
		return math.Inf(1)
	default:
		return 1 / g.Precision
	}
}

// MeanAndVariance returns both moments in one call.
func (g Gaussian) MeanAndVariance() (mean, variance float64) {
	return g.Mean(), g.Variance()
}

// Times returns the product distribution g * h (pointwise density
// product, renormalized): natural parameters add. A point mass absorbs
// any other factor at its location.
func (g Gaussian) Times(h Gaussian) Gaussian {
	if g.IsPointMass() {
		return g
	}
	if h.IsPointMass() {
		return h
	}
	return Gaussian{
		MeanTimesPrecision: g.MeanTimesPrecision + h.MeanTimesPrecision,
		Precision:          g.Precision + h.Precision,
	}
}

// Divide returns the ratio distribution g / h: natural parameters
// subtract. Dividing a point mass by a finite-precision Gaussian
// leaves the point mass; dividing identical point masses yields the
// uniform.
func (g Gaussian) Divide(h Gaussian) Gaussian {
	if g.IsPointMass() {
		if h.IsPointMass() && h.MeanTimesPrecision == g.MeanTimesPrecision {
			return Uniform()
		}
		return g
	}
	if h.IsPointMass() {
		// ratio with an infinitely precise denominator has no Gaussian
		// form; the zero-information limit is the only consistent value
		return Uniform()
	}
	return Gaussian{
		MeanTimesPrecision: g.MeanTimesPrecision - h.MeanTimesPrecision,
		Precision:          g.Precision - h.Precision,
	}
}

func (g Gaussian) String() string {
	switch g.Shape() {
	case ShapePointMass:
		return fmt.Sprintf("Gaussian.PointMass(%g)", g.Point())
	case ShapeUniform:
		// zero precision can still carry a mean shift in tau; only the
		// true zero-information value prints as uniform
		if g.MeanTimesPrecision != 0 {
			return fmt.Sprintf("Gaussian(tau=%g, precision=0)", g.MeanTimesPrecision)
		}
		return "Gaussian.Uniform()"
	default:
		return fmt.Sprintf("Gaussian(mean=%g, variance=%g)", g.Mean(), g.Variance())
	}
}
