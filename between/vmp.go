// SPDX-License-Identifier: MIT

package between

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/gauss"
)

// XAverageLogarithm returns the VMP message to X. VMP for a hard
// truncation is exact in the truncated-Gaussian family, so the message
// is that family member projected to its Gaussian moments with the
// incoming belief divided back out.
//
// VMP has no sensible update for the complement of an interval or for
// uncertain bounds, and pretending otherwise converges to garbage, so
// both cases fail loudly: isBetween=false or a random Bound is
// ErrUnsupported.
func XAverageLogarithm(isBetween bool, x gauss.Gaussian, lower, upper float64, cfg Config) (gauss.Gaussian, error) {
	t, err := XAverageLogarithmTruncated(isBetween, x, lower, upper)
	if err != nil {
		return gauss.Gaussian{}, err
	}
	msg := t.ToGaussian().Divide(x)
	if !cfg.ForceProper || msg.Precision >= 0 {
		return msg, nil
	}
	return gauss.FromNatural(msg.MeanTimesPrecision, 0), nil
}

// XAverageLogarithmTruncated is XAverageLogarithm before the Gaussian
// projection: the exact truncated-Gaussian VMP message.
func XAverageLogarithmTruncated(isBetween bool, x gauss.Gaussian, lower, upper float64) (gauss.TruncatedGaussian, error) {
	if !isBetween {
		return gauss.TruncatedGaussian{}, fmt.Errorf("XAverageLogarithm: complement of an interval: %w", ErrUnsupported)
	}
	if x.Shape() == gauss.ShapeImproper {
		return gauss.TruncatedGaussian{}, fmt.Errorf("XAverageLogarithm: improper belief %v: %w", x, ErrInvalidArgument)
	}
	t, err := gauss.NewTruncatedGaussian(x, lower, upper)
	if err != nil {
		if errors.Is(err, gauss.ErrBoundsOrder) {
			return gauss.TruncatedGaussian{}, fmt.Errorf("XAverageLogarithm: %w", ErrAllZero)
		}
		return gauss.TruncatedGaussian{}, fmt.Errorf("XAverageLogarithm: %w", ErrInvalidArgument)
	}
	return t, nil
}

// LowerBoundAverageLogarithm always fails: a VMP update for an
// uncertain bound of a hard constraint does not exist in this family.
func LowerBoundAverageLogarithm(gauss.Bernoulli, gauss.Gaussian, Bound, Bound, Config) (gauss.Gaussian, error) {
	return gauss.Gaussian{}, fmt.Errorf("LowerBoundAverageLogarithm: random bounds under VMP: %w", ErrUnsupported)
}

// UpperBoundAverageLogarithm always fails, for the same reason as
// LowerBoundAverageLogarithm.
func UpperBoundAverageLogarithm(gauss.Bernoulli, gauss.Gaussian, Bound, Bound, Config) (gauss.Gaussian, error) {
	return gauss.Gaussian{}, fmt.Errorf("UpperBoundAverageLogarithm: random bounds under VMP: %w", ErrUnsupported)
}

// AverageLogFactor returns the VMP evidence contribution. The q
// distribution produced by XAverageLogarithmTruncated lives entirely
// inside the interval where log f is zero, so a satisfied constraint
// contributes nothing; an unsatisfiable one has no finite value.
func AverageLogFactor(isBetween bool, lower, upper float64) (float64, error) {
	if !isBetween {
		return math.NaN(), fmt.Errorf("AverageLogFactor: complement of an interval: %w", ErrUnsupported)
	}
	if lower > upper {
		return math.NaN(), fmt.Errorf("AverageLogFactor: bounds [%g, %g]: %w", lower, upper, ErrAllZero)
	}
	return 0, nil
}
