// SPDX-License-Identifier: MIT

package gauss_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/stretchr/testify/assert"
)

// TestGaussian_Constructors verifies the moment / natural parameter
// round trips and the degenerate-limit mappings.
func TestGaussian_Constructors(t *testing.T) {
	g := gauss.FromMeanAndVariance(2, 4)
	assert.InDelta(t, 2.0, g.Mean(), 1e-15, "mean round trip")
	assert.InDelta(t, 4.0, g.Variance(), 1e-15, "variance round trip")
	assert.InDelta(t, 0.25, g.Precision, 1e-15, "precision is 1/variance")

	assert.True(t, gauss.FromMeanAndVariance(3, 0).IsPointMass(), "zero variance is a point mass")
	assert.True(t, gauss.FromMeanAndVariance(3, math.Inf(1)).IsUniform(), "infinite variance is uniform")
	assert.True(t, gauss.FromMeanAndPrecision(3, math.Inf(1)).IsPointMass(), "infinite precision is a point mass")
	assert.Equal(t, 3.0, gauss.PointMass(3).Point(), "point mass stores its location")
}

// TestGaussian_Shape checks the tagged-variant classification.
func TestGaussian_Shape(t *testing.T) {
	assert.Equal(t, gauss.ShapeProper, gauss.FromMeanAndPrecision(0, 1).Shape())
	assert.Equal(t, gauss.ShapePointMass, gauss.PointMass(1).Shape())
	assert.Equal(t, gauss.ShapeUniform, gauss.Uniform().Shape())
	assert.Equal(t, gauss.ShapeImproper, gauss.FromNatural(1, -2).Shape())
	assert.False(t, gauss.FromNatural(1, -2).IsProper(), "negative precision is not proper")
}

// TestGaussian_UniformConventions verifies the zero-information limits.
func TestGaussian_UniformConventions(t *testing.T) {
	u := gauss.Uniform()
	assert.Equal(t, 0.0, u.Mean(), "uniform reports the symmetric-limit mean")
	assert.True(t, math.IsInf(u.Variance(), 1), "uniform has infinite variance")
	assert.False(t, u.IsProper(), "uniform is not normalizable")
}

// TestGaussian_String_ZeroPrecision distinguishes the true uniform
// from a zero-precision value that still carries a mean shift in tau.
func TestGaussian_String_ZeroPrecision(t *testing.T) {
	assert.Equal(t, "Gaussian.Uniform()", gauss.Uniform().String())

	shift := gauss.FromNatural(0.7, 0)
	assert.Equal(t, "Gaussian(tau=0.7, precision=0)", shift.String())
	assert.NotContains(t, shift.String(), "Uniform", "a mean shift is not zero information")
}

// TestGaussian_TimesDivide checks that natural parameters add and
// subtract, and that the operations invert each other.
func TestGaussian_TimesDivide(t *testing.T) {
	a := gauss.FromMeanAndPrecision(1, 2)
	b := gauss.FromMeanAndPrecision(-1, 3)

	p := a.Times(b)
	assert.InDelta(t, 5.0, p.Precision, 1e-15, "precisions add")
	assert.InDelta(t, -1.0, p.MeanTimesPrecision, 1e-15, "mean-times-precisions add")

	q := p.Divide(b)
	assert.InDelta(t, a.MeanTimesPrecision, q.MeanTimesPrecision, 1e-15, "divide undoes times")
	assert.InDelta(t, a.Precision, q.Precision, 1e-15, "divide undoes times")

	// cavity construction: dividing out more precision than present
	// leaves an improper intermediate, by design
	c := a.Divide(gauss.FromMeanAndPrecision(0, 5))
	assert.Equal(t, gauss.ShapeImproper, c.Shape(), "over-division is improper")
}

// TestGaussian_PointMassAlgebra checks the absorption rules.
func TestGaussian_PointMassAlgebra(t *testing.T) {
	pm := gauss.PointMass(2)
	g := gauss.FromMeanAndPrecision(0, 1)

	assert.Equal(t, pm, pm.Times(g), "a point mass absorbs any factor")
	assert.Equal(t, pm, g.Times(pm), "absorption is symmetric")
	assert.Equal(t, pm, pm.Divide(g), "a point mass survives division by a proper belief")
	assert.True(t, pm.Divide(pm).IsUniform(), "identical point masses cancel to uniform")
	assert.True(t, g.Divide(pm).IsUniform(), "division by a point mass is the zero-information limit")
}
