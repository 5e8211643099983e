// SPDX-License-Identifier: MIT

package between_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epfactors/between"
	"github.com/katalvlaran/epfactors/gauss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestXAverageLogarithm_MatchesEP verifies that VMP and EP agree for a
// hard truncation with constant bounds: both project the same
// truncated Gaussian, so the messages coincide.
func TestXAverageLogarithm_MatchesEP(t *testing.T) {
	x := gauss.FromMeanAndVariance(0.5, 2)
	cfg := between.DefaultConfig()

	vmp, err := between.XAverageLogarithm(true, x, -1, 3, cfg)
	require.NoError(t, err)
	ep, err := between.XAverageConditionalObserved(true, x,
		between.ConstBound(-1), between.ConstBound(3), cfg)
	require.NoError(t, err)

	assert.InEpsilon(t, ep.Precision, vmp.Precision, 1e-9)
	assert.InDelta(t, ep.MeanTimesPrecision, vmp.MeanTimesPrecision, 1e-9)
}

// TestXAverageLogarithmTruncated exposes the exact message before the
// Gaussian projection.
func TestXAverageLogarithmTruncated(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 1)
	tr, err := between.XAverageLogarithmTruncated(true, x, 1, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr.LowerBound)
	assert.True(t, math.IsInf(tr.UpperBound, 1))

	mean, variance := tr.MeanAndVariance()
	alpha := 1.5251352761609812 // phi(1)/Phi(-1)
	assert.InEpsilon(t, alpha, mean, 1e-10)
	assert.InEpsilon(t, 1-alpha*(alpha-1), variance, 1e-10)
}

// TestVmp_Unsupported walks every configuration VMP refuses.
func TestVmp_Unsupported(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 1)
	cfg := between.DefaultConfig()

	_, err := between.XAverageLogarithm(false, x, 0, 1, cfg)
	assert.ErrorIs(t, err, between.ErrUnsupported, "complement of an interval")

	_, err = between.LowerBoundAverageLogarithm(gauss.BernoulliPointMass(true), x,
		between.RandomBound(x), between.ConstBound(1), cfg)
	assert.ErrorIs(t, err, between.ErrUnsupported)

	_, err = between.UpperBoundAverageLogarithm(gauss.BernoulliPointMass(true), x,
		between.ConstBound(0), between.RandomBound(x), cfg)
	assert.ErrorIs(t, err, between.ErrUnsupported)

	_, err = between.AverageLogFactor(false, 0, 1)
	assert.ErrorIs(t, err, between.ErrUnsupported)
}

// TestXAverageLogarithm_Errors covers the EP-style error taxonomy on
// the VMP path.
func TestXAverageLogarithm_Errors(t *testing.T) {
	cfg := between.DefaultConfig()
	_, err := between.XAverageLogarithm(true, gauss.FromMeanAndPrecision(0, 1), 2, 1, cfg)
	assert.ErrorIs(t, err, between.ErrAllZero, "reversed bounds")

	_, err = between.XAverageLogarithm(true, gauss.FromNatural(0, -1), 0, 1, cfg)
	assert.ErrorIs(t, err, between.ErrInvalidArgument, "improper belief")
}

// TestAverageLogFactor returns zero for any satisfiable constraint.
func TestAverageLogFactor(t *testing.T) {
	ev, err := between.AverageLogFactor(true, -1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev)

	_, err = between.AverageLogFactor(true, 1, -1)
	assert.ErrorIs(t, err, between.ErrAllZero)
}
