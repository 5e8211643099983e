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

// TestGaussianFromAlphaBeta_HalfLine reproduces the moment-matched
// message for N(0,1) truncated to [1, Inf): alpha = phi(1)/Phi(-1),
// beta = alpha*(alpha-1), message precision = beta/(1-beta).
func TestGaussianFromAlphaBeta_HalfLine(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 1)
	alpha := 1.5251352761609812 // phi(1)/Phi(-1)
	beta := alpha * (alpha - 1)

	msg, err := between.GaussianFromAlphaBeta(x, alpha, beta, false)
	require.NoError(t, err)

	wantPrec := beta / (1 - beta)
	assert.InEpsilon(t, wantPrec, msg.Precision, 1e-12, "message precision")
	assert.InEpsilon(t, wantPrec*alpha+alpha, msg.MeanTimesPrecision, 1e-12, "message mean-times-precision")

	// the posterior the message encodes must match moment matching:
	// posterior precision = prior precision / (1 - beta/prec)
	post := x.Times(msg)
	assert.InEpsilon(t, 1/(1-beta), post.Precision, 1e-12, "posterior precision")
	assert.InEpsilon(t, alpha/(1-beta), post.MeanTimesPrecision, 1e-12, "posterior mean shift alpha/(prec-beta)")
}

// TestGaussianFromAlphaBeta_ZeroBeta checks the flat-curvature case:
// the message carries a mean shift at zero precision.
func TestGaussianFromAlphaBeta_ZeroBeta(t *testing.T) {
	x := gauss.FromMeanAndPrecision(2, 5)
	msg, err := between.GaussianFromAlphaBeta(x, 0.7, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0.7, msg.MeanTimesPrecision)
	assert.Equal(t, 0.0, msg.Precision)
}

// TestGaussianFromAlphaBeta_PointMassLimit covers both routes to a
// deterministic message: beta equal to the belief precision, and a
// weight that pushes the result precision past the cap.
func TestGaussianFromAlphaBeta_PointMassLimit(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 2)

	msg, err := between.GaussianFromAlphaBeta(x, 1, 2, false)
	require.NoError(t, err)
	require.True(t, msg.IsPointMass(), "beta == prec is deterministic")
	assert.Equal(t, 0.5, msg.Point(), "point at (tau+alpha)/prec")

	sharp := gauss.FromMeanAndPrecision(0, 1e120)
	msg, err = between.GaussianFromAlphaBeta(sharp, 1, 1e120*(1-1e-10), false)
	require.NoError(t, err)
	assert.True(t, msg.IsPointMass(), "precision past the cap collapses to a point mass")
}

// TestGaussianFromAlphaBeta_ForceProper checks the clip: beta above
// the belief precision yields a negative-precision message unless
// forceProper flattens it.
func TestGaussianFromAlphaBeta_ForceProper(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 1)

	msg, err := between.GaussianFromAlphaBeta(x, 0.5, 1.5, false)
	require.NoError(t, err)
	assert.Negative(t, msg.Precision, "unclipped message is improper")

	msg, err = between.GaussianFromAlphaBeta(x, 0.5, 1.5, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, msg.Precision, "forceProper clips the weight to zero")
	assert.Equal(t, 0.5, msg.MeanTimesPrecision, "the mean shift survives the clip")
}

// TestDampGaussian interpolates natural parameters and leaves point
// masses alone.
func TestDampGaussian(t *testing.T) {
	next := gauss.FromNatural(4, 2)
	prev := gauss.FromNatural(0, 1)

	assert.Equal(t, next, between.DampGaussian(next, prev, 0), "damping 0 is the identity")

	d := between.DampGaussian(next, prev, 0.25)
	assert.InEpsilon(t, 3.0, d.MeanTimesPrecision, 1e-15)
	assert.InEpsilon(t, 1.75, d.Precision, 1e-15)

	assert.Equal(t, next, between.DampGaussian(next, gauss.PointMass(1), 0.5), "point masses do not blend")
	pm := gauss.PointMass(2)
	assert.Equal(t, pm, between.DampGaussian(pm, prev, 0.5))
}

// TestGaussianFromAlphaBeta_NumericalError rejects non-finite natural
// parameters instead of propagating them.
func TestGaussianFromAlphaBeta_NumericalError(t *testing.T) {
	x := gauss.FromMeanAndPrecision(0, 1)
	_, err := between.GaussianFromAlphaBeta(x, math.NaN(), 0.5, false)
	assert.ErrorIs(t, err, between.ErrNumerical)

	var numErr *between.NumericalError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "GaussianFromAlphaBeta", numErr.Op)
}
