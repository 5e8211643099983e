// SPDX-License-Identifier: MIT

package gauss_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/stretchr/testify/assert"
)

// TestBernoulli_ProbRoundTrip checks ProbTrue against the log-odds
// parameterization in both directions.
func TestBernoulli_ProbRoundTrip(t *testing.T) {
	for _, p := range []float64{1e-12, 0.3, 0.5, 0.9, 1 - 1e-12} {
		b := gauss.BernoulliFromProbTrue(p)
		assert.InEpsilon(t, p, b.ProbTrue(), 1e-9, "round trip at p=%g", p)
	}
	assert.True(t, gauss.BernoulliFromProbTrue(0).IsPointMass(), "p=0 collapses to a point mass")
	assert.True(t, gauss.BernoulliFromProbTrue(1).IsPointMass(), "p=1 collapses to a point mass")
}

// TestBernoulli_PointMassAndUniform checks the degenerate beliefs.
func TestBernoulli_PointMassAndUniform(t *testing.T) {
	pt := gauss.BernoulliPointMass(true)
	pf := gauss.BernoulliPointMass(false)
	assert.True(t, pt.Point(), "point mass at true")
	assert.False(t, pf.Point(), "point mass at false")
	assert.Equal(t, 1.0, pt.ProbTrue(), "certain true")
	assert.Equal(t, 0.0, pf.ProbTrue(), "certain false")
	assert.True(t, gauss.BernoulliUniform().IsUniform(), "log-odds 0 is uniform")
	assert.Equal(t, 0.5, gauss.BernoulliUniform().ProbTrue(), "uniform is 50/50")
}

// TestBernoulli_LogProbs checks that the log probabilities keep
// accuracy where the plain probabilities saturate.
func TestBernoulli_LogProbs(t *testing.T) {
	b := gauss.BernoulliFromLogOdds(-60)
	assert.InEpsilon(t, -60.0, b.LogProbTrue(), 1e-12, "log P(true) tracks the log odds in the tail")
	assert.InDelta(t, -math.Exp(-60), b.LogProbFalse(), 1e-30, "log P(false) stays just below zero")

	c := gauss.BernoulliFromLogOdds(2)
	assert.InDelta(t, math.Log(c.ProbTrue()), c.LogProbTrue(), 1e-12, "consistent with ProbTrue")
	assert.InDelta(t, math.Log(1-c.ProbTrue()), c.LogProbFalse(), 1e-12, "consistent with 1-ProbTrue")
}
