// SPDX-License-Identifier: MIT

package specfn_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/epfactors/specfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalCdf2_SpecialCases covers the exact r and infinite-argument
// cases that bypass the quadrature.
func TestNormalCdf2_SpecialCases(t *testing.T) {
	assert.Equal(t, 0.0, specfn.NormalCdf2(math.Inf(-1), 0, 0.3), "-Inf coordinate kills the mass")
	assert.Equal(t, specfn.NormalCdf(0.7), specfn.NormalCdf2(math.Inf(1), 0.7, 0.3), "+Inf coordinate marginalizes")
	assert.Equal(t, specfn.NormalCdf(1)*specfn.NormalCdf(-2), specfn.NormalCdf2(1, -2, 0), "r=0 is the product")
	assert.Equal(t, specfn.NormalCdf(-0.5), specfn.NormalCdf2(1.5, -0.5, 1), "r=1 is the min")
	assert.Equal(t, 0.0, specfn.NormalCdf2(-1, -1, -1), "r=-1 disjoint tails have zero mass")
	assert.InDelta(t, 2*specfn.NormalCdf(0.5)-1, specfn.NormalCdf2(0.5, 0.5, -1), 1e-15, "r=-1 overlap")
	assert.True(t, math.IsNaN(specfn.NormalCdf2(0, 0, 1.5)), "|r|>1 is invalid")
}

// TestNormalCdf2_MedianClosedForm checks both quadrature branches
// against the exact Phi2(0,0,r) = 1/4 + asin(r)/(2*pi).
func TestNormalCdf2_MedianClosedForm(t *testing.T) {
	for _, r := range []float64{-0.99, -0.95, -0.5, -0.1, 0.3, 0.7, 0.9, 0.95, 0.99} {
		want := 0.25 + math.Asin(r)/(2*math.Pi)
		got := specfn.NormalCdf2(0, 0, r)
		assert.InEpsilon(t, want, got, 1e-12, "Phi2(0,0,%g)", r)
	}
}

// TestNormalCdf2_Complement checks the reflection identity
// Phi2(x,y,r) + Phi2(x,-y,-r) = Phi(x), which couples the two signs of
// r and both integration branches.
func TestNormalCdf2_Complement(t *testing.T) {
	cases := []struct{ x, y, r float64 }{
		{0.3, 0.7, 0.4},
		{-1.1, 0.2, -0.6},
		{1.2, -0.4, 0.95},
		{0.5, 1.5, -0.95},
		{2, 2, 0.8},
	}
	for _, c := range cases {
		sum := specfn.NormalCdf2(c.x, c.y, c.r) + specfn.NormalCdf2(c.x, -c.y, -c.r)
		assert.InEpsilon(t, specfn.NormalCdf(c.x), sum, 1e-10,
			"reflection identity at (%g, %g, %g)", c.x, c.y, c.r)
	}
}

// TestNormalCdf2_Bounds checks the Frechet envelope on a grid: the
// joint mass can never exceed either marginal nor drop below the
// r=-1 overlap.
func TestNormalCdf2_Bounds(t *testing.T) {
	for _, r := range []float64{-0.9, -0.3, 0.3, 0.9} {
		for _, x := range []float64{-2, -0.5, 0.5, 2} {
			for _, y := range []float64{-2, 0, 1} {
				p := specfn.NormalCdf2(x, y, r)
				px, py := specfn.NormalCdf(x), specfn.NormalCdf(y)
				assert.LessOrEqual(t, p, math.Min(px, py)+1e-15, "above marginal at (%g,%g,%g)", x, y, r)
				assert.GreaterOrEqual(t, p, math.Max(0, px+py-1)-1e-15, "below Frechet floor at (%g,%g,%g)", x, y, r)
			}
		}
	}
}

// TestNormalCdfLn2_ModerateAgreement checks the log form against the
// direct log where no underflow is possible.
func TestNormalCdfLn2_ModerateAgreement(t *testing.T) {
	cases := []struct{ x, y, r float64 }{
		{0, 0, -0.5},
		{1, -1, 0.3},
		{-3, 2, 0.95},
	}
	for _, c := range cases {
		want := math.Log(specfn.NormalCdf2(c.x, c.y, c.r))
		assert.InEpsilon(t, want, specfn.NormalCdfLn2(c.x, c.y, c.r), 1e-12,
			"log joint at (%g, %g, %g)", c.x, c.y, c.r)
	}
}

// TestNormalCdfLn2_DeepTail verifies the underflow fallback stays
// finite and below the tighter marginal bound.
func TestNormalCdfLn2_DeepTail(t *testing.T) {
	got := specfn.NormalCdfLn2(-20, -20, 0.5)
	require.False(t, math.IsNaN(got), "deep tail must not NaN")
	require.False(t, math.IsInf(got, 0), "deep tail must stay finite")
	assert.Less(t, got, specfn.NormalCdfLn(-20), "joint mass below the marginal")

	assert.True(t, math.IsInf(specfn.NormalCdfLn2(math.Inf(-1), 0, 0.2), -1), "-Inf coordinate means log 0")
	assert.True(t, math.IsInf(specfn.NormalCdfLn2(-1, -1, -1), -1), "disjoint r=-1 tails mean log 0")
}
