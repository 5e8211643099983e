// SPDX-License-Identifier: MIT

package gauss

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epfactors/specfn"
)

// Bernoulli is a belief over a boolean, stored as a single log-odds
// value in [-Inf, +Inf]. The infinities are the point masses at false
// and true respectively; 0 is the uniform belief.
type Bernoulli struct {
	LogOdds float64
}

// BernoulliFromLogOdds builds a Bernoulli from log(p/(1-p)).
func BernoulliFromLogOdds(logOdds float64) Bernoulli {
	return Bernoulli{LogOdds: logOdds}
}

// BernoulliFromProbTrue builds a Bernoulli from P(true).
func BernoulliFromProbTrue(p float64) Bernoulli {
	switch {
	case p <= 0:
		return BernoulliPointMass(false)
	case p >= 1:
		return BernoulliPointMass(true)
	default:
		return Bernoulli{LogOdds: math.Log(p / (1 - p))}
	}
}

// BernoulliPointMass returns the certain belief in v.
func BernoulliPointMass(v bool) Bernoulli {
	if v {
		return Bernoulli{LogOdds: math.Inf(1)}
	}
	return Bernoulli{LogOdds: math.Inf(-1)}
}

// BernoulliUniform returns the 50/50 belief.
func BernoulliUniform() Bernoulli { return Bernoulli{} }

// IsPointMass reports whether the belief is certain.
func (b Bernoulli) IsPointMass() bool { return math.IsInf(b.LogOdds, 0) }

// IsUniform reports whether the belief carries no information.
func (b Bernoulli) IsUniform() bool { return b.LogOdds == 0 }

// Point returns the certain value; meaningful only when IsPointMass.
func (b Bernoulli) Point() bool { return math.IsInf(b.LogOdds, 1) }

// ProbTrue returns P(true).
func (b Bernoulli) ProbTrue() float64 { return specfn.Logistic(b.LogOdds) }

// LogProbTrue returns log P(true) without forming the probability.
func (b Bernoulli) LogProbTrue() float64 { return specfn.LogisticLn(b.LogOdds) }

// LogProbFalse returns log P(false).
func (b Bernoulli) LogProbFalse() float64 { return specfn.LogisticLn(-b.LogOdds) }

func (b Bernoulli) String() string {
	if b.IsPointMass() {
		return fmt.Sprintf("Bernoulli.PointMass(%v)", b.Point())
	}
	return fmt.Sprintf("Bernoulli(logOdds=%g)", b.LogOdds)
}
