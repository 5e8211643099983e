// SPDX-License-Identifier: MIT

package between

import (
	"math"

	"github.com/katalvlaran/epfactors/gauss"
	"github.com/katalvlaran/epfactors/specfn"
)

// IsBetweenAverageConditional returns the EP message to the interval
// indicator: a Bernoulli whose probability of true is the mass the
// current beliefs place inside the interval. Working in log odds keeps
// the deep-tail cases exact; logZ near 0 or -Inf maps to the point
// masses rather than a rounded probability.
func IsBetweenAverageConditional(x gauss.Gaussian, lower, upper Bound) (gauss.Bernoulli, error) {
	logZ, err := LogProbBetween(x, lower, upper)
	if err != nil {
		return gauss.Bernoulli{}, err
	}
	return gauss.BernoulliFromLogOdds(specfn.LogitFromLogProb(logZ)), nil
}

// LogAverageFactor returns the log of the factor's expectation under
// the incoming beliefs, with the indicator itself a Bernoulli:
//
//	log( pT*Z + pF*(1-Z) )
func LogAverageFactor(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound) (float64, error) {
	logZ, err := LogProbBetween(x, lower, upper)
	if err != nil {
		return math.NaN(), err
	}
	if isBetween.IsPointMass() {
		if isBetween.Point() {
			return logZ, nil
		}
		return specfn.Log1MinusExp(logZ), nil
	}
	return specfn.LogSumExp(
		isBetween.LogProbTrue()+logZ,
		isBetween.LogProbFalse()+specfn.Log1MinusExp(logZ),
	), nil
}

// LogAverageFactorObserved is LogAverageFactor with the indicator
// observed.
func LogAverageFactorObserved(isBetween bool, x gauss.Gaussian, lower, upper Bound) (float64, error) {
	return LogAverageFactor(gauss.BernoulliPointMass(isBetween), x, lower, upper)
}

// LogEvidenceRatio returns the factor's evidence contribution when the
// indicator is inferred. The message sent by IsBetweenAverageConditional
// already carries the interval mass, so the ratio cancels to zero.
func LogEvidenceRatio(isBetween gauss.Bernoulli, x gauss.Gaussian, lower, upper Bound) (float64, error) {
	return 0, nil
}

// LogEvidenceRatioObserved returns the evidence contribution when the
// indicator is observed; nothing cancels, so it is the log-average
// itself.
func LogEvidenceRatioObserved(isBetween bool, x gauss.Gaussian, lower, upper Bound) (float64, error) {
	return LogAverageFactorObserved(isBetween, x, lower, upper)
}
