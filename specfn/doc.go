// SPDX-License-Identifier: MIT

// Package specfn provides the numerically stable special functions that
// Gaussian message-passing operators are built from: logarithms of the
// standard normal CDF, Mills-ratio variants, moment-ratio recurrences,
// interval (truncated) moments, and a bivariate normal CDF.
//
// 🚀 Why a dedicated package?
//
//	Naive evaluation of normal tail probabilities breaks down long before
//	the interesting inputs do. Subtracting two CDF values that agree in
//	their leading digits destroys all precision; exponentials of ±z²/2
//	overflow while the ratios they appear in stay perfectly finite.
//	Every function here replaces such a naive formula with a
//	ratio-based or log-domain equivalent the moment the naive one would
//	cancel or overflow, and stays well-defined for |z| up to 1e20 and
//	beyond.
//
// ✨ The recurring pattern:
//
//   - Two mathematically equivalent formulas per quantity: a direct one
//     for the benign regime and a ratio/series one for the tails.
//   - An explicit, tested threshold deciding which formula runs
//     (CdfDiffRelThreshold, CdfDiffAbsThreshold, LargeZThreshold).
//   - No NaN and no negative probability on any real input.
//
// Contents:
//
//	NormalPdf, NormalPdfLn, NormalCdf, NormalCdfLn — univariate basics
//	NormalCdfRatio, NormalCdfMomentRatio, NormalCdfRatioDiff — Mills family
//	NormalCdfDiffLn, IntervalMoments — interval log-mass and moments
//	NormalCdf2, NormalCdfLn2 — bivariate normal CDF (Genz quadrature)
//	ExpMinus1, Log1Plus, Log1PlusExp, Log1MinusExp, LogSumExp,
//	LogDifferenceOfExp, LogitFromLogProb, Logistic — log/exp helpers
package specfn
