package core

import (
	"math"

	"github.com/huangsam/rankcast/schema"
)

// Fixed shape of the probability formulas. Bases, caps and the stable floor
// come from the engine parameters.
const (
	maxRatioFactor = 2.0
	demotionScale  = 50.0
)

// PredictRank summarizes matches and predicts the rank change from currentRank.
// An unrecognized rank is evaluated against the default tier and TierKnown is false.
func (e *Engine) PredictRank(matches []schema.MatchRecord, currentRank string) schema.RankPrediction {
	summary := e.summarize(e.normalize(matches))

	tier, known := ExtractTier(currentRank)
	bench, tier, found := e.benchmarks.Lookup(tier)
	if !known || !found {
		e.logger.Debugw("unknown rank, using default tier", "rank", currentRank, "tier", tier)
	}

	score, breakdown := computeScore(summary, e.weights)
	return schema.RankPrediction{
		CurrentRank:      currentRank,
		Tier:             tier,
		TierKnown:        known && found,
		Change:           predictChange(score, e.params),
		Score:            round(score, 1),
		Confidence:       round(scoreConfidence(score), 1),
		Probabilities:    e.probabilities(summary, bench),
		Breakdown:        breakdown,
		Benchmark:        compareToBenchmark(summary, tier, bench),
		Summary:          summary,
		ImprovementAreas: advise(summary),
	}
}

// probabilities computes three independently clamped rank-change chances.
// They are not normalized, so the sum may differ from 100 when a cap or the
// stable floor engages.
func (e *Engine) probabilities(s schema.PerformanceSummary, bench schema.TierBenchmark) schema.Probabilities {
	kdaRatio := ratio(s.AvgKDA, bench.ExpectedKDA)
	wrRatio := ratio(s.WinRate, bench.ExpectedWinRate)

	promotion := e.params.PromotionBase *
		math.Min(maxRatioFactor, kdaRatio) *
		math.Min(maxRatioFactor, wrRatio) *
		(s.Consistency.Score / 100) * 100
	promotion = clamp(promotion, 0, e.params.PromotionCap)

	kdaDeficit := math.Max(0, 1-kdaRatio)
	wrDeficit := math.Max(0, 1-wrRatio)
	demotion := clamp((kdaDeficit+wrDeficit)*demotionScale, 0, e.params.DemotionCap)

	stable := clamp(100-promotion-demotion, e.params.StableFloor, 100)

	return schema.Probabilities{
		Promotion: round(promotion, 1),
		Stable:    round(stable, 1),
		Demotion:  round(demotion, 1),
	}
}

// ratio returns actual/expected, treating a non-positive expectation as met.
func ratio(actual, expected float64) float64 {
	if expected <= 0 {
		return 1
	}
	return actual / expected
}

// compareToBenchmark reports the summary against one tier's expectations.
func compareToBenchmark(s schema.PerformanceSummary, tier schema.Tier, bench schema.TierBenchmark) schema.BenchmarkComparison {
	return schema.BenchmarkComparison{
		Tier:              tier,
		ExpectedKDA:       bench.ExpectedKDA,
		ExpectedWinRate:   bench.ExpectedWinRate,
		ActualKDA:         s.AvgKDA,
		ActualWinRate:     s.WinRate,
		KDADifference:     round(s.AvgKDA-bench.ExpectedKDA, 2),
		WinRateDifference: round(s.WinRate-bench.ExpectedWinRate, 1),
	}
}

// BenchmarkFit compares a summary against every tier. A tier is suitable when
// both differences are within tolerance.
func (e *Engine) BenchmarkFit(s schema.PerformanceSummary) []schema.TierFit {
	rows := e.benchmarks.Rows()
	fits := make([]schema.TierFit, 0, len(rows))
	for _, row := range rows {
		kdaDiff := round(s.AvgKDA-row.ExpectedKDA, 2)
		wrDiff := round(s.WinRate-row.ExpectedWinRate, 1)
		fits = append(fits, schema.TierFit{
			Tier:              row.Tier,
			Suitable:          !s.IsEmpty() && math.Abs(kdaDiff) < schema.TierFitKDATolerance && math.Abs(wrDiff) < schema.TierFitWinRateTolerance,
			KDADifference:     kdaDiff,
			WinRateDifference: wrDiff,
		})
	}
	return fits
}
