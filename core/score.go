package core

import (
	"math"

	"github.com/huangsam/rankcast/schema"
)

// neutralScore is the rank score at which confidence is zero.
const neutralScore = 50.0

// computeScore calculates the weighted rank score of a summary.
// Each feature contributes weight * value; the breakdown keeps each term for explain output.
func computeScore(s schema.PerformanceSummary, weights map[schema.WeightKey]float64) (float64, map[schema.WeightKey]float64) {
	features := map[schema.WeightKey]float64{
		schema.WeightKDA:         s.AvgKDA,
		schema.WeightWinRate:     s.WinRate,
		schema.WeightConsistency: s.Consistency.Score,
	}

	breakdown := make(map[schema.WeightKey]float64, len(features))
	var score float64
	for _, key := range schema.AllWeightKeys {
		term := weights[key] * features[key]
		breakdown[key] = round(term, 2)
		score += term
	}
	return score, breakdown
}

// predictChange maps a score to -1, 0 or +1 using strict thresholds.
func predictChange(score float64, params schema.PredictionParams) int {
	switch {
	case score > params.PromoteAbove:
		return 1
	case score < params.DemoteBelow:
		return -1
	default:
		return 0
	}
}

// scoreConfidence grows linearly with the distance of the score from neutral.
func scoreConfidence(score float64) float64 {
	return clamp(math.Abs(score-neutralScore)*2, 0, 100)
}
