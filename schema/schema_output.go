package schema

// EnrichedAgentResult adds presentation data to an AgentPerformance.
type EnrichedAgentResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	AgentPerformance
}

// EnrichedTierFit adds presentation data to a TierFit.
type EnrichedTierFit struct {
	Label string `json:"label"`
	TierFit
	TierBenchmark
}

// GetPlainLabel returns a plain text label for a 0-100 score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Strong"
	case score >= 40:
		return "Average"
	default:
		return "Weak"
	}
}

// GetSynergyRating returns the rating of an average pairwise synergy.
func GetSynergyRating(avg float64) string {
	switch {
	case avg >= 0.8:
		return "excellent"
	case avg >= 0.7:
		return "great"
	case avg >= 0.6:
		return "good"
	case avg >= 0.5:
		return "fair"
	default:
		return "needs improvement"
	}
}

// EnrichAgents adds rank and label to a list of agent results.
// Agents are labeled by their efficiency.
func EnrichAgents(agents []AgentPerformance) []EnrichedAgentResult {
	output := make([]EnrichedAgentResult, len(agents))
	for i, a := range agents {
		output[i] = EnrichedAgentResult{
			Rank:             i + 1,
			Label:            GetPlainLabel(a.Efficiency),
			AgentPerformance: a,
		}
	}
	return output
}

// EnrichTierFits joins tier fits with their benchmark rows.
func EnrichTierFits(fits []TierFit, rows []TierBenchmarkRow) []EnrichedTierFit {
	byTier := make(map[Tier]TierBenchmark, len(rows))
	for _, r := range rows {
		byTier[r.Tier] = r.TierBenchmark
	}
	output := make([]EnrichedTierFit, len(fits))
	for i, f := range fits {
		label := "Above"
		switch {
		case f.Suitable:
			label = "Fit"
		case f.KDADifference < 0 || f.WinRateDifference < 0:
			label = "Below"
		}
		output[i] = EnrichedTierFit{
			Label:         label,
			TierFit:       f,
			TierBenchmark: byTier[f.Tier],
		}
	}
	return output
}

// SummaryResult is a performance summary for one match source.
type SummaryResult struct {
	Source string `json:"source"`
	PerformanceSummary
}

// PredictionResult is a rank prediction for one match source.
type PredictionResult struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	RankPrediction
}

// AdviceResult is the improvement areas for one match source.
type AdviceResult struct {
	Source string            `json:"source"`
	Areas  []ImprovementArea `json:"improvementAreas"`
}

// TierFitResult is the tier fit of one match source.
type TierFitResult struct {
	Source string            `json:"source"`
	Fits   []EnrichedTierFit `json:"tierFit"`
}
