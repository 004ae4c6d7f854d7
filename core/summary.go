package core

import (
	"math"

	"github.com/huangsam/rankcast/schema"
)

// Summarize normalizes matches and computes the performance summary of the
// most recent window. An empty window yields an all-zero summary with
// no_data tags.
func (e *Engine) Summarize(matches []schema.MatchRecord) schema.PerformanceSummary {
	return e.summarize(e.normalize(matches))
}

// summarize builds the summary of an already normalized window.
func (e *Engine) summarize(window []schema.NormalizedMatch) schema.PerformanceSummary {
	n := len(window)
	if n == 0 {
		return emptySummary()
	}

	kdas := make([]float64, n)
	scores := make([]float64, n)
	wins := 0
	for i, m := range window {
		kdas[i] = m.KDA
		scores[i] = m.Score
		if m.Won() {
			wins++
		}
	}

	q := quartiles(kdas)
	return schema.PerformanceSummary{
		TotalMatches: n,
		Wins:         wins,
		AvgKDA:       round(mean(kdas), 2),
		MedianKDA:    round(q.Q2, 2),
		KDAStdDev:    round(stdDev(kdas), 2),
		KDAQuartiles: schema.Quartiles{Q1: round(q.Q1, 2), Q2: round(q.Q2, 2), Q3: round(q.Q3, 2)},
		AvgScore:     round(mean(scores), 0),
		WinRate:      round(float64(wins)/float64(n)*100, 1),
		Consistency:  e.consistency(kdas),
		Trend:        e.trend(kdas),
		Agents:       e.agentPerformance(window),
		Reliability:  round(math.Min(100, float64(n)/float64(e.window)*100), 1),
	}
}

func emptySummary() schema.PerformanceSummary {
	return schema.PerformanceSummary{
		Consistency: schema.Consistency{Outcome: schema.NoDataOutcome},
		Trend:       schema.Trend{Kind: schema.NoDataTrend, Outcome: schema.NoDataOutcome},
		Agents:      []schema.AgentPerformance{},
	}
}

// consistency scores the inverse coefficient of variation of KDA.
func (e *Engine) consistency(kdas []float64) schema.Consistency {
	if len(kdas) < schema.MinConsistencyMatches {
		return schema.Consistency{Score: schema.NeutralConsistency, Outcome: schema.InsufficientOutcome}
	}
	avg := mean(kdas)
	if avg == 0 || !isFinite(avg) {
		e.logger.Warnw("consistency undefined for zero mean KDA", "matches", len(kdas))
		return schema.Consistency{Score: schema.NeutralConsistency, Outcome: schema.UnknownOutcome}
	}
	cv := math.Sqrt(sampleVariance(kdas)) / avg
	if !isFinite(cv) {
		e.logger.Warnw("consistency undefined for non-finite KDA spread", "matches", len(kdas))
		return schema.Consistency{Score: schema.NeutralConsistency, Outcome: schema.UnknownOutcome}
	}
	return schema.Consistency{
		Score:   round(clamp(100-cv*100, 0, 100), 1),
		Outcome: schema.OkOutcome,
	}
}

// trend classifies the least squares slope of KDA over match index.
func (e *Engine) trend(kdas []float64) schema.Trend {
	if len(kdas) < schema.MinTrendMatches {
		return schema.Trend{Kind: schema.InsufficientTrend, Outcome: schema.InsufficientOutcome}
	}
	slope, r2, ok := linearFit(kdas)
	if !ok {
		e.logger.Warnw("KDA trend regression failed", "matches", len(kdas))
		return schema.Trend{Kind: schema.UnknownTrend, Outcome: schema.UnknownOutcome}
	}

	kind := schema.StableTrend
	switch {
	case slope > schema.TrendSlopeThreshold:
		kind = schema.ImprovingTrend
	case slope < -schema.TrendSlopeThreshold:
		kind = schema.DecliningTrend
	}
	return schema.Trend{
		Kind:       kind,
		Slope:      round(slope, 3),
		R2:         round(r2, 3),
		Confidence: round(math.Min(100, math.Abs(slope)*schema.TrendConfidenceScale), 1),
		Outcome:    schema.OkOutcome,
	}
}
