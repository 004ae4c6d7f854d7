package core

import (
	"testing"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryOf(kda, winRate, consistency float64) schema.PerformanceSummary {
	return schema.PerformanceSummary{
		TotalMatches: 20,
		AvgKDA:       kda,
		WinRate:      winRate,
		Consistency:  schema.Consistency{Score: consistency, Outcome: schema.OkOutcome},
	}
}

func TestComputeScore(t *testing.T) {
	score, breakdown := computeScore(summaryOf(1.05, 52, 80), schema.GetDefaultWeights())

	assert.InDelta(t, 73.5, score, 1e-9)
	assert.InDelta(t, 31.5, breakdown[schema.WeightKDA], 1e-9)
	assert.InDelta(t, 26.0, breakdown[schema.WeightWinRate], 1e-9)
	assert.InDelta(t, 16.0, breakdown[schema.WeightConsistency], 1e-9)
	assert.Equal(t, 1, predictChange(score, schema.GetDefaultPredictionParams()))
	assert.InDelta(t, 47.0, scoreConfidence(score), 1e-9)
}

func TestPredictChange(t *testing.T) {
	params := schema.GetDefaultPredictionParams()
	tests := []struct {
		score float64
		want  int
	}{
		{65.01, 1},
		{65, 0},
		{50, 0},
		{35, 0},
		{34.99, -1},
		{0, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, predictChange(tt.score, params), "score=%v", tt.score)
	}
}

func TestScoreConfidence(t *testing.T) {
	assert.Equal(t, 0.0, scoreConfidence(50))
	assert.Equal(t, 100.0, scoreConfidence(130))
	assert.Equal(t, 100.0, scoreConfidence(-10))
	assert.InDelta(t, 30.0, scoreConfidence(35), 1e-9)
}

func TestPredictRank(t *testing.T) {
	e := DefaultEngine()

	t.Run("strong player promotes", func(t *testing.T) {
		p := e.PredictRank(repeatMatch(10, match(15, 10, 5, schema.WinResult)), "gold-2")

		assert.Equal(t, "gold-2", p.CurrentRank)
		assert.Equal(t, schema.GoldTier, p.Tier)
		assert.True(t, p.TierKnown)
		assert.Equal(t, 1, p.Change)
		assert.InDelta(t, 130.0, p.Score, 1e-9)
		assert.Equal(t, 100.0, p.Confidence)
		assert.Equal(t, schema.Probabilities{Promotion: 85, Stable: 15, Demotion: 0}, p.Probabilities)
		assert.Equal(t, 1.05, p.Benchmark.ExpectedKDA)
		assert.InDelta(t, 0.95, p.Benchmark.KDADifference, 1e-9)
		assert.InDelta(t, 48.0, p.Benchmark.WinRateDifference, 1e-9)
		require.Len(t, p.ImprovementAreas, 1)
		assert.Equal(t, schema.MaintainArea, p.ImprovementAreas[0].Category)
	})

	t.Run("weak player demotes", func(t *testing.T) {
		p := e.PredictRank(repeatMatch(10, match(1, 4, 0, schema.LossResult)), "Platinum 1")

		assert.Equal(t, schema.PlatinumTier, p.Tier)
		assert.Equal(t, -1, p.Change)
		assert.InDelta(t, 27.5, p.Score, 1e-9)
		assert.InDelta(t, 45.0, p.Confidence, 1e-9)
		assert.Equal(t, 0.0, p.Probabilities.Promotion)
		assert.Equal(t, 75.0, p.Probabilities.Demotion)
		assert.Equal(t, 25.0, p.Probabilities.Stable)
	})

	t.Run("unknown rank falls back to gold", func(t *testing.T) {
		for _, rank := range []string{"mythic-3", "", "   "} {
			p := e.PredictRank(kdaSeries(1, 2, 3), rank)
			assert.Equal(t, schema.GoldTier, p.Tier)
			assert.False(t, p.TierKnown)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		p := e.PredictRank(nil, "silver-1")
		assert.Equal(t, 0, p.Summary.TotalMatches)
		assert.Equal(t, -1, p.Change)
		require.Len(t, p.ImprovementAreas, 1)
		assert.Equal(t, schema.DataArea, p.ImprovementAreas[0].Category)
	})
}

func TestPredictRankIsIdempotent(t *testing.T) {
	e := DefaultEngine()
	records := kdaSeries(1, 4, 2, 6, 3, 5, 2, 1, 1)
	records[2].Result = schema.LossResult

	first := e.PredictRank(records, "diamond-3")
	second := e.PredictRank(records, "diamond-3")
	assert.Equal(t, first, second)
}

// The three probabilities are clamped independently and never normalized.
// With the stock parameters the stable floor cannot engage, so they happen
// to sum to 100 (up to rounding); other parameters can break that.
func TestProbabilitiesAreIndependentlyClamped(t *testing.T) {
	e := DefaultEngine()
	params := e.PredictionParams()

	for _, row := range e.Benchmarks() {
		for _, kda := range []float64{0, 0.3, 0.75, 1.05, 1.6, 2.5, 6} {
			for _, wr := range []float64{0, 20, 45, 52, 70, 100} {
				for _, cons := range []float64{0, 35, 80, 100} {
					p := e.probabilities(summaryOf(kda, wr, cons), row.TierBenchmark)

					assert.GreaterOrEqual(t, p.Promotion, 0.0)
					assert.LessOrEqual(t, p.Promotion, params.PromotionCap)
					assert.GreaterOrEqual(t, p.Demotion, 0.0)
					assert.LessOrEqual(t, p.Demotion, params.DemotionCap)
					assert.GreaterOrEqual(t, p.Stable, params.StableFloor)
					assert.LessOrEqual(t, p.Stable, 100.0)
					assert.InDelta(t, 100.0, p.Promotion+p.Stable+p.Demotion, 0.2,
						"tier=%s kda=%v wr=%v cons=%v", row.Tier, kda, wr, cons)
				}
			}
		}
	}
}

func TestProbabilitiesNeedNotSumToHundred(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.Prediction.PromotionBase = 0.9
	e := NewEngine(cfg, nil)

	// KDA twice the gold benchmark, win rate half of it, perfect consistency.
	p := e.probabilities(summaryOf(2.1, 26, 100), schema.GetDefaultBenchmarks()[schema.GoldTier])

	assert.Equal(t, 85.0, p.Promotion)
	assert.Equal(t, 25.0, p.Demotion)
	assert.Equal(t, 10.0, p.Stable)
	assert.InDelta(t, 120.0, p.Promotion+p.Stable+p.Demotion, 1e-9)
}

func TestBenchmarkFit(t *testing.T) {
	e := DefaultEngine()
	fits := e.BenchmarkFit(summaryOf(1.05, 52, 80))
	require.Len(t, fits, len(schema.AllTiers))

	byTier := make(map[schema.Tier]schema.TierFit)
	for _, f := range fits {
		byTier[f.Tier] = f
	}
	assert.True(t, byTier[schema.GoldTier].Suitable)
	assert.Equal(t, 0.0, byTier[schema.GoldTier].KDADifference)
	assert.False(t, byTier[schema.IronTier].Suitable)
	assert.False(t, byTier[schema.RadiantTier].Suitable)
	assert.InDelta(t, -18.0, byTier[schema.RadiantTier].WinRateDifference, 1e-9)

	for _, f := range e.BenchmarkFit(schema.PerformanceSummary{}) {
		assert.False(t, f.Suitable)
	}
}

func TestCustomWeightsAndBenchmarks(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.ComputedWeights = map[schema.WeightKey]float64{
		schema.WeightKDA:         10,
		schema.WeightWinRate:     0,
		schema.WeightConsistency: 0,
	}
	cfg.Benchmarks[schema.GoldTier] = schema.TierBenchmark{ExpectedKDA: 4, ExpectedWinRate: 90}
	e := NewEngine(cfg, nil)

	// Mutating the config afterwards does not leak into the engine.
	cfg.Benchmarks[schema.GoldTier] = schema.TierBenchmark{ExpectedKDA: 1, ExpectedWinRate: 1}

	p := e.PredictRank(repeatMatch(5, match(2, 1, 0, schema.WinResult)), "gold")
	assert.InDelta(t, 20.0, p.Score, 1e-9)
	assert.Equal(t, 4.0, p.Benchmark.ExpectedKDA)
	assert.Equal(t, 90.0, p.Benchmark.ExpectedWinRate)
}

func BenchmarkPredictRank(b *testing.B) {
	e := DefaultEngine()
	records := make([]schema.MatchRecord, 20)
	for i := range records {
		records[i] = match(10+i%5, 8, i%6, schema.WinResult)
	}
	for b.Loop() {
		e.PredictRank(records, "ascendant-2")
	}
}
