package schema

// TierBenchmark holds the expected performance for one tier.
type TierBenchmark struct {
	ExpectedKDA     float64 `json:"expectedKDA" mapstructure:"kda"`
	ExpectedWinRate float64 `json:"expectedWinRate" mapstructure:"win_rate"`
}

// TierBenchmarkRow is a TierBenchmark with its tier, used for ordered listings.
type TierBenchmarkRow struct {
	Tier Tier `json:"tier"`
	TierBenchmark
}

// Probabilities holds the three independently clamped rank-change probabilities.
// They are not normalized and need not sum to 100.
type Probabilities struct {
	Promotion float64 `json:"promotion"`
	Stable    float64 `json:"stable"`
	Demotion  float64 `json:"demotion"`
}

// BenchmarkComparison compares a summary against the expectations of a tier.
type BenchmarkComparison struct {
	Tier              Tier    `json:"tier"`
	ExpectedKDA       float64 `json:"expectedKDA"`
	ExpectedWinRate   float64 `json:"expectedWinRate"`
	ActualKDA         float64 `json:"actualKDA"`
	ActualWinRate     float64 `json:"actualWinRate"`
	KDADifference     float64 `json:"kdaDifference"`
	WinRateDifference float64 `json:"winRateDifference"`
}

// TierFit reports how closely a summary matches one tier's expectations.
type TierFit struct {
	Tier              Tier    `json:"tier"`
	Suitable          bool    `json:"suitable"`
	KDADifference     float64 `json:"kdaDiff"`
	WinRateDifference float64 `json:"winRateDiff"`
}

// RankPrediction is the output of the rank predictor.
type RankPrediction struct {
	CurrentRank      string                `json:"currentRank"`
	Tier             Tier                  `json:"tier"`
	TierKnown        bool                  `json:"tierKnown"`
	Change           int                   `json:"predictedChange"`
	Score            float64               `json:"overallScore"`
	Confidence       float64               `json:"confidence"`
	Probabilities    Probabilities         `json:"probabilities"`
	Breakdown        map[WeightKey]float64 `json:"breakdown"`
	Benchmark        BenchmarkComparison   `json:"benchmarkComparison"`
	Summary          PerformanceSummary    `json:"summary"`
	ImprovementAreas []ImprovementArea     `json:"improvementAreas"`
}

// ImprovementArea is a single piece of rule-based advice.
type ImprovementArea struct {
	Category AreaCategory `json:"category"`
	Area     string       `json:"area"`
	Current  string       `json:"current"`
	Target   string       `json:"target"`
	Priority Priority     `json:"priority"`
	Tips     []string     `json:"tips"`
}
