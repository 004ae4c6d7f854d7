package schema

// FormulaDefinition describes one derived value for display purposes.
type FormulaDefinition struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Formula string `json:"formula"`
}

// BenchmarksRenderModel contains all processed data needed for displaying
// the tier table and the formulas that use it.
type BenchmarksRenderModel struct {
	Title      string                `json:"title"`
	Tiers      []TierBenchmarkRow    `json:"tiers"`
	Weights    map[WeightKey]float64 `json:"weights"`
	Prediction PredictionParams      `json:"prediction"`
	Formulas   []FormulaDefinition   `json:"formulas"`
}
