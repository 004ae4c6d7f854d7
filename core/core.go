// Package core has core logic for normalization, statistics, rank prediction and team synergy.
package core

import (
	"maps"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"go.uber.org/zap"
)

// Engine runs every analytics operation against one immutable configuration.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	window     int
	weights    map[schema.WeightKey]float64
	params     schema.PredictionParams
	benchmarks *BenchmarkTable
	synergy    *SynergyTable
	roles      *RoleTaxonomy
	logger     *zap.SugaredLogger
}

// NewEngine builds an engine from a validated configuration. Tables are copied,
// so later changes to cfg do not affect the engine. A nil logger discards output.
func NewEngine(cfg *contract.Config, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	window := cfg.Window
	if window <= 0 {
		window = schema.DefaultWindow
	}
	weights := schema.GetDefaultWeights()
	maps.Copy(weights, cfg.ComputedWeights)
	params := cfg.Prediction
	if params == (schema.PredictionParams{}) {
		params = schema.GetDefaultPredictionParams()
	}
	return &Engine{
		window:     window,
		weights:    weights,
		params:     params,
		benchmarks: NewBenchmarkTable(cfg.Benchmarks),
		synergy:    NewSynergyTable(cfg.SynergyPairs),
		roles:      NewRoleTaxonomy(cfg.Roles),
		logger:     logger,
	}
}

// DefaultEngine returns an engine with every default applied.
func DefaultEngine() *Engine {
	return NewEngine(contract.DefaultConfig(), nil)
}

// Window returns the number of most recent matches the engine considers.
func (e *Engine) Window() int {
	return e.window
}

// Weights returns a copy of the rank score weights.
func (e *Engine) Weights() map[schema.WeightKey]float64 {
	return maps.Clone(e.weights)
}

// PredictionParams returns the predictor thresholds and caps.
func (e *Engine) PredictionParams() schema.PredictionParams {
	return e.params
}

// Benchmarks returns the active benchmark table in tier order.
func (e *Engine) Benchmarks() []schema.TierBenchmarkRow {
	return e.benchmarks.Rows()
}
