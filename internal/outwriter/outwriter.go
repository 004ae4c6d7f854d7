// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
)

// OutWriter provides a unified interface for all output operations.
// Each method dispatches on cfg.Output and honors cfg.OutputFile.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummaries prints performance summaries.
func (ow *OutWriter) WriteSummaries(results []schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(results, cfg, duration)
}

// WritePredictions prints rank predictions.
func (ow *OutWriter) WritePredictions(results []schema.PredictionResult, cfg *contract.Config, duration time.Duration) error {
	return WritePredictionResults(results, cfg, duration)
}

// WriteAdvice prints improvement areas.
func (ow *OutWriter) WriteAdvice(results []schema.AdviceResult, cfg *contract.Config) error {
	return WriteAdviceResults(results, cfg)
}

// WriteSynergy prints a team synergy report.
func (ow *OutWriter) WriteSynergy(report schema.SynergyReport, cfg *contract.Config) error {
	return WriteSynergyReport(report, cfg)
}

// WriteBenchmarks prints the active tier table and formulas, plus tier fit when given.
func (ow *OutWriter) WriteBenchmarks(model *schema.BenchmarksRenderModel, fits []schema.TierFitResult, cfg *contract.Config) error {
	return WriteBenchmarksDefinitions(model, fits, cfg)
}

// WriteHistory prints stored predictions.
func (ow *OutWriter) WriteHistory(records []schema.PredictionRecord, cfg *contract.Config) error {
	return WriteHistoryRecords(records, cfg)
}

// WriteHistoryStatus prints the state of the history store.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return WriteHistoryStatusResult(status, cfg)
}
