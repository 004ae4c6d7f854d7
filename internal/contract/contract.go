// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/rankcast/schema"
)

// HistoryStore defines the interface for recording analysis runs and predictions.
// This allows the persistence layer to be mocked for testing.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(ctx context.Context, command string, startTime time.Time, configParams map[string]any) (string, error)

	// EndRun updates the run with completion data.
	EndRun(ctx context.Context, runID string, endTime time.Time, totalMatches int) error

	// RecordPrediction stores one rank prediction for a run.
	RecordPrediction(ctx context.Context, runID string, source string, prediction schema.RankPrediction) error

	// ListPredictions returns the stored predictions, newest first.
	ListPredictions(ctx context.Context, limit int) ([]schema.PredictionRecord, error)

	// ListRuns returns every stored run in start order.
	ListRuns(ctx context.Context) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus(ctx context.Context) (schema.HistoryStatus, error)

	// Clear removes every run and prediction.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}

// MatchSource loads raw match records from a named location.
type MatchSource interface {
	Load(ctx context.Context, path string) ([]schema.MatchRecord, error)
}
