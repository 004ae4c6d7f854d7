package iocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
)

// RecordPredictionRun stores one run and its predictions. A nil store is a no-op.
// A source is recorded once per run; later results for the same source are skipped.
// The first failed write stops the remaining ones, and the run is still closed with
// the matches recorded so far.
func RecordPredictionRun(ctx context.Context, store contract.HistoryStore, command string, params map[string]any, results []schema.PredictionResult) (string, error) {
	if store == nil {
		return "", nil
	}

	runID, err := store.BeginRun(ctx, command, time.Now(), params)
	if err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}

	totalMatches := 0
	recorded := make(map[string]struct{}, len(results))
	var recordErr error
	for _, result := range results {
		if _, ok := recorded[result.Source]; ok {
			continue
		}
		if err := store.RecordPrediction(ctx, runID, result.Source, result.RankPrediction); err != nil {
			recordErr = fmt.Errorf("failed to record prediction for %s: %w", result.Source, err)
			break
		}
		recorded[result.Source] = struct{}{}
		totalMatches += result.Summary.TotalMatches
	}

	if err := store.EndRun(ctx, runID, time.Now(), totalMatches); err != nil {
		return runID, errors.Join(recordErr, fmt.Errorf("failed to end run %s: %w", runID, err))
	}
	return runID, recordErr
}
