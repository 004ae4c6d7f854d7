package iocache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordPredictionRun(t *testing.T) {
	ctx := context.Background()
	results := []schema.PredictionResult{
		{Source: "a.json", RankPrediction: samplePrediction("Gold 2", 1)},
		{Source: "b.json", RankPrediction: samplePrediction("Gold 1", 0)},
	}

	t.Run("records every prediction", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("BeginRun", ctx, "predict", mock.Anything, mock.Anything).Return("run-1", nil)
		store.On("RecordPrediction", ctx, "run-1", "a.json", results[0].RankPrediction).Return(nil)
		store.On("RecordPrediction", ctx, "run-1", "b.json", results[1].RankPrediction).Return(nil)
		store.On("EndRun", ctx, "run-1", mock.Anything, 40).Return(nil)

		runID, err := RecordPredictionRun(ctx, store, "predict", map[string]any{"window": 20}, results)
		require.NoError(t, err)
		assert.Equal(t, "run-1", runID)
		store.AssertExpectations(t)
	})

	t.Run("begin failure", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("BeginRun", ctx, "predict", mock.Anything, mock.Anything).Return("", errors.New("locked"))

		_, err := RecordPredictionRun(ctx, store, "predict", nil, results)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
		store.AssertNotCalled(t, "RecordPrediction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record failure still closes the run", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("BeginRun", ctx, "predict", mock.Anything, mock.Anything).Return("run-2", nil)
		store.On("RecordPrediction", ctx, "run-2", "a.json", mock.Anything).Return(nil)
		store.On("RecordPrediction", ctx, "run-2", "b.json", mock.Anything).Return(errors.New("disk full"))
		store.On("EndRun", ctx, "run-2", mock.Anything, 20).Return(nil)

		runID, err := RecordPredictionRun(ctx, store, "predict", nil, results)
		require.ErrorContains(t, err, "disk full")
		assert.Equal(t, "run-2", runID)
		store.AssertExpectations(t)
	})

	t.Run("record and end failures are joined", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("BeginRun", ctx, "predict", mock.Anything, mock.Anything).Return("run-3", nil)
		store.On("RecordPrediction", ctx, "run-3", "a.json", mock.Anything).Return(errors.New("disk full"))
		store.On("EndRun", ctx, "run-3", mock.Anything, 0).Return(errors.New("connection lost"))

		_, err := RecordPredictionRun(ctx, store, "predict", nil, results)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Contains(t, err.Error(), "connection lost")
		store.AssertNotCalled(t, "RecordPrediction", ctx, "run-3", "b.json", mock.Anything)
	})

	t.Run("repeated source is recorded once", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("BeginRun", ctx, "predict", mock.Anything, mock.Anything).Return("run-4", nil)
		store.On("RecordPrediction", ctx, "run-4", "a.json", mock.Anything).Return(nil).Once()
		store.On("EndRun", ctx, "run-4", mock.Anything, 20).Return(nil)

		repeated := []schema.PredictionResult{results[0], results[0]}
		_, err := RecordPredictionRun(ctx, store, "predict", nil, repeated)
		require.NoError(t, err)
		store.AssertExpectations(t)
		store.AssertNumberOfCalls(t, "RecordPrediction", 1)
	})

	t.Run("nil store", func(t *testing.T) {
		runID, err := RecordPredictionRun(ctx, nil, "predict", nil, results)
		require.NoError(t, err)
		assert.Empty(t, runID)
	})
}

func TestRecordPredictionRunSQLiteRepeatedSource(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	result := schema.PredictionResult{Source: "m.json", RankPrediction: samplePrediction("Gold 2", 1)}
	runID, err := RecordPredictionRun(ctx, store, "predict", nil, []schema.PredictionResult{result, result})
	require.NoError(t, err)

	predictions, err := store.ListPredictions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "m.json", predictions[0].Source)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	require.NotNil(t, runs[0].EndTime)
	assert.Equal(t, int32(20), runs[0].TotalMatches)
}

func TestRecordPredictionRunSQLiteClosesFailedRun(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(ctx, "predict", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordPrediction(ctx, runID, "taken.json", samplePrediction("Gold 2", 1)))

	// Reusing the run id forces a primary key conflict on the insert.
	failing := &runIDStore{HistoryStoreImpl: store, runID: runID}
	_, err = RecordPredictionRun(ctx, failing, "predict", nil, []schema.PredictionResult{
		{Source: "taken.json", RankPrediction: samplePrediction("Gold 2", 1)},
	})
	require.Error(t, err)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotNil(t, runs[0].EndTime)
	assert.Zero(t, runs[0].TotalMatches)
}

// runIDStore hands out an existing run id instead of starting a new run.
type runIDStore struct {
	*HistoryStoreImpl
	runID string
}

func (s *runIDStore) BeginRun(context.Context, string, time.Time, map[string]any) (string, error) {
	return s.runID, nil
}

func TestExecuteHistoryExport(t *testing.T) {
	ctx := context.Background()

	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteHistoryExport(ctx, &MockHistoryStore{}, "", os.Stdout)
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("empty history", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus", ctx).Return(schema.HistoryStatus{Backend: "sqlite"}, nil)
		err := ExecuteHistoryExport(ctx, store, filepath.Join(t.TempDir(), "out"), os.Stdout)
		assert.ErrorContains(t, err, "no history data")
	})

	t.Run("writes both files", func(t *testing.T) {
		sqliteStore := newSQLiteStore(t)
		_, err := RecordPredictionRun(ctx, sqliteStore, "predict", nil, []schema.PredictionResult{
			{Source: "a.json", RankPrediction: samplePrediction("Gold 2", 1)},
		})
		require.NoError(t, err)

		out := filepath.Join(t.TempDir(), "export")
		var sink bytes.Buffer
		require.NoError(t, ExecuteHistoryExport(ctx, sqliteStore, out, &sink))
		assert.FileExists(t, out+".runs.parquet")
		assert.FileExists(t, out+".predictions.parquet")
		assert.Contains(t, sink.String(), "Exported 1 predictions")
	})
}
