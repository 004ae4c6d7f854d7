package iocache

import (
	"context"
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(ctx context.Context, command string, startTime time.Time, configParams map[string]any) (string, error) {
	args := m.Called(ctx, command, startTime, configParams)
	return args.String(0), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(ctx context.Context, runID string, endTime time.Time, totalMatches int) error {
	args := m.Called(ctx, runID, endTime, totalMatches)
	return args.Error(0)
}

// RecordPrediction implements the HistoryStore interface.
func (m *MockHistoryStore) RecordPrediction(ctx context.Context, runID string, source string, prediction schema.RankPrediction) error {
	args := m.Called(ctx, runID, source, prediction)
	return args.Error(0)
}

// ListPredictions implements the HistoryStore interface.
func (m *MockHistoryStore) ListPredictions(ctx context.Context, limit int) ([]schema.PredictionRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]schema.PredictionRecord)
	return records, args.Error(1)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(ctx context.Context) ([]schema.RunRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
