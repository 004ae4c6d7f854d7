package loader

import (
	"context"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/mock"
)

// MockMatchSource is a mock implementation of MatchSource for testing.
type MockMatchSource struct {
	mock.Mock
}

var _ contract.MatchSource = &MockMatchSource{} // Compile-time check

// Load implements the MatchSource interface.
func (m *MockMatchSource) Load(ctx context.Context, path string) ([]schema.MatchRecord, error) {
	args := m.Called(ctx, path)
	records, _ := args.Get(0).([]schema.MatchRecord)
	return records, args.Error(1)
}
