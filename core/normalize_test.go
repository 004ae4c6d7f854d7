package core

import (
	"testing"
	"time"

	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	missingDeaths := match(5, 0, 0, schema.WinResult)
	missingDeaths.Deaths = nil

	tests := []struct {
		name        string
		records     []schema.MatchRecord
		window      int
		wantKDAs    []float64
		wantDropped int
	}{
		{
			name:     "empty input",
			records:  nil,
			window:   20,
			wantKDAs: []float64{},
		},
		{
			name:     "deaths clamped to one",
			records:  []schema.MatchRecord{match(3, 0, 2, schema.WinResult)},
			window:   20,
			wantKDAs: []float64{5},
		},
		{
			name: "missing counter dropped",
			records: []schema.MatchRecord{
				match(2, 1, 0, schema.WinResult),
				missingDeaths,
			},
			window:      20,
			wantKDAs:    []float64{2},
			wantDropped: 1,
		},
		{
			name: "negative counter dropped",
			records: []schema.MatchRecord{
				match(-1, 1, 0, schema.WinResult),
				match(4, 2, 0, schema.LossResult),
			},
			window:      20,
			wantKDAs:    []float64{2},
			wantDropped: 1,
		},
		{
			name:     "keeps most recent window",
			records:  kdaSeries(1, 2, 3, 4, 5),
			window:   3,
			wantKDAs: []float64{3, 4, 5},
		},
		{
			name:     "non-positive window uses default",
			records:  kdaSeries(1, 2),
			window:   0,
			wantKDAs: []float64{1, 2},
		},
		{
			name: "sorted by timestamp when all stamped",
			records: []schema.MatchRecord{
				stamped(match(3, 1, 0, schema.WinResult), 2*time.Hour),
				stamped(match(1, 1, 0, schema.WinResult), 0),
				stamped(match(2, 1, 0, schema.WinResult), time.Hour),
			},
			window:   20,
			wantKDAs: []float64{1, 2, 3},
		},
		{
			name: "caller order kept when a timestamp is missing",
			records: []schema.MatchRecord{
				stamped(match(3, 1, 0, schema.WinResult), 2*time.Hour),
				match(1, 1, 0, schema.WinResult),
				stamped(match(2, 1, 0, schema.WinResult), time.Hour),
			},
			window:   20,
			wantKDAs: []float64{3, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := Normalize(tt.records, tt.window)
			require.Len(t, got, len(tt.wantKDAs))
			for i, want := range tt.wantKDAs {
				assert.InDelta(t, want, got[i].KDA, 1e-9)
			}
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

func TestNormalizeDefaultWindow(t *testing.T) {
	got, _ := Normalize(repeatMatch(50, match(1, 1, 1, schema.WinResult)), 0)
	assert.Len(t, got, schema.DefaultWindow)
}
