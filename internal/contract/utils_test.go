package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: WeakValue,
		},
		{
			name:     "just before average",
			input:    39.9,
			expected: WeakValue,
		},
		{
			name:     "exactly average",
			input:    40.0,
			expected: AverageValue,
		},
		{
			name:     "just before strong",
			input:    59.9,
			expected: AverageValue,
		},
		{
			name:     "exactly strong",
			input:    60.0,
			expected: StrongValue,
		},
		{
			name:     "just before excellent",
			input:    79.9,
			expected: StrongValue,
		},
		{
			name:     "exactly excellent",
			input:    80.0,
			expected: ExcellentValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"weak", 30, WeakValue},
		{"average", 50, AverageValue},
		{"strong", 70, StrongValue},
		{"excellent", 90, ExcellentValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorLabel(tt.score), tt.label)
		})
	}
}

func TestGetChangeLabel(t *testing.T) {
	assert.Equal(t, "Promotion", GetChangeLabel(1))
	assert.Equal(t, "Stable", GetChangeLabel(0))
	assert.Equal(t, "Demotion", GetChangeLabel(-1))
	assert.Contains(t, GetColorChangeLabel(1), "Promotion")
	assert.Contains(t, GetColorChangeLabel(-1), "Demotion")
}

func TestGetColorPriority(t *testing.T) {
	for _, p := range []schema.Priority{schema.HighPriority, schema.MediumPriority, schema.LowPriority} {
		assert.Contains(t, GetColorPriority(p), string(p))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("path creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "missing", "out.json"))
		assert.Error(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	assert.Contains(t, GetHistoryDBFilePath(), ".rankcast_history.db")
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Jett", 10, "Jett"},
		{"truncated", "Deadlock", 6, "Dea..."},
		{"tiny width ignored", "Deadlock", 3, "Deadlock"},
		{"multibyte", "ÉÉÉÉÉÉ", 5, "ÉÉ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
