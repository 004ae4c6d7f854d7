package core

import (
	"math"
	"testing"

	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
)

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, mean(values), 1e-9)
	assert.InDelta(t, 2.0, stdDev(values), 1e-9)
	assert.InDelta(t, 32.0/7.0, sampleVariance(values), 1e-9)

	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 0.0, stdDev([]float64{3}))
	assert.Equal(t, 0.0, sampleVariance([]float64{3}))
}

func TestQuartiles(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected schema.Quartiles
	}{
		{"empty", nil, schema.Quartiles{}},
		{"single", []float64{3}, schema.Quartiles{Q1: 3, Q2: 3, Q3: 3}},
		{"even count", []float64{4, 1, 3, 2}, schema.Quartiles{Q1: 1.75, Q2: 2.5, Q3: 3.25}},
		{"odd count", []float64{1, 2, 3, 4, 5}, schema.Quartiles{Q1: 2, Q2: 3, Q3: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quartiles(tt.values)
			assert.InDelta(t, tt.expected.Q1, got.Q1, 1e-9)
			assert.InDelta(t, tt.expected.Q2, got.Q2, 1e-9)
			assert.InDelta(t, tt.expected.Q3, got.Q3, 1e-9)
		})
	}
}

func TestQuartilesDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = quartiles(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestLinearFit(t *testing.T) {
	slope, r2, ok := linearFit([]float64{1, 2, 3, 4, 5})
	assert.True(t, ok)
	assert.InDelta(t, 1.0, slope, 1e-9)
	assert.InDelta(t, 1.0, r2, 1e-9)

	slope, _, ok = linearFit([]float64{5, 4, 3, 2, 1})
	assert.True(t, ok)
	assert.InDelta(t, -1.0, slope, 1e-9)

	slope, r2, ok = linearFit([]float64{2, 2, 2, 2, 2})
	assert.True(t, ok)
	assert.InDelta(t, 0.0, slope, 1e-9)
	assert.False(t, math.IsNaN(r2))

	_, _, ok = linearFit([]float64{1, math.NaN(), 3, 4, 5})
	assert.False(t, ok)
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 100))
	assert.Equal(t, 100.0, clamp(150, 0, 100))
	assert.Equal(t, 42.0, clamp(42, 0, 100))

	assert.Equal(t, 1.24, round(1.2449, 2))
	assert.Equal(t, 1.25, round(1.245001, 2))
	assert.Equal(t, 74.0, round(73.5, 0))
	assert.Equal(t, -0.2, round(-0.19999999999999996, 2))
}

func BenchmarkQuartiles(b *testing.B) {
	values := make([]float64, 500)
	for i := range values {
		values[i] = float64((i * 37) % 101)
	}
	for b.Loop() {
		quartiles(values)
	}
}
