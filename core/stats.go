package core

import (
	"math"
	"slices"

	"github.com/huangsam/rankcast/schema"
	"gonum.org/v1/gonum/stat"
)

// mean returns the arithmetic mean, or 0 for no values.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// sampleVariance returns the unbiased variance, or 0 for fewer than two values.
func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, nil)
}

// stdDev returns the population standard deviation.
func stdDev(xs []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}
	return math.Sqrt(sampleVariance(xs) * (n - 1) / n)
}

// quantile returns the p-quantile of sorted values with linear interpolation
// between closest ranks (h = (n-1)p).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// quartiles returns Q1, the median and Q3 of xs.
func quartiles(xs []float64) schema.Quartiles {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return schema.Quartiles{
		Q1: quantile(sorted, 0.25),
		Q2: quantile(sorted, 0.5),
		Q3: quantile(sorted, 0.75),
	}
}

// linearFit regresses ys on their indices 0..n-1. ok is false when the fit
// is not a finite number.
func linearFit(ys []float64) (slope, r2 float64, ok bool) {
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(alpha) || !isFinite(beta) {
		return 0, 0, false
	}
	r2 = stat.RSquared(xs, ys, nil, alpha, beta)
	if !isFinite(r2) {
		r2 = 0 // flat series
	}
	return beta, r2, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// round rounds half away from zero to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
