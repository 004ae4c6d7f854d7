// Package batch runs engine operations over several match files concurrently.
package batch

import (
	"context"

	"github.com/huangsam/rankcast/core"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/loader"
	"github.com/huangsam/rankcast/schema"
	"golang.org/x/sync/errgroup"
)

// uniquePaths drops repeated paths, keeping the first occurrence of each.
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// mapSources loads every distinct path and applies fn to each match history
// concurrently. Results keep the order of first appearance in paths.
func mapSources[T any](ctx context.Context, source contract.MatchSource, paths []string, workers int, fn func(path string, records []schema.MatchRecord) T) ([]T, error) {
	paths = uniquePaths(paths)
	histories, err := loader.LoadAll(ctx, source, paths, workers)
	if err != nil {
		return nil, err
	}

	results := make([]T, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = fn(path, histories[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetSummaryResults summarizes every match history in paths.
func GetSummaryResults(ctx context.Context, e *core.Engine, source contract.MatchSource, paths []string, workers int) ([]schema.SummaryResult, error) {
	return mapSources(ctx, source, paths, workers, func(path string, records []schema.MatchRecord) schema.SummaryResult {
		return schema.SummaryResult{Source: path, PerformanceSummary: e.Summarize(records)}
	})
}

// GetPredictionResults predicts the next rank move for every match history in paths.
func GetPredictionResults(ctx context.Context, e *core.Engine, source contract.MatchSource, paths []string, workers int, currentRank string) ([]schema.PredictionResult, error) {
	return mapSources(ctx, source, paths, workers, func(path string, records []schema.MatchRecord) schema.PredictionResult {
		p := e.PredictRank(records, currentRank)
		return schema.PredictionResult{
			Source:         path,
			Label:          schema.GetPlainLabel(p.Score),
			RankPrediction: p,
		}
	})
}

// GetAdviceResults derives improvement areas for every match history in paths.
func GetAdviceResults(ctx context.Context, e *core.Engine, source contract.MatchSource, paths []string, workers int) ([]schema.AdviceResult, error) {
	return mapSources(ctx, source, paths, workers, func(path string, records []schema.MatchRecord) schema.AdviceResult {
		return schema.AdviceResult{Source: path, Areas: e.ImprovementAreas(records)}
	})
}

// GetTierFitResults compares every match history in paths against each tier.
func GetTierFitResults(ctx context.Context, e *core.Engine, source contract.MatchSource, paths []string, workers int) ([]schema.TierFitResult, error) {
	rows := e.Benchmarks()
	return mapSources(ctx, source, paths, workers, func(path string, records []schema.MatchRecord) schema.TierFitResult {
		fits := e.BenchmarkFit(e.Summarize(records))
		return schema.TierFitResult{Source: path, Fits: schema.EnrichTierFits(fits, rows)}
	})
}
