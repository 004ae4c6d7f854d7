//go:build basic

// Package integration contains integration tests for rankcast.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeJSONOutput(t *testing.T) {
	out, err := runRankcast(t, nil, "summarize", "testdata/matches.json", "testdata/matches.csv", "--output", "json")
	require.NoError(t, err)

	var results []struct {
		Source       string  `json:"source"`
		TotalMatches int     `json:"totalMatches"`
		Wins         int     `json:"wins"`
		WinRate      float64 `json:"winRate"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "testdata/matches.json", results[0].Source)
	assert.Equal(t, 12, results[0].TotalMatches)
	assert.Equal(t, 8, results[0].Wins)

	// The CSV row with a blank kills cell is dropped
	assert.Equal(t, "testdata/matches.csv", results[1].Source)
	assert.Equal(t, 8, results[1].TotalMatches)
	assert.InDelta(t, 25.0, results[1].WinRate, 0.01)
}

func TestSummarizeWindowFromEnv(t *testing.T) {
	out, err := runRankcast(t, []string{"RANKCAST_WINDOW=5"}, "summarize", "testdata/matches.json", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalMatches": 5`)
}

func TestPredictTextOutput(t *testing.T) {
	out, err := runRankcast(t, nil, "predict", "testdata/matches.json", "--rank", "silver-3", "--color", "no", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "silver")
	assert.Contains(t, out, "Predicted 1 sources")
}

func TestPredictUnknownRankIsMarked(t *testing.T) {
	out, err := runRankcast(t, nil, "predict", "testdata/matches.json", "--rank", "champion", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "is not a known tier")
}

func TestAdviseCSVOutput(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "advice.csv")
	_, err := runRankcast(t, nil, "advise", "testdata/matches.csv", "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)
	assert.FileExists(t, outFile)
}

func TestSynergyPositionalAgents(t *testing.T) {
	out, err := runRankcast(t, nil, "synergy", "Jett", "Sage", "Sova", "Omen", "Killjoy", "--output", "json")
	require.NoError(t, err)

	var report struct {
		Size  int      `json:"size"`
		Score *float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 5, report.Size)
	assert.NotNil(t, report.Score)
}

func TestSynergyEmptyRoster(t *testing.T) {
	out, err := runRankcast(t, nil, "synergy", "--output", "json")
	require.NoError(t, err)

	var report struct {
		Size            int      `json:"size"`
		Score           *float64 `json:"score"`
		Recommendations []string `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.Size)
	assert.Nil(t, report.Score)
	assert.Equal(t, []string{"select agents to analyze"}, report.Recommendations)
}

func TestSummarizeSkipsUndecodableRecords(t *testing.T) {
	out, err := runRankcast(t, nil, "summarize", "testdata/mixed.json", "--output", "json")
	require.NoError(t, err)

	var results []struct {
		TotalMatches int `json:"totalMatches"`
		Wins         int `json:"wins"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].TotalMatches)
	assert.Equal(t, 1, results[0].Wins)
}

func TestBenchmarksWithTierFit(t *testing.T) {
	out, err := runRankcast(t, nil, "benchmarks", "testdata/matches.json", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "Rank Benchmarks")
	assert.Contains(t, out, "Tier fit for testdata/matches.json")
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := runRankcast(t, nil, "summarize", "testdata/matches.json", "--output", "yaml")
	assert.Error(t, err)

	_, err = runRankcast(t, nil, "summarize", "testdata/missing.json")
	assert.Error(t, err)
}

func TestHistoryWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	env := []string{"RANKCAST_HISTORY_BACKEND=sqlite", "RANKCAST_HISTORY_DB_CONNECT=" + dbPath}

	_, err := runRankcast(t, env, "history", "migrate")
	require.NoError(t, err)

	for range 2 {
		_, err = runRankcast(t, env, "predict", "testdata/matches.json", "testdata/matches.csv", "--output", "json")
		require.NoError(t, err)
	}

	out, err := runRankcast(t, env, "history", "status", "--output", "json")
	require.NoError(t, err)
	var status struct {
		TotalRuns        int `json:"total_runs"`
		TotalPredictions int `json:"total_predictions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, 4, status.TotalPredictions)

	out, err = runRankcast(t, env, "history", "list", "--limit", "3", "--output", "csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	exportBase := filepath.Join(t.TempDir(), "export")
	_, err = runRankcast(t, env, "history", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".runs.parquet")
	assert.FileExists(t, exportBase+".predictions.parquet")

	_, err = runRankcast(t, env, "history", "clear")
	require.NoError(t, err)
	out, err = runRankcast(t, env, "history", "status", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_runs": 0`)
}

func TestHistoryRepeatedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	env := []string{"RANKCAST_HISTORY_BACKEND=sqlite", "RANKCAST_HISTORY_DB_CONNECT=" + dbPath}

	out, err := runRankcast(t, env, "predict", "testdata/matches.json", "testdata/matches.json", "--output", "json")
	require.NoError(t, err)
	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)

	out, err = runRankcast(t, env, "history", "status", "--output", "json")
	require.NoError(t, err)
	var status struct {
		TotalRuns        int `json:"total_runs"`
		TotalPredictions int `json:"total_predictions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 1, status.TotalPredictions)
}
