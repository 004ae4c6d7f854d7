// Package main provides a performance benchmarking tool for the rankcast CLI.
// It generates synthetic match histories of increasing size, then measures
// execution times of each analysis command with and without the SQLite history
// store. Each command runs several times; the first successful run counts as
// cold and the rest are averaged as warm. Results are written to CSV.
//
// Prerequisites:
// - rankcast binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated datasets and the history database
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       int
	Files         int
	NoHistoryRuns int
	HistoryRuns   int
	Datasets      map[string]int // dataset name -> matches per file
	Order         []string
	Commands      []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       2 * time.Minute,
		Workers:       8,
		Files:         8,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Datasets: map[string]int{
			"small":  50,
			"medium": 1_000,
			"large":  20_000,
			"huge":   200_000,
		},
		Order:    []string{"small", "medium", "large", "huge"},
		Commands: []string{"summarize", "predict", "advise", "benchmarks"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	files, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, files)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the rankcast binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("rankcast"); err != nil {
		return errors.New("rankcast binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// match mirrors the JSON input format of rankcast.
type match struct {
	Kills     int       `json:"kills"`
	Deaths    int       `json:"deaths"`
	Assists   int       `json:"assists"`
	Score     float64   `json:"score"`
	AgentID   string    `json:"agentId"`
	MapID     string    `json:"mapId"`
	GameMode  string    `json:"gameMode"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	agents = []string{"Jett", "Reyna", "Phoenix", "Sage", "Sova", "Omen", "Killjoy", "Cypher", "Skye", "Viper"}
	maps   = []string{"Ascent", "Bind", "Haven", "Split", "Icebox", "Breeze"}
)

// generateDatasets writes Files match histories per dataset and returns their paths.
// A fixed seed keeps datasets identical across benchmark runs.
func generateDatasets(config BenchmarkConfig) (map[string][]string, error) {
	rng := rand.New(rand.NewPCG(42, 7))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	files := make(map[string][]string, len(config.Datasets))
	for _, name := range config.Order {
		size := config.Datasets[name]
		fmt.Printf("Generating %s dataset (%d files x %d matches)\n", name, config.Files, size)
		for i := range config.Files {
			matches := make([]match, size)
			for j := range matches {
				result := "loss"
				if rng.Float64() < 0.5 {
					result = "win"
				}
				matches[j] = match{
					Kills:     rng.IntN(30),
					Deaths:    1 + rng.IntN(25),
					Assists:   rng.IntN(12),
					Score:     100 + rng.Float64()*250,
					AgentID:   agents[rng.IntN(len(agents))],
					MapID:     maps[rng.IntN(len(maps))],
					GameMode:  "competitive",
					Result:    result,
					Timestamp: base.Add(time.Duration(j) * 40 * time.Minute),
				}
			}

			path := filepath.Join(config.WorkDir, fmt.Sprintf("%s_%02d.json", name, i))
			data, err := json.Marshal(matches)
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return nil, err
			}
			files[name] = append(files[name], path)
		}
	}
	return files, nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig, files map[string][]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-history: %d runs, history: %d runs\n",
		len(config.Order), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	for _, dataset := range config.Order {
		fmt.Printf("Benchmarking %s\n", dataset)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, dataset, command, files[dataset]))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string, paths []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, paths, historyBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a rankcast command multiple times with the given history backend
// and returns the cold time and the warm times
func runBenchmark(config BenchmarkConfig, command string, paths []string, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command,
		"--output", "json",
		"--workers", fmt.Sprint(config.Workers),
		"--window", "500",
		"--history-backend", historyBackend,
		"--history-db-connect", filepath.Join(config.WorkDir, "benchmark_history.db"),
	}
	args = append(args, paths...)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "rankcast", args...).Output()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && json.Valid(output) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/rankcast_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
