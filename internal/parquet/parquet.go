// Package parquet provides data structures and functions for exporting rankcast
// results and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/rankcast/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single rankcast command run with metadata.
// This struct maps to the rankcast_runs database table.
type Run struct {
	// RunID is the UUID of this run
	RunID string `parquet:"run_id,snappy"`

	// Command is the CLI command that produced the run
	Command string `parquet:"command,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalMatches is the number of valid matches analyzed in this run
	TotalMatches int32 `parquet:"total_matches,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Prediction is one stored rank prediction.
// This struct maps to the rankcast_predictions database table.
type Prediction struct {
	RunID            string    `parquet:"run_id,snappy"`
	Source           string    `parquet:"source,snappy"`
	RecordedAt       time.Time `parquet:"recorded_at,snappy"`
	CurrentRank      string    `parquet:"current_rank,snappy"`
	Tier             string    `parquet:"tier,snappy"`
	PredictedChange  int32     `parquet:"predicted_change,snappy"`
	OverallScore     float64   `parquet:"overall_score,snappy"`
	Confidence       float64   `parquet:"confidence,snappy"`
	PromotionChance  float64   `parquet:"promotion,snappy"`
	StableChance     float64   `parquet:"stable,snappy"`
	DemotionChance   float64   `parquet:"demotion,snappy"`
	TotalMatches     int32     `parquet:"total_matches,snappy"`
	AvgKDA           float64   `parquet:"avg_kda,snappy"`
	WinRate          float64   `parquet:"win_rate,snappy"`
	ConsistencyScore float64   `parquet:"consistency,snappy"`
	Trend            string    `parquet:"trend,snappy"`
}

// Summary is a flattened performance summary.
type Summary struct {
	Source             string  `parquet:"source,snappy"`
	TotalMatches       int32   `parquet:"total_matches,snappy"`
	Wins               int32   `parquet:"wins,snappy"`
	AvgKDA             float64 `parquet:"avg_kda,snappy"`
	MedianKDA          float64 `parquet:"median_kda,snappy"`
	KDAStdDev          float64 `parquet:"kda_stddev,snappy"`
	KDAQ1              float64 `parquet:"kda_q1,snappy"`
	KDAQ3              float64 `parquet:"kda_q3,snappy"`
	AvgScore           float64 `parquet:"avg_score,snappy"`
	WinRate            float64 `parquet:"win_rate,snappy"`
	Consistency        float64 `parquet:"consistency,snappy"`
	ConsistencyOutcome string  `parquet:"consistency_outcome,snappy"`
	Trend              string  `parquet:"trend,snappy"`
	TrendSlope         float64 `parquet:"trend_slope,snappy"`
	TrendR2            float64 `parquet:"trend_r2,snappy"`
	TrendConfidence    float64 `parquet:"trend_confidence,snappy"`
	Reliability        float64 `parquet:"reliability,snappy"`
	TopAgent           *string `parquet:"top_agent,optional,snappy"`
}

// Advice is one improvement area. Tips are joined with "|".
type Advice struct {
	Source   string `parquet:"source,snappy"`
	Category string `parquet:"category,snappy"`
	Area     string `parquet:"area,snappy"`
	Current  string `parquet:"current,snappy"`
	Target   string `parquet:"target,snappy"`
	Priority string `parquet:"priority,snappy"`
	Tips     string `parquet:"tips,snappy"`
}

// SynergyPair is one evaluated roster pair.
type SynergyPair struct {
	AgentA  string  `parquet:"agent_a,snappy"`
	AgentB  string  `parquet:"agent_b,snappy"`
	Score   float64 `parquet:"score,snappy"`
	Default bool    `parquet:"is_default,snappy"`
}

// Tier is one row of the benchmark table.
type Tier struct {
	Tier            string  `parquet:"tier,snappy"`
	ExpectedKDA     float64 `parquet:"expected_kda,snappy"`
	ExpectedWinRate float64 `parquet:"expected_win_rate,snappy"`
}

// writeRows writes a slice of rows to a Parquet file. The schema is derived
// from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes run metadata to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRows(data, outputPath)
}

// WritePredictionsParquet writes stored predictions to a Parquet file.
func WritePredictionsParquet(data []Prediction, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSummariesParquet writes summary rows to a Parquet file.
func WriteSummariesParquet(data []Summary, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAdviceParquet writes improvement areas to a Parquet file.
func WriteAdviceParquet(data []Advice, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSynergyParquet writes roster pairs to a Parquet file.
func WriteSynergyParquet(data []SynergyPair, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteTiersParquet writes the benchmark table to a Parquet file.
func WriteTiersParquet(data []Tier, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:         r.RunID,
			Command:       r.Command,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalMatches:  r.TotalMatches,
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertPredictionRecords converts schema.PredictionRecord to Prediction for Parquet export.
func ConvertPredictionRecords(records []schema.PredictionRecord) []Prediction {
	result := make([]Prediction, len(records))
	for i, r := range records {
		result[i] = Prediction{
			RunID:            r.RunID,
			Source:           r.Source,
			RecordedAt:       r.RecordedAt,
			CurrentRank:      r.CurrentRank,
			Tier:             r.Tier,
			PredictedChange:  r.PredictedChange,
			OverallScore:     r.OverallScore,
			Confidence:       r.Confidence,
			PromotionChance:  r.PromotionChance,
			StableChance:     r.StableChance,
			DemotionChance:   r.DemotionChance,
			TotalMatches:     r.TotalMatches,
			AvgKDA:           r.AvgKDA,
			WinRate:          r.WinRate,
			ConsistencyScore: r.ConsistencyScore,
			Trend:            r.Trend,
		}
	}
	return result
}

// ConvertSummary flattens a performance summary.
func ConvertSummary(source string, s schema.PerformanceSummary) Summary {
	row := Summary{
		Source:             source,
		TotalMatches:       int32(s.TotalMatches),
		Wins:               int32(s.Wins),
		AvgKDA:             s.AvgKDA,
		MedianKDA:          s.MedianKDA,
		KDAStdDev:          s.KDAStdDev,
		KDAQ1:              s.KDAQuartiles.Q1,
		KDAQ3:              s.KDAQuartiles.Q3,
		AvgScore:           s.AvgScore,
		WinRate:            s.WinRate,
		Consistency:        s.Consistency.Score,
		ConsistencyOutcome: string(s.Consistency.Outcome),
		Trend:              string(s.Trend.Kind),
		TrendSlope:         s.Trend.Slope,
		TrendR2:            s.Trend.R2,
		TrendConfidence:    s.Trend.Confidence,
		Reliability:        s.Reliability,
	}
	if len(s.Agents) > 0 {
		top := s.Agents[0].AgentID
		row.TopAgent = &top
	}
	return row
}

// ConvertAdvice converts improvement areas for Parquet export.
func ConvertAdvice(source string, areas []schema.ImprovementArea) []Advice {
	result := make([]Advice, len(areas))
	for i, a := range areas {
		result[i] = Advice{
			Source:   source,
			Category: string(a.Category),
			Area:     a.Area,
			Current:  a.Current,
			Target:   a.Target,
			Priority: string(a.Priority),
			Tips:     strings.Join(a.Tips, "|"),
		}
	}
	return result
}

// ConvertSynergyPairs converts evaluated roster pairs for Parquet export.
func ConvertSynergyPairs(pairs []schema.PairSynergy) []SynergyPair {
	result := make([]SynergyPair, len(pairs))
	for i, p := range pairs {
		result[i] = SynergyPair{AgentA: p.A, AgentB: p.B, Score: p.Score, Default: p.Default}
	}
	return result
}

// ConvertTiers converts benchmark rows for Parquet export.
func ConvertTiers(rows []schema.TierBenchmarkRow) []Tier {
	result := make([]Tier, len(rows))
	for i, r := range rows {
		result[i] = Tier{Tier: string(r.Tier), ExpectedKDA: r.ExpectedKDA, ExpectedWinRate: r.ExpectedWinRate}
	}
	return result
}
