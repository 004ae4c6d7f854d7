package schema

import "time"

// RunRecord represents a row from the rankcast_runs table.
type RunRecord struct {
	RunID         string
	Command       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalMatches  int32
	ConfigParams  *string
}

// PredictionRecord represents a row from the rankcast_predictions table.
type PredictionRecord struct {
	RunID            string    `json:"run_id"`
	Source           string    `json:"source"`
	RecordedAt       time.Time `json:"recorded_at"`
	CurrentRank      string    `json:"current_rank"`
	Tier             string    `json:"tier"`
	PredictedChange  int32     `json:"predicted_change"`
	OverallScore     float64   `json:"overall_score"`
	Confidence       float64   `json:"confidence"`
	PromotionChance  float64   `json:"promotion"`
	StableChance     float64   `json:"stable"`
	DemotionChance   float64   `json:"demotion"`
	TotalMatches     int32     `json:"total_matches"`
	AvgKDA           float64   `json:"avg_kda"`
	WinRate          float64   `json:"win_rate"`
	ConsistencyScore float64   `json:"consistency"`
	Trend            string    `json:"trend"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRuns        int              `json:"total_runs"`
	TotalPredictions int              `json:"total_predictions"`
	LastRunID        string           `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// NewPredictionRecord flattens a prediction into a storable row.
func NewPredictionRecord(runID, source string, recordedAt time.Time, p RankPrediction) PredictionRecord {
	return PredictionRecord{
		RunID:            runID,
		Source:           source,
		RecordedAt:       recordedAt,
		CurrentRank:      p.CurrentRank,
		Tier:             string(p.Tier),
		PredictedChange:  int32(p.Change),
		OverallScore:     p.Score,
		Confidence:       p.Confidence,
		PromotionChance:  p.Probabilities.Promotion,
		StableChance:     p.Probabilities.Stable,
		DemotionChance:   p.Probabilities.Demotion,
		TotalMatches:     int32(p.Summary.TotalMatches),
		AvgKDA:           p.Summary.AvgKDA,
		WinRate:          p.Summary.WinRate,
		ConsistencyScore: p.Summary.Consistency.Score,
		Trend:            string(p.Summary.Trend.Kind),
	}
}
