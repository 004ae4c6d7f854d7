package schema

// Quartiles holds the KDA quartiles of a recency window.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// Consistency is the inverse coefficient of variation of KDA, scaled to [0,100].
type Consistency struct {
	Score   float64 `json:"score"`
	Outcome Outcome `json:"outcome"`
}

// Trend is the linear trend of KDA against match index.
type Trend struct {
	Kind       TrendKind `json:"trend"`
	Slope      float64   `json:"slope"`
	R2         float64   `json:"r2"`
	Confidence float64   `json:"confidence"`
	Outcome    Outcome   `json:"outcome"`
}

// AgentPerformance aggregates matches played on a single agent.
type AgentPerformance struct {
	AgentID    string  `json:"agentId"`
	Role       Role    `json:"role"`
	Matches    int     `json:"matches"`
	AvgKDA     float64 `json:"avgKDA"`
	WinRate    float64 `json:"winRate"`
	Efficiency float64 `json:"efficiency"`
}

// PerformanceSummary is recomputed from scratch on every call.
type PerformanceSummary struct {
	TotalMatches int                `json:"totalMatches"`
	Wins         int                `json:"wins"`
	AvgKDA       float64            `json:"avgKDA"`
	MedianKDA    float64            `json:"medianKDA"`
	KDAStdDev    float64            `json:"kdaStdDev"`
	KDAQuartiles Quartiles          `json:"kdaQuartiles"`
	AvgScore     float64            `json:"avgScore"`
	WinRate      float64            `json:"winRate"`
	Consistency  Consistency        `json:"consistency"`
	Trend        Trend              `json:"performanceTrend"`
	Agents       []AgentPerformance `json:"agentPerformance"`
	Reliability  float64            `json:"reliability"`
}

// IsEmpty reports whether the summary was built from no valid matches.
func (s PerformanceSummary) IsEmpty() bool {
	return s.TotalMatches == 0
}
