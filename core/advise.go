package core

import (
	"fmt"

	"github.com/huangsam/rankcast/schema"
)

// Advisor thresholds.
const (
	lowKDA         = 1.0
	lowWinRate     = 45.0
	lowConsistency = 60.0
)

// ImprovementAreas summarizes matches and returns rule-based advice.
// The result is never empty.
func (e *Engine) ImprovementAreas(matches []schema.MatchRecord) []schema.ImprovementArea {
	return advise(e.summarize(e.normalize(matches)))
}

// advise applies each rule independently to the summary.
func advise(s schema.PerformanceSummary) []schema.ImprovementArea {
	if s.IsEmpty() {
		return []schema.ImprovementArea{{
			Category: schema.DataArea,
			Area:     "Insufficient data",
			Current:  "0 matches",
			Target:   fmt.Sprintf("need ≥%d matches", schema.MinRecommendedMatches),
			Priority: schema.HighPriority,
			Tips:     []string{"Play more ranked matches before reading too much into the numbers"},
		}}
	}

	var areas []schema.ImprovementArea
	if s.AvgKDA < lowKDA {
		areas = append(areas, schema.ImprovementArea{
			Category: schema.SurvivabilityArea,
			Area:     "Improve survivability",
			Current:  fmt.Sprintf("KDA %.2f", s.AvgKDA),
			Target:   "KDA 1.2+",
			Priority: schema.HighPriority,
			Tips: []string{
				"Hold safer positions",
				"Move with your team",
				"Avoid risky duels",
			},
		})
	}
	if s.WinRate < lowWinRate {
		areas = append(areas, schema.ImprovementArea{
			Category: schema.TeamplayArea,
			Area:     "Strengthen team play",
			Current:  fmt.Sprintf("win rate %.1f%%", s.WinRate),
			Target:   "win rate 55%+",
			Priority: schema.HighPriority,
			Tips: []string{
				"Communicate more with your team",
				"Play around objectives",
				"Support your teammates' plays",
			},
		})
	}
	if s.Consistency.Score < lowConsistency {
		areas = append(areas, schema.ImprovementArea{
			Category: schema.ConsistencyArea,
			Area:     "Improve consistency",
			Current:  fmt.Sprintf("consistency %.1f", s.Consistency.Score),
			Target:   "75+ consistency",
			Priority: schema.MediumPriority,
			Tips: []string{
				"Keep a steady warm-up routine",
				"Stick to a small agent pool",
				"Review your losses",
			},
		})
	}

	if len(areas) == 0 {
		areas = append(areas, schema.ImprovementArea{
			Category: schema.MaintainArea,
			Area:     "Maintain current level",
			Current:  fmt.Sprintf("KDA %.2f, win rate %.1f%%", s.AvgKDA, s.WinRate),
			Target:   "keep it up",
			Priority: schema.LowPriority,
			Tips:     []string{"Try a new agent or role to broaden your pool"},
		})
	}
	return areas
}
