package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MatchRecord is one completed match as supplied by a collaborator.
// A nil counter marks the record as malformed; the normalizer drops it.
type MatchRecord struct {
	Kills     *int        `json:"kills"`
	Deaths    *int        `json:"deaths"`
	Assists   *int        `json:"assists"`
	Score     float64     `json:"score"`
	AgentID   string      `json:"agentId"`
	MapID     string      `json:"mapId"`
	GameMode  string      `json:"gameMode"`
	Result    MatchResult `json:"result"`
	Timestamp time.Time   `json:"timestamp"`
}

// Match is a validated match record. Every statistic is computed from this type.
type Match struct {
	Kills     int         `json:"kills"`
	Deaths    int         `json:"deaths"`
	Assists   int         `json:"assists"`
	Score     float64     `json:"score"`
	AgentID   string      `json:"agentId"`
	MapID     string      `json:"mapId"`
	GameMode  string      `json:"gameMode"`
	Result    MatchResult `json:"result"`
	Timestamp time.Time   `json:"timestamp"`
}

// KDA returns (kills + assists) / max(deaths, 1).
func (m Match) KDA() float64 {
	return (float64(m.Kills) + float64(m.Assists)) / float64(max(m.Deaths, 1))
}

// Won reports whether the match was a win.
func (m Match) Won() bool {
	return m.Result == WinResult
}

// NormalizedMatch pairs a validated match with its derived KDA.
type NormalizedMatch struct {
	Match
	KDA float64 `json:"kda"`
}

// ParseMatchResult converts common result spellings into a MatchResult.
func ParseMatchResult(s string) (MatchResult, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "won", "victory", "w":
		return WinResult, nil
	case "loss", "lose", "lost", "defeat", "l":
		return LossResult, nil
	default:
		return "", fmt.Errorf("invalid match result %q (expected win/loss)", s)
	}
}

// UnmarshalJSON accepts any spelling known to ParseMatchResult.
// Unrecognized values decode to an empty result, which counts as a non-win.
func (r *MatchResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMatchResult(s)
	if err != nil {
		*r = ""
		return nil
	}
	*r = parsed
	return nil
}

// IntPtr returns a pointer to v. It keeps record literals short.
func IntPtr(v int) *int {
	return &v
}
