package core

import (
	"slices"

	"github.com/huangsam/rankcast/schema"
)

// Normalize validates records, orders them oldest first and keeps the most
// recent window of them. It returns the kept matches and the number of
// records dropped as malformed.
//
// Records are sorted by timestamp only when every valid record has one;
// otherwise the caller's order is taken as chronological.
func Normalize(records []schema.MatchRecord, window int) ([]schema.NormalizedMatch, int) {
	if window <= 0 {
		window = schema.DefaultWindow
	}

	valid := make([]schema.Match, 0, len(records))
	allStamped := true
	for _, r := range records {
		m, ok := validateRecord(r)
		if !ok {
			continue
		}
		if m.Timestamp.IsZero() {
			allStamped = false
		}
		valid = append(valid, m)
	}
	dropped := len(records) - len(valid)

	if allStamped {
		slices.SortStableFunc(valid, func(a, b schema.Match) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	}
	if len(valid) > window {
		valid = valid[len(valid)-window:]
	}

	out := make([]schema.NormalizedMatch, len(valid))
	for i, m := range valid {
		out[i] = schema.NormalizedMatch{Match: m, KDA: m.KDA()}
	}
	return out, dropped
}

// validateRecord converts a raw record into a Match. Records missing a counter
// or carrying a negative one are rejected.
func validateRecord(r schema.MatchRecord) (schema.Match, bool) {
	if r.Kills == nil || r.Deaths == nil || r.Assists == nil {
		return schema.Match{}, false
	}
	if *r.Kills < 0 || *r.Deaths < 0 || *r.Assists < 0 {
		return schema.Match{}, false
	}
	return schema.Match{
		Kills:     *r.Kills,
		Deaths:    *r.Deaths,
		Assists:   *r.Assists,
		Score:     r.Score,
		AgentID:   r.AgentID,
		MapID:     r.MapID,
		GameMode:  r.GameMode,
		Result:    r.Result,
		Timestamp: r.Timestamp,
	}, true
}

// normalize wraps Normalize with the engine window and logs dropped records.
func (e *Engine) normalize(records []schema.MatchRecord) []schema.NormalizedMatch {
	matches, dropped := Normalize(records, e.window)
	if dropped > 0 {
		e.logger.Debugw("dropped malformed match records", "dropped", dropped, "total", len(records))
	}
	return matches
}
