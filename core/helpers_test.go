package core

import (
	"time"

	"github.com/huangsam/rankcast/schema"
)

// match builds a valid record with the given counters and result.
func match(kills, deaths, assists int, result schema.MatchResult) schema.MatchRecord {
	return schema.MatchRecord{
		Kills:   schema.IntPtr(kills),
		Deaths:  schema.IntPtr(deaths),
		Assists: schema.IntPtr(assists),
		Score:   200,
		AgentID: "Jett",
		Result:  result,
	}
}

// repeatMatch returns n copies of r.
func repeatMatch(n int, r schema.MatchRecord) []schema.MatchRecord {
	out := make([]schema.MatchRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// kdaSeries returns one win per KDA value, with deaths fixed at 1.
func kdaSeries(kdas ...int) []schema.MatchRecord {
	out := make([]schema.MatchRecord, len(kdas))
	for i, k := range kdas {
		out[i] = match(k, 1, 0, schema.WinResult)
	}
	return out
}

// stamped returns r with the given timestamp offset from a fixed base.
func stamped(r schema.MatchRecord, offset time.Duration) schema.MatchRecord {
	r.Timestamp = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset)
	return r
}
