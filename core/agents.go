package core

import (
	"slices"

	"github.com/huangsam/rankcast/schema"
)

// unknownAgent groups matches that carry no agent identifier.
const unknownAgent = "unknown"

type agentTally struct {
	kdas []float64
	wins int
}

// agentPerformance groups the window by agent and ranks agents by efficiency.
func (e *Engine) agentPerformance(window []schema.NormalizedMatch) []schema.AgentPerformance {
	tallies := make(map[string]*agentTally)
	var order []string
	for _, m := range window {
		id := m.AgentID
		if id == "" {
			id = unknownAgent
		}
		t, ok := tallies[id]
		if !ok {
			t = &agentTally{}
			tallies[id] = t
			order = append(order, id)
		}
		t.kdas = append(t.kdas, m.KDA)
		if m.Won() {
			t.wins++
		}
	}

	agents := make([]schema.AgentPerformance, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		n := float64(len(t.kdas))
		avg := mean(t.kdas)
		winFrac := float64(t.wins) / n
		role, _ := e.roles.Role(id)
		agents = append(agents, schema.AgentPerformance{
			AgentID:    id,
			Role:       role,
			Matches:    len(t.kdas),
			AvgKDA:     round(avg, 2),
			WinRate:    round(winFrac*100, 1),
			Efficiency: round(avg*50+winFrac*50, 1),
		})
	}

	slices.SortStableFunc(agents, func(a, b schema.AgentPerformance) int {
		switch {
		case a.Efficiency > b.Efficiency:
			return -1
		case a.Efficiency < b.Efficiency:
			return 1
		default:
			return 0
		}
	})
	return agents
}
