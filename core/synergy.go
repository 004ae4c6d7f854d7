package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/huangsam/rankcast/schema"
)

// balancePenalty is subtracted from the balance score per agent of deviation.
const balancePenalty = 15.0

// TeamSynergy scores a roster by its pairwise synergy and role balance.
// Rosters with fewer than two agents have no average synergy.
func (e *Engine) TeamSynergy(roster schema.Roster) schema.SynergyReport {
	report := schema.SynergyReport{
		Roster:          slices.Clone(roster),
		Size:            len(roster),
		Outcome:         schema.InsufficientOutcome,
		Pairs:           e.pairSynergies(roster),
		UnknownAgents:   []string{},
		Recommendations: []string{},
	}

	if len(report.Pairs) > 0 {
		var total float64
		for _, p := range report.Pairs {
			total += p.Score
		}
		avg := round(total/float64(len(report.Pairs)), 3)
		score := round(avg*100, 1)
		report.AverageSynergy = &avg
		report.Score = &score
		report.Rating = schema.GetSynergyRating(avg)
		report.Outcome = schema.OkOutcome
	}

	counts := make(map[schema.Role]int, len(schema.AllRoles))
	known := 0
	for _, agent := range roster {
		role, ok := e.roles.Role(agent)
		if !ok {
			report.UnknownAgents = append(report.UnknownAgents, agent)
			continue
		}
		counts[role]++
		known++
	}
	if len(report.UnknownAgents) > 0 {
		e.logger.Debugw("agents outside role taxonomy", "agents", report.UnknownAgents)
	}

	report.Roles = roleCounts(counts, known)
	report.BalanceScore = balanceScore(report.Roles, known)
	report.Recommendations = recommendations(counts, len(roster), len(report.UnknownAgents))
	return report
}

// pairSynergies evaluates all C(n,2) pairs in roster order.
func (e *Engine) pairSynergies(roster schema.Roster) []schema.PairSynergy {
	pairs := []schema.PairSynergy{}
	for i := range roster {
		for j := i + 1; j < len(roster); j++ {
			score, ok := e.synergy.Lookup(roster[i], roster[j])
			if !ok {
				score = schema.DefaultPairSynergy
			}
			pairs = append(pairs, schema.PairSynergy{
				A:       roster[i],
				B:       roster[j],
				Score:   score,
				Default: !ok,
			})
		}
	}
	return pairs
}

// optimalRoleCount returns the heuristic count of a role for a team of total agents.
// It is at least one and at most two.
func optimalRoleCount(role schema.Role, total int) int {
	share := schema.GetOptimalRoleShares()[role]
	optimal := min(2, int(math.Floor(float64(total)*share)))
	return max(1, optimal)
}

func roleCounts(counts map[schema.Role]int, total int) []schema.RoleCount {
	roles := make([]schema.RoleCount, 0, len(schema.AllRoles))
	for _, role := range schema.AllRoles {
		rc := schema.RoleCount{
			Role:    role,
			Count:   counts[role],
			Optimal: optimalRoleCount(role, total),
		}
		if total > 0 {
			rc.Percentage = round(float64(rc.Count)/float64(total)*100, 1)
		}
		roles = append(roles, rc)
	}
	return roles
}

// balanceScore penalizes each role's distance from its optimal count.
func balanceScore(roles []schema.RoleCount, total int) float64 {
	if total == 0 {
		return 0
	}
	score := 100.0
	for _, rc := range roles {
		score -= balancePenalty * math.Abs(float64(rc.Count-rc.Optimal))
	}
	return clamp(score, 0, 100)
}

// recommendations suggests open slots by roster size and missing roles for a full
// roster. Agents outside the taxonomy fill a slot but no role, so they get their own note.
func recommendations(counts map[schema.Role]int, size, unknown int) []string {
	if size == 0 {
		return []string{"select agents to analyze"}
	}

	var recs []string
	if size < schema.FullRosterSize {
		recs = append(recs, fmt.Sprintf("add %s", plural(schema.FullRosterSize-size, "more agent")))
	} else {
		for _, role := range []schema.Role{schema.ControllerRole, schema.DuelistRole, schema.InitiatorRole, schema.SentinelRole} {
			if counts[role] == 0 {
				recs = append(recs, fmt.Sprintf("missing role: %s", role))
			}
		}
	}
	if unknown > 0 {
		recs = append(recs, fmt.Sprintf("%s not counted toward roles", plural(unknown, "unknown agent")))
	}
	if len(recs) == 0 {
		return []string{"balanced team composition"}
	}
	return recs
}

// plural formats n with noun, adding an "s" unless n is one.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
