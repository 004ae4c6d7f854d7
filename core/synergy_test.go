package core

import (
	"testing"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamSynergyPairs(t *testing.T) {
	e := DefaultEngine()

	tests := []struct {
		name   string
		roster schema.Roster
		avg    float64
		rating string
	}{
		{"listed pair", schema.Roster{"Jett", "Sage"}, 0.85, "excellent"},
		{"reverse order", schema.Roster{"Sage", "Jett"}, 0.85, "excellent"},
		{"case insensitive", schema.Roster{"jett", "SAGE"}, 0.85, "excellent"},
		{"unlisted pair", schema.Roster{"Viper", "Killjoy"}, 0.5, "fair"},
		{"unknown agents", schema.Roster{"Nobody", "Someone"}, 0.5, "fair"},
		{"duplicates", schema.Roster{"Jett", "Jett"}, 0.5, "fair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.TeamSynergy(tt.roster)
			require.NotNil(t, r.AverageSynergy)
			require.NotNil(t, r.Score)
			assert.InDelta(t, tt.avg, *r.AverageSynergy, 1e-9)
			assert.InDelta(t, tt.avg*100, *r.Score, 1e-9)
			assert.Equal(t, tt.rating, r.Rating)
			assert.Equal(t, schema.OkOutcome, r.Outcome)
			assert.Len(t, r.Pairs, 1)
		})
	}
}

func TestTeamSynergyUnlistedPairIsExactlyHalf(t *testing.T) {
	r := DefaultEngine().TeamSynergy(schema.Roster{"Viper", "Killjoy"})
	require.Len(t, r.Pairs, 1)
	assert.Equal(t, 0.5, r.Pairs[0].Score)
	assert.True(t, r.Pairs[0].Default)
}

func TestTeamSynergySmallRoster(t *testing.T) {
	e := DefaultEngine()
	for _, roster := range []schema.Roster{nil, {}, {"Jett"}} {
		r := e.TeamSynergy(roster)
		assert.Nil(t, r.AverageSynergy)
		assert.Nil(t, r.Score)
		assert.Equal(t, schema.InsufficientOutcome, r.Outcome)
		assert.Empty(t, r.Pairs)
	}

	empty := e.TeamSynergy(nil)
	assert.Equal(t, 0.0, empty.BalanceScore)
	assert.Equal(t, []string{"select agents to analyze"}, empty.Recommendations)
}

func TestTeamSynergyFullRoster(t *testing.T) {
	r := DefaultEngine().TeamSynergy(schema.Roster{"Jett", "Sage", "Sova", "Omen", "Raze"})

	assert.Equal(t, 5, r.Size)
	assert.Len(t, r.Pairs, 10)
	require.NotNil(t, r.AverageSynergy)
	assert.InDelta(t, 0.695, *r.AverageSynergy, 1e-9)
	assert.Equal(t, "good", r.Rating)
	assert.Empty(t, r.UnknownAgents)

	want := []schema.RoleCount{
		{Role: schema.DuelistRole, Count: 2, Optimal: 2, Percentage: 40},
		{Role: schema.ControllerRole, Count: 1, Optimal: 1, Percentage: 20},
		{Role: schema.InitiatorRole, Count: 1, Optimal: 1, Percentage: 20},
		{Role: schema.SentinelRole, Count: 1, Optimal: 1, Percentage: 20},
	}
	assert.Equal(t, want, r.Roles)
	assert.Equal(t, 100.0, r.BalanceScore)
	assert.Equal(t, []string{"balanced team composition"}, r.Recommendations)
}

func TestTeamSynergyBalance(t *testing.T) {
	e := DefaultEngine()

	t.Run("stacked duelists", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Reyna", "Raze"})
		// duelist off by two, three roles off by one.
		assert.Equal(t, 25.0, r.BalanceScore)
		assert.Equal(t, []string{"add 2 more agents"}, r.Recommendations)
	})

	t.Run("missing roles named", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Reyna", "Raze", "Neon", "Sage"})
		assert.Equal(t, []string{"missing role: controller", "missing role: initiator"}, r.Recommendations)
		assert.Equal(t, 40.0, r.BalanceScore)
	})

	t.Run("unknown agents not counted", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Tejo"})
		assert.Equal(t, []string{"Tejo"}, r.UnknownAgents)
		total := 0
		for _, rc := range r.Roles {
			total += rc.Count
		}
		assert.Equal(t, 1, total)
		assert.Equal(t, []string{"add 3 more agents", "1 unknown agent not counted toward roles"}, r.Recommendations)
	})

	t.Run("full roster with unknown agent", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Sage", "Sova", "Omen", "Tejo"})
		assert.Equal(t, []string{"1 unknown agent not counted toward roles"}, r.Recommendations)
	})

	t.Run("full roster with unknown agents and a missing role", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Sage", "Omen", "Tejo", "Vyse2"})
		assert.Equal(t, []string{"missing role: initiator", "2 unknown agents not counted toward roles"}, r.Recommendations)
	})

	t.Run("one open slot", func(t *testing.T) {
		r := e.TeamSynergy(schema.Roster{"Jett", "Sage", "Sova", "Omen"})
		assert.Equal(t, []string{"add 1 more agent"}, r.Recommendations)
	})
}

func TestOptimalRoleCount(t *testing.T) {
	tests := []struct {
		role  schema.Role
		total int
		want  int
	}{
		{schema.DuelistRole, 0, 1},
		{schema.DuelistRole, 5, 2},
		{schema.DuelistRole, 10, 2},
		{schema.ControllerRole, 5, 1},
		{schema.SentinelRole, 2, 1},
		{schema.UnknownRole, 5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, optimalRoleCount(tt.role, tt.total), "%s/%d", tt.role, tt.total)
	}
}

func TestTeamSynergyCustomTables(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.SynergyPairs = append(cfg.SynergyPairs, schema.SynergyPair{A: "sage", B: "JETT", Score: 0.4})
	cfg.Roles["Tejo"] = schema.InitiatorRole
	e := NewEngine(cfg, nil)

	r := e.TeamSynergy(schema.Roster{"Jett", "Sage", "Tejo"})
	assert.Equal(t, 0.4, r.Pairs[0].Score)
	assert.Empty(t, r.UnknownAgents)
}

func TestTeamSynergyIsIdempotent(t *testing.T) {
	e := DefaultEngine()
	roster := schema.Roster{"Phoenix", "Omen", "Breach", "Cypher"}
	assert.Equal(t, e.TeamSynergy(roster), e.TeamSynergy(roster))
}

func BenchmarkTeamSynergy(b *testing.B) {
	e := DefaultEngine()
	roster := schema.Roster{"Jett", "Sage", "Sova", "Omen", "Raze"}
	for b.Loop() {
		e.TeamSynergy(roster)
	}
}
