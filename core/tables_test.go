package core

import (
	"testing"

	"github.com/huangsam/rankcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTier(t *testing.T) {
	tests := []struct {
		rank  string
		tier  schema.Tier
		known bool
	}{
		{"gold-2", schema.GoldTier, true},
		{"Diamond 1", schema.DiamondTier, true},
		{"RADIANT", schema.RadiantTier, true},
		{"  iron-1  ", schema.IronTier, true},
		{"ascendant-3", schema.AscendantTier, true},
		{"mythic-3", schema.GoldTier, false},
		{"", schema.GoldTier, false},
		{"-", schema.GoldTier, false},
	}
	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			tier, known := ExtractTier(tt.rank)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestBenchmarkTable(t *testing.T) {
	table := NewBenchmarkTable(map[schema.Tier]schema.TierBenchmark{
		schema.SilverTier: {ExpectedKDA: 1, ExpectedWinRate: 51},
	})

	bench, tier, known := table.Lookup(schema.SilverTier)
	assert.True(t, known)
	assert.Equal(t, schema.SilverTier, tier)
	assert.Equal(t, schema.TierBenchmark{ExpectedKDA: 1, ExpectedWinRate: 51}, bench)

	bench, tier, known = table.Lookup("mythic")
	assert.False(t, known)
	assert.Equal(t, schema.GoldTier, tier)
	assert.Equal(t, 1.05, bench.ExpectedKDA)

	rows := table.Rows()
	require.Len(t, rows, len(schema.AllTiers))
	for i, tier := range schema.AllTiers {
		assert.Equal(t, tier, rows[i].Tier)
	}
	assert.Equal(t, 70.0, rows[len(rows)-1].ExpectedWinRate)
}

func TestBenchmarkDefaultsAscend(t *testing.T) {
	rows := NewBenchmarkTable(nil).Rows()
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].ExpectedKDA, rows[i-1].ExpectedKDA)
		assert.Greater(t, rows[i].ExpectedWinRate, rows[i-1].ExpectedWinRate)
	}
}

func TestSynergyTable(t *testing.T) {
	table := NewSynergyTable(schema.GetDefaultSynergyPairs())
	assert.Equal(t, len(schema.GetDefaultSynergyPairs()), table.Len())

	score, ok := table.Lookup("Sova", "Sage")
	assert.True(t, ok)
	assert.Equal(t, 0.9, score)

	score, ok = table.Lookup(" raze ", "SOVA")
	assert.True(t, ok)
	assert.Equal(t, 0.85, score)

	_, ok = table.Lookup("Viper", "Sage")
	assert.False(t, ok)

	override := NewSynergyTable([]schema.SynergyPair{
		{A: "Jett", B: "Sage", Score: 0.85},
		{A: "Sage", B: "Jett", Score: 0.1},
	})
	assert.Equal(t, 1, override.Len())
	score, _ = override.Lookup("Jett", "Sage")
	assert.Equal(t, 0.1, score)
}

func TestRoleTaxonomy(t *testing.T) {
	roles := NewRoleTaxonomy(schema.GetDefaultRoles())

	role, ok := roles.Role("kay/o")
	assert.True(t, ok)
	assert.Equal(t, schema.InitiatorRole, role)

	role, ok = roles.Role("Tejo")
	assert.False(t, ok)
	assert.Equal(t, schema.UnknownRole, role)
}
