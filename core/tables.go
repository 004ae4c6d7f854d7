package core

import (
	"maps"
	"strings"
	"unicode"

	"github.com/huangsam/rankcast/schema"
)

// BenchmarkTable is an immutable mapping from tier to expected performance.
type BenchmarkTable struct {
	tiers map[schema.Tier]schema.TierBenchmark
}

// NewBenchmarkTable copies entries over the default table.
func NewBenchmarkTable(entries map[schema.Tier]schema.TierBenchmark) *BenchmarkTable {
	tiers := schema.GetDefaultBenchmarks()
	maps.Copy(tiers, entries)
	return &BenchmarkTable{tiers: tiers}
}

// Lookup returns the benchmark of a tier. Unknown tiers fall back to the
// default tier, and known is false.
func (t *BenchmarkTable) Lookup(tier schema.Tier) (bench schema.TierBenchmark, resolved schema.Tier, known bool) {
	if b, ok := t.tiers[tier]; ok {
		return b, tier, true
	}
	return t.tiers[schema.DefaultTier], schema.DefaultTier, false
}

// Rows returns every benchmark in ascending tier order.
func (t *BenchmarkTable) Rows() []schema.TierBenchmarkRow {
	rows := make([]schema.TierBenchmarkRow, 0, len(schema.AllTiers))
	for _, tier := range schema.AllTiers {
		if b, ok := t.tiers[tier]; ok {
			rows = append(rows, schema.TierBenchmarkRow{Tier: tier, TierBenchmark: b})
		}
	}
	return rows
}

// ExtractTier returns the tier named by a rank such as "gold-2" or "Diamond 1".
// Unknown ranks resolve to the default tier with known set to false.
func ExtractTier(rank string) (tier schema.Tier, known bool) {
	fields := strings.FieldsFunc(strings.ToLower(rank), func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return schema.DefaultTier, false
	}
	tier = schema.Tier(fields[0])
	if _, ok := schema.ValidTiers[tier]; !ok {
		return schema.DefaultTier, false
	}
	return tier, true
}

// pairKey is the order-independent key of two agents.
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	a, b = schema.CanonicalAgent(a), schema.CanonicalAgent(b)
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// SynergyTable is an immutable, symmetric lookup of pairwise agent synergy.
type SynergyTable struct {
	pairs map[pairKey]float64
}

// NewSynergyTable builds a table from pairs. Later entries override earlier ones.
func NewSynergyTable(pairs []schema.SynergyPair) *SynergyTable {
	table := &SynergyTable{pairs: make(map[pairKey]float64, len(pairs))}
	for _, p := range pairs {
		table.pairs[newPairKey(p.A, p.B)] = p.Score
	}
	return table
}

// Lookup returns the synergy of two agents in either order.
func (t *SynergyTable) Lookup(a, b string) (float64, bool) {
	score, ok := t.pairs[newPairKey(a, b)]
	return score, ok
}

// Len returns the number of distinct pairs.
func (t *SynergyTable) Len() int {
	return len(t.pairs)
}

// RoleTaxonomy is an immutable mapping from agent to role.
type RoleTaxonomy struct {
	roles map[string]schema.Role
}

// NewRoleTaxonomy builds a case-insensitive taxonomy from roles.
func NewRoleTaxonomy(roles map[string]schema.Role) *RoleTaxonomy {
	taxonomy := &RoleTaxonomy{roles: make(map[string]schema.Role, len(roles))}
	for agent, role := range roles {
		taxonomy.roles[schema.CanonicalAgent(agent)] = role
	}
	return taxonomy
}

// Role returns the role of an agent, or UnknownRole when it is not in the taxonomy.
func (t *RoleTaxonomy) Role(agent string) (schema.Role, bool) {
	role, ok := t.roles[schema.CanonicalAgent(agent)]
	if !ok {
		return schema.UnknownRole, false
	}
	return role, true
}
