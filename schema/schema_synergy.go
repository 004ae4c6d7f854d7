package schema

// Roster is an ordered selection of agent identifiers. Duplicates pass through.
type Roster []string

// SynergyPair is a symmetric synergy value between two agents, in [0,1].
type SynergyPair struct {
	A     string  `json:"a" mapstructure:"a"`
	B     string  `json:"b" mapstructure:"b"`
	Score float64 `json:"score" mapstructure:"score"`
}

// PairSynergy is one evaluated roster pair.
type PairSynergy struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Score   float64 `json:"score"`
	Default bool    `json:"default"` // true when the pair was not in the table
}

// RoleCount is the tally of one role against its heuristic optimum.
type RoleCount struct {
	Role       Role    `json:"role"`
	Count      int     `json:"count"`
	Optimal    int     `json:"optimal"`
	Percentage float64 `json:"percentage"`
}

// SynergyReport is the output of the team synergy analyzer.
// AverageSynergy and Score are nil for rosters with fewer than two agents.
type SynergyReport struct {
	Roster          Roster        `json:"roster"`
	Size            int           `json:"size"`
	Outcome         Outcome       `json:"outcome"`
	AverageSynergy  *float64      `json:"averageSynergy"`
	Score           *float64      `json:"score"`
	Rating          string        `json:"rating"`
	Pairs           []PairSynergy `json:"pairs"`
	Roles           []RoleCount   `json:"roles"`
	UnknownAgents   []string      `json:"unknownAgents"`
	BalanceScore    float64       `json:"balanceScore"`
	Recommendations []string      `json:"recommendations"`
}
