package schema

// Custom string types for type safety.
type (
	// Tier represents one of the ordered skill bands.
	Tier string

	// TrendKind represents the classification of a KDA trend.
	TrendKind string

	// Outcome tags a derived value so callers can tell a real measurement
	// from a neutral fallback.
	Outcome string

	// Priority represents the urgency of an improvement area.
	Priority string

	// Role represents an agent role in team composition.
	Role string

	// AreaCategory represents the kind of improvement area.
	AreaCategory string

	// WeightKey represents keys used in the rank score breakdown.
	WeightKey string

	// MatchResult represents the result of a single match.
	MatchResult string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All tiers supported, ascending by skill.
const (
	IronTier      Tier = "iron"
	BronzeTier    Tier = "bronze"
	SilverTier    Tier = "silver"
	GoldTier      Tier = "gold" // fallback
	PlatinumTier  Tier = "platinum"
	DiamondTier   Tier = "diamond"
	AscendantTier Tier = "ascendant"
	ImmortalTier  Tier = "immortal"
	RadiantTier   Tier = "radiant"
)

// DefaultTier is used whenever a tier name is not in the benchmark table.
const DefaultTier = GoldTier

// All trend kinds supported.
const (
	ImprovingTrend    TrendKind = "improving"
	DecliningTrend    TrendKind = "declining"
	StableTrend       TrendKind = "stable"
	InsufficientTrend TrendKind = "insufficient_data"
	UnknownTrend      TrendKind = "unknown"
	NoDataTrend       TrendKind = "no_data"
)

// All outcome tags supported.
const (
	OkOutcome           Outcome = "ok"
	InsufficientOutcome Outcome = "insufficient"
	UnknownOutcome      Outcome = "unknown"
	NoDataOutcome       Outcome = "no_data"
)

// All priorities supported.
const (
	HighPriority   Priority = "high"
	MediumPriority Priority = "medium"
	LowPriority    Priority = "low"
)

// All roles supported.
const (
	DuelistRole    Role = "duelist"
	ControllerRole Role = "controller"
	InitiatorRole  Role = "initiator"
	SentinelRole   Role = "sentinel"
	UnknownRole    Role = "unknown"
)

// All improvement area categories supported.
const (
	SurvivabilityArea AreaCategory = "survivability"
	TeamplayArea      AreaCategory = "teamplay"
	ConsistencyArea   AreaCategory = "consistency"
	MaintainArea      AreaCategory = "maintain"
	DataArea          AreaCategory = "data"
)

// Weight keys used in the rank score.
const (
	WeightKDA         WeightKey = "kda"
	WeightWinRate     WeightKey = "win_rate"
	WeightConsistency WeightKey = "consistency"
)

// All match results supported.
const (
	WinResult  MatchResult = "win"
	LossResult MatchResult = "loss"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// AllTiers lists every tier in ascending order.
var AllTiers = []Tier{
	IronTier, BronzeTier, SilverTier, GoldTier, PlatinumTier,
	DiamondTier, AscendantTier, ImmortalTier, RadiantTier,
}

// AllRoles lists the four counted roles in display order.
var AllRoles = []Role{DuelistRole, ControllerRole, InitiatorRole, SentinelRole}

// AllWeightKeys lists the rank score features in display order.
var AllWeightKeys = []WeightKey{WeightKDA, WeightWinRate, WeightConsistency}

// ValidTiers lists all valid tiers.
var ValidTiers = map[Tier]struct{}{
	IronTier:      {},
	BronzeTier:    {},
	SilverTier:    {},
	GoldTier:      {},
	PlatinumTier:  {},
	DiamondTier:   {},
	AscendantTier: {},
	ImmortalTier:  {},
	RadiantTier:   {},
}

// ValidRoles lists all roles that can be assigned to an agent.
var ValidRoles = map[Role]struct{}{
	DuelistRole:    {},
	ControllerRole: {},
	InitiatorRole:  {},
	SentinelRole:   {},
}

// ValidWeightKeys lists all valid weight keys.
var ValidWeightKeys = map[WeightKey]struct{}{
	WeightKDA:         {},
	WeightWinRate:     {},
	WeightConsistency: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default weight map for the rank score.
func GetDefaultWeights() map[WeightKey]float64 {
	return map[WeightKey]float64{
		WeightKDA:         30.0,
		WeightWinRate:     0.5,
		WeightConsistency: 0.2,
	}
}
