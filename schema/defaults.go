package schema

// Default engine parameters.
const (
	DefaultWindow           = 20   // most recent matches considered
	DefaultPairSynergy      = 0.5  // synergy of a pair missing from the table
	MinRecommendedMatches   = 10   // advisor placeholder target
	MinConsistencyMatches   = 3    // below this, consistency is neutral
	MinTrendMatches         = 5    // below this, the trend is insufficient
	NeutralConsistency      = 50.0 // consistency reported without enough data
	TrendSlopeThreshold     = 0.05
	TrendConfidenceScale    = 500.0
	FullRosterSize          = 5
	TierFitKDATolerance     = 0.2
	TierFitWinRateTolerance = 5.0
)

// GetDefaultBenchmarks returns the expected KDA and win rate for every tier.
func GetDefaultBenchmarks() map[Tier]TierBenchmark {
	return map[Tier]TierBenchmark{
		IronTier:      {ExpectedKDA: 0.75, ExpectedWinRate: 45},
		BronzeTier:    {ExpectedKDA: 0.85, ExpectedWinRate: 48},
		SilverTier:    {ExpectedKDA: 0.95, ExpectedWinRate: 50},
		GoldTier:      {ExpectedKDA: 1.05, ExpectedWinRate: 52},
		PlatinumTier:  {ExpectedKDA: 1.15, ExpectedWinRate: 55},
		DiamondTier:   {ExpectedKDA: 1.25, ExpectedWinRate: 58},
		AscendantTier: {ExpectedKDA: 1.35, ExpectedWinRate: 62},
		ImmortalTier:  {ExpectedKDA: 1.45, ExpectedWinRate: 65},
		RadiantTier:   {ExpectedKDA: 1.55, ExpectedWinRate: 70},
	}
}

// GetDefaultSynergyPairs returns the known pairwise synergy values.
func GetDefaultSynergyPairs() []SynergyPair {
	return []SynergyPair{
		{A: "Jett", B: "Sage", Score: 0.85},
		{A: "Jett", B: "Sova", Score: 0.80},
		{A: "Jett", B: "Omen", Score: 0.75},
		{A: "Jett", B: "Cypher", Score: 0.70},
		{A: "Reyna", B: "Sage", Score: 0.75},
		{A: "Reyna", B: "Sova", Score: 0.85},
		{A: "Reyna", B: "Omen", Score: 0.80},
		{A: "Reyna", B: "Breach", Score: 0.75},
		{A: "Phoenix", B: "Sage", Score: 0.80},
		{A: "Phoenix", B: "Cypher", Score: 0.75},
		{A: "Phoenix", B: "Omen", Score: 0.85},
		{A: "Phoenix", B: "Breach", Score: 0.70},
		{A: "Sage", B: "Sova", Score: 0.90},
		{A: "Sage", B: "Omen", Score: 0.80},
		{A: "Sova", B: "Raze", Score: 0.85},
	}
}

// GetDefaultRoles returns the role of every known agent.
func GetDefaultRoles() map[string]Role {
	roles := make(map[string]Role)
	for role, agents := range map[Role][]string{
		DuelistRole:    {"Jett", "Reyna", "Phoenix", "Raze", "Yoru", "Neon", "Iso"},
		InitiatorRole:  {"Sova", "Breach", "Skye", "KAY/O", "Fade", "Gekko"},
		ControllerRole: {"Omen", "Viper", "Astra", "Harbor", "Clove"},
		SentinelRole:   {"Sage", "Cypher", "Killjoy", "Chamber", "Deadlock"},
	} {
		for _, agent := range agents {
			roles[agent] = role
		}
	}
	return roles
}

// GetOptimalRoleShares returns the fraction of a roster each role should fill.
func GetOptimalRoleShares() map[Role]float64 {
	return map[Role]float64{
		DuelistRole:    0.4,
		ControllerRole: 0.3,
		InitiatorRole:  0.2,
		SentinelRole:   0.2,
	}
}

// PredictionParams holds the tunable thresholds and caps of the rank predictor.
type PredictionParams struct {
	PromoteAbove  float64 `json:"promoteAbove"`
	DemoteBelow   float64 `json:"demoteBelow"`
	PromotionBase float64 `json:"promotionBase"`
	PromotionCap  float64 `json:"promotionCap"`
	DemotionCap   float64 `json:"demotionCap"`
	StableFloor   float64 `json:"stableFloor"`
}

// GetDefaultPredictionParams returns the stock predictor parameters.
func GetDefaultPredictionParams() PredictionParams {
	return PredictionParams{
		PromoteAbove:  65,
		DemoteBelow:   35,
		PromotionBase: 0.3,
		PromotionCap:  85,
		DemotionCap:   75,
		StableFloor:   10,
	}
}
