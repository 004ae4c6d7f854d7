package contract

import (
	"fmt"
	"maps"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/rankcast/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultLogLevel  = "warn"
	DefaultRank      = "gold-2"
	MaxWindow        = 500
	MaxRosterSize    = schema.FullRosterSize
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// WeightsRawInput holds custom rank score weights from the YAML config file.
// Use float64 pointers so that omitted keys keep their defaults.
type WeightsRawInput struct {
	KDA         *float64 `mapstructure:"kda"`
	WinRate     *float64 `mapstructure:"win_rate"`
	Consistency *float64 `mapstructure:"consistency"`
}

// PredictionRawInput holds custom rank predictor parameters from the YAML config file.
type PredictionRawInput struct {
	PromoteAbove  *float64 `mapstructure:"promote_above"`
	DemoteBelow   *float64 `mapstructure:"demote_below"`
	PromotionBase *float64 `mapstructure:"promotion_base"`
	PromotionCap  *float64 `mapstructure:"promotion_cap"`
	DemotionCap   *float64 `mapstructure:"demotion_cap"`
	StableFloor   *float64 `mapstructure:"stable_floor"`
}

// BenchmarkRawInput holds a per-tier benchmark override.
type BenchmarkRawInput struct {
	KDA     *float64 `mapstructure:"kda"`
	WinRate *float64 `mapstructure:"win_rate"`
}

// Config holds the runtime configuration for the analytics engine and CLI.
// This struct remains the "final, validated" config.
type Config struct {
	Window      int
	Workers     int
	CurrentRank string
	Roster      schema.Roster
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	LogLevel    string

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// CustomWeights holds only the weights provided by the user.
	CustomWeights map[schema.WeightKey]float64

	// ComputedWeights is the final weights map, computed from defaults + custom overrides
	ComputedWeights map[schema.WeightKey]float64

	// Prediction holds the thresholds and caps of the rank predictor.
	Prediction schema.PredictionParams

	// Benchmarks is the full tier table, defaults merged with overrides.
	Benchmarks map[schema.Tier]schema.TierBenchmark

	// SynergyPairs is the full synergy table, defaults followed by overrides.
	SynergyPairs []schema.SynergyPair

	// Roles maps agent identifiers to roles, defaults merged with overrides.
	Roles map[string]schema.Role
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Window           int    `mapstructure:"window"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from predictCmd.Flags() ---
	Rank    string `mapstructure:"rank"`
	Explain bool   `mapstructure:"explain"`

	// --- Fields from synergyCmd.Flags() ---
	Roster string `mapstructure:"roster"`

	// --- Custom sections from config file ---
	Weights    WeightsRawInput              `mapstructure:"weights"`
	Prediction PredictionRawInput           `mapstructure:"prediction"`
	Benchmarks map[string]BenchmarkRawInput `mapstructure:"benchmarks"`
	Synergy    []schema.SynergyPair         `mapstructure:"synergy"`
	Roles      map[string]string            `mapstructure:"roles"`
}

// DefaultConfig returns a validated configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	input := &ConfigRawInput{
		Window:         schema.DefaultWindow,
		Workers:        DefaultWorkers,
		Precision:      DefaultPrecision,
		Output:         string(schema.TextOut),
		Color:          "yes",
		LogLevel:       DefaultLogLevel,
		HistoryBackend: string(schema.NoneBackend),
		Rank:           DefaultRank,
	}
	if err := ProcessAndValidate(cfg, input); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Roster != nil {
		clone.Roster = slices.Clone(c.Roster)
	}
	if c.CustomWeights != nil {
		clone.CustomWeights = maps.Clone(c.CustomWeights)
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = maps.Clone(c.ComputedWeights)
	}
	if c.Benchmarks != nil {
		clone.Benchmarks = maps.Clone(c.Benchmarks)
	}
	if c.SynergyPairs != nil {
		clone.SynergyPairs = slices.Clone(c.SynergyPairs)
	}
	if c.Roles != nil {
		clone.Roles = maps.Clone(c.Roles)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processPrediction(cfg, input); err != nil {
		return err
	}
	if err := processBenchmarks(cfg, input); err != nil {
		return err
	}
	if err := processSynergy(cfg, input); err != nil {
		return err
	}
	return processRoles(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.CurrentRank = strings.TrimSpace(input.Rank)
	if cfg.CurrentRank == "" {
		cfg.CurrentRank = DefaultRank
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Window Validation ---
	if input.Window < 1 || input.Window > MaxWindow {
		return fmt.Errorf("window must be between 1 and %d (received %d)", MaxWindow, input.Window)
	}
	cfg.Window = input.Window

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 4. Log Level Validation ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, ok := validLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	// --- 5. Backend Validation ---
	backend := strings.ToLower(strings.TrimSpace(input.HistoryBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// --- 6. Roster Processing ---
	roster, err := ParseRoster(input.Roster)
	if err != nil {
		return err
	}
	cfg.Roster = roster

	return nil
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// ParseRoster splits a comma-separated roster, trimming blanks.
func ParseRoster(s string) (schema.Roster, error) {
	var roster schema.Roster
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			roster = append(roster, trimmed)
		}
	}
	if len(roster) > MaxRosterSize {
		return nil, fmt.Errorf("roster cannot exceed %d agents (received %d)", MaxRosterSize, len(roster))
	}
	return roster, nil
}

// ProcessWeightsRawInput converts WeightsRawInput into a map of the provided weights.
// Weights must be finite and non-negative; they are not required to sum to 1.
func ProcessWeightsRawInput(weights WeightsRawInput) (map[schema.WeightKey]float64, error) {
	result := make(map[schema.WeightKey]float64)
	raw := map[schema.WeightKey]*float64{
		schema.WeightKDA:         weights.KDA,
		schema.WeightWinRate:     weights.WinRate,
		schema.WeightConsistency: weights.Consistency,
	}
	for _, key := range schema.AllWeightKeys {
		v := raw[key]
		if v == nil {
			continue
		}
		if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return nil, fmt.Errorf("custom weight for %s must be a non-negative number, got %v", key, *v)
		}
		result[key] = *v
	}
	return result, nil
}

// processCustomWeights converts the raw input into cfg.CustomWeights and
// computes the final ComputedWeights from defaults plus overrides.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights

	computed := schema.GetDefaultWeights()
	maps.Copy(computed, cfg.CustomWeights)
	cfg.ComputedWeights = computed
	return nil
}

// processPrediction merges predictor overrides into the defaults and validates them.
func processPrediction(cfg *Config, input *ConfigRawInput) error {
	params := schema.GetDefaultPredictionParams()
	raw := input.Prediction

	if raw.PromoteAbove != nil {
		params.PromoteAbove = *raw.PromoteAbove
	}
	if raw.DemoteBelow != nil {
		params.DemoteBelow = *raw.DemoteBelow
	}
	if raw.PromotionBase != nil {
		params.PromotionBase = *raw.PromotionBase
	}
	if raw.PromotionCap != nil {
		params.PromotionCap = *raw.PromotionCap
	}
	if raw.DemotionCap != nil {
		params.DemotionCap = *raw.DemotionCap
	}
	if raw.StableFloor != nil {
		params.StableFloor = *raw.StableFloor
	}

	if params.DemoteBelow > params.PromoteAbove {
		return fmt.Errorf("demote_below (%.2f) cannot be greater than promote_above (%.2f)", params.DemoteBelow, params.PromoteAbove)
	}
	if params.PromotionBase < 0 || params.PromotionBase > 1 {
		return fmt.Errorf("promotion_base must be between 0.0 and 1.0 (received %.2f)", params.PromotionBase)
	}
	for name, v := range map[string]float64{
		"promotion_cap": params.PromotionCap,
		"demotion_cap":  params.DemotionCap,
		"stable_floor":  params.StableFloor,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0.0 and 100.0 (received %.2f)", name, v)
		}
	}

	cfg.Prediction = params
	return nil
}

// processBenchmarks merges per-tier overrides into the default benchmark table.
func processBenchmarks(cfg *Config, input *ConfigRawInput) error {
	table := schema.GetDefaultBenchmarks()
	for name, raw := range input.Benchmarks {
		tier := schema.Tier(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := schema.ValidTiers[tier]; !ok {
			return fmt.Errorf("invalid benchmark tier '%s'", name)
		}
		entry := table[tier]
		if raw.KDA != nil {
			if *raw.KDA <= 0 {
				return fmt.Errorf("benchmark kda for tier %s must be positive (received %.2f)", tier, *raw.KDA)
			}
			entry.ExpectedKDA = *raw.KDA
		}
		if raw.WinRate != nil {
			if *raw.WinRate <= 0 || *raw.WinRate > 100 {
				return fmt.Errorf("benchmark win_rate for tier %s must be in (0, 100] (received %.2f)", tier, *raw.WinRate)
			}
			entry.ExpectedWinRate = *raw.WinRate
		}
		table[tier] = entry
	}
	cfg.Benchmarks = table
	return nil
}

// processSynergy appends user pairs after the default pairs so that they take precedence.
func processSynergy(cfg *Config, input *ConfigRawInput) error {
	pairs := schema.GetDefaultSynergyPairs()
	for i, p := range input.Synergy {
		if strings.TrimSpace(p.A) == "" || strings.TrimSpace(p.B) == "" {
			return fmt.Errorf("synergy entry %d must name two agents", i)
		}
		if p.Score < 0 || p.Score > 1 {
			return fmt.Errorf("synergy for %s+%s must be between 0.0 and 1.0 (received %.2f)", p.A, p.B, p.Score)
		}
		pairs = append(pairs, p)
	}
	cfg.SynergyPairs = pairs
	return nil
}

// processRoles merges agent role overrides into the default taxonomy.
func processRoles(cfg *Config, input *ConfigRawInput) error {
	roles := schema.GetDefaultRoles()
	for agent, roleStr := range input.Roles {
		role := schema.Role(strings.ToLower(strings.TrimSpace(roleStr)))
		if _, ok := schema.ValidRoles[role]; !ok {
			return fmt.Errorf("invalid role '%s' for agent %s. must be duelist, controller, initiator, sentinel", roleStr, agent)
		}
		roles[agent] = role
	}
	cfg.Roles = roles
	return nil
}
