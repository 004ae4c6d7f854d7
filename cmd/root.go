package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/rankcast/core"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/iocache"
	"github.com/huangsam/rankcast/internal/loader"
	"github.com/huangsam/rankcast/internal/logging"
	"github.com/huangsam/rankcast/internal/outwriter"
	"github.com/huangsam/rankcast/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// Runtime dependencies built by sharedSetup.
var (
	logger = logging.Nop()
	engine *core.Engine
	source contract.MatchSource
	writer = outwriter.NewOutWriter()
)

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "rankcast",
	Short:              "Predict competitive rank movement from recent match history.",
	Long:               `Rankcast turns recent match history into performance summaries, rank predictions and coaching advice.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine
	_ = godotenv.Load()

	configureConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("RANKCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("window", schema.DefaultWindow)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("rank", contract.DefaultRank)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// configureConfigFile points viper at --config or the default .rankcast.yaml locations.
func configureConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".rankcast") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// loadConfigFile reads the config file if present.
func loadConfigFile() error {
	configureConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// resolveConfig merges file, env and flags into input and validates it into cfg.
// The mutate hook runs before validation to apply positional arguments.
func resolveConfig(mutate func(*contract.ConfigRawInput)) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if mutate != nil {
		mutate(input)
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	color.NoColor = !cfg.UseColors

	l, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	engine = core.NewEngine(cfg, logger)
	source = loader.NewFileSource(logger)
	return nil
}

// sharedSetup resolves config and initializes the history store.
func sharedSetup(ctx context.Context, mutate func(*contract.ConfigRawInput)) error {
	if err := resolveConfig(mutate); err != nil {
		return err
	}
	if err := iocache.InitHistory(ctx, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(_ *cobra.Command, _ []string) error {
	return sharedSetup(rootCtx, nil)
}

// historyStore returns the initialized history store, or nil before setup.
func historyStore() contract.HistoryStore {
	return iocache.Manager.GetHistoryStore()
}

// runParams captures the configuration recorded with every history run.
func runParams() map[string]any {
	return map[string]any{
		"window":  cfg.Window,
		"rank":    cfg.CurrentRank,
		"workers": cfg.Workers,
		"weights": cfg.ComputedWeights,
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Shutdown flushes the logger and closes the history store.
func Shutdown() {
	iocache.CloseHistory()
	_ = logger.Sync()
}
