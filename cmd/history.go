package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/iocache"
	"github.com/huangsam/rankcast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd focuses on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded prediction history",
	Long: `Manage the run history recorded by predict when a history backend is set.

Each run stores its configuration, timing and match count. Each prediction
stores the tier, score, confidence, probabilities and summary statistics.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  list    - Show the latest stored predictions
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check history status
  rankcast history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  rankcast history export --history-backend sqlite --output-file history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, connection state, run and prediction counts,
the last and oldest run, and the size of each table.

Examples:
  rankcast history status --history-backend sqlite
  rankcast history status --history-backend sqlite --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := writer.WriteHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write history status", err)
		}
	},
}

// historyListCmd shows stored predictions.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the latest stored predictions",
	Long: `List stored predictions, newest first.

Examples:
  rankcast history list --history-backend sqlite --limit 10
  rankcast history list --history-backend sqlite --limit 0 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := historyStore().ListPredictions(rootCtx, viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list history", err)
		}
		if err := writer.WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to write history", err)
		}
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet files",
	Long: `Write every stored run and prediction to Parquet.

Two files are created from --output-file:
  <output-file>.runs.parquet
  <output-file>.predictions.parquet

The files can be read by DuckDB, pandas (via pyarrow), Spark or Arrow.

Examples:
  rankcast history export --history-backend sqlite --output-file history`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(rootCtx, historyStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded history",
	Long: `Delete every stored run and prediction.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  rankcast history export --history-backend sqlite --output-file backup
  rankcast history clear --history-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.HistoryBackend == schema.NoneBackend {
			fmt.Println("History is disabled. Nothing to clear.")
			return
		}
		if err := historyStore().Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs schema migrations.
//
// Note: this command skips store initialization so that migrations can run
// against a fresh database.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history database schema migrations",
	Long: `Apply or roll back the history schema with embedded SQL migrations.

--target-version -1 migrates to the latest version, 0 rolls back every
migration, and any positive value migrates to that version.

Examples:
  rankcast history migrate --history-backend sqlite
  rankcast history migrate --history-backend postgresql --history-db-connect "host=... dbname=..." --target-version 1`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return resolveConfig(nil)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateHistory(rootCtx, cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
	},
}
