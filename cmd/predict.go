package cmd

import (
	"time"

	"github.com/huangsam/rankcast/internal/batch"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/iocache"
	"github.com/spf13/cobra"
)

// predictCmd predicts the next rank movement per match file.
var predictCmd = &cobra.Command{
	Use:   "predict <matches.json>...",
	Short: "Predict rank movement against the benchmark of the current tier.",
	Long: `Score recent performance and predict whether the next rank update goes up, down or holds.

The rank score weighs average KDA, win rate and consistency. The prediction
compares recent KDA and win rate against the expected values of the tier named
by --rank, and reports promotion, stable and demotion chances.

Unknown ranks are compared against the gold benchmark and marked in the output.
When a history backend is configured, every prediction is recorded.

Examples:
  # Predict from the last 20 matches at Gold 2
  rankcast predict matches.json --rank gold-2

  # Show the score breakdown and benchmark deltas
  rankcast predict matches.json --rank diamond-1 --explain

  # Track predictions over time in SQLite
  rankcast predict matches.json --history-backend sqlite`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		start := time.Now()
		results, err := batch.GetPredictionResults(rootCtx, engine, source, args, cfg.Workers, cfg.CurrentRank)
		if err != nil {
			contract.LogFatal("Cannot predict rank", err)
		}
		duration := time.Since(start)

		if _, err := iocache.RecordPredictionRun(rootCtx, historyStore(), "predict", runParams(), results); err != nil {
			contract.LogWarn("Cannot record prediction history", err)
		}
		if err := writer.WritePredictions(results, cfg, duration); err != nil {
			contract.LogFatal("Cannot write predictions", err)
		}
	},
}
