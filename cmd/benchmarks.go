package cmd

import (
	"github.com/huangsam/rankcast/internal/batch"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/outwriter"
	"github.com/huangsam/rankcast/schema"
	"github.com/spf13/cobra"
)

// benchmarksCmd shows the active tier table and formulas.
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks [matches.json]...",
	Short: "Show tier benchmarks and scoring formulas.",
	Long: `Display the active tier benchmark table and the formulas behind each prediction.

The table reflects the defaults merged with any benchmarks: overrides
in .rankcast.yaml. Formulas reflect the configured weights and thresholds.

With match files, each file is also compared against every tier.

Examples:
  # Show the tier table
  rankcast benchmarks

  # See which tier recent matches fit
  rankcast benchmarks matches.json

  # Dump the full model as JSON
  rankcast benchmarks --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		model := outwriter.BuildBenchmarksRenderModel(engine.Benchmarks(), engine.Weights(), engine.PredictionParams())

		var fits []schema.TierFitResult
		if len(args) > 0 {
			var err error
			fits, err = batch.GetTierFitResults(rootCtx, engine, source, args, cfg.Workers)
			if err != nil {
				contract.LogFatal("Cannot compute tier fit", err)
			}
		}
		if err := writer.WriteBenchmarks(model, fits, cfg); err != nil {
			contract.LogFatal("Cannot write benchmarks", err)
		}
	},
}
