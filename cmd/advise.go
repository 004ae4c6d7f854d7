package cmd

import (
	"github.com/huangsam/rankcast/internal/batch"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/spf13/cobra"
)

// adviseCmd lists improvement areas per match file.
var adviseCmd = &cobra.Command{
	Use:   "advise <matches.json>...",
	Short: "List prioritized improvement areas from recent matches.",
	Long: `Apply coaching rules to the recent window and list what to work on first.

Rules cover combat efficiency, deaths per match, win rate, consistency,
agent pool depth and a declining trend. Each area carries a priority,
the current value, a target and practical tips.

Examples:
  # Get advice for the last 20 matches
  rankcast advise matches.json

  # Export advice as CSV
  rankcast advise matches.json --output csv --output-file advice.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		results, err := batch.GetAdviceResults(rootCtx, engine, source, args, cfg.Workers)
		if err != nil {
			contract.LogFatal("Cannot derive improvement areas", err)
		}
		if err := writer.WriteAdvice(results, cfg); err != nil {
			contract.LogFatal("Cannot write advice", err)
		}
	},
}
