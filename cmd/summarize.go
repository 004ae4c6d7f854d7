package cmd

import (
	"time"

	"github.com/huangsam/rankcast/internal/batch"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/spf13/cobra"
)

// summarizeCmd summarizes recent performance per match file.
var summarizeCmd = &cobra.Command{
	Use:   "summarize <matches.json>...",
	Short: "Summarize recent performance for each match history file.",
	Long: `Compute descriptive statistics over the most recent matches of each file.

Reports:
- Average, median, spread and quartiles of KDA
- Win rate and average combat score
- Consistency (inverse coefficient of variation of KDA)
- Performance trend from a least squares fit over match order
- Per-agent KDA, win rate and efficiency

Files may be JSON (an array or {"matches": [...]}) or CSV with a header row.

Examples:
  # Summarize the last 20 matches
  rankcast summarize matches.json

  # Compare two players over a longer window
  rankcast summarize alice.json bob.csv --window 50

  # Export to Parquet for notebooks
  rankcast summarize matches.json --output parquet --output-file summary.parquet`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		start := time.Now()
		results, err := batch.GetSummaryResults(rootCtx, engine, source, args, cfg.Workers)
		if err != nil {
			contract.LogFatal("Cannot summarize matches", err)
		}
		if err := writer.WriteSummaries(results, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write summary", err)
		}
	},
}
