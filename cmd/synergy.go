package cmd

import (
	"strings"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/spf13/cobra"
)

// synergyCmd scores a team roster.
var synergyCmd = &cobra.Command{
	Use:   "synergy [agent]...",
	Short: "Score pairwise synergy and role balance of a team roster.",
	Long: `Analyze a team composition of up to five agents.

Reports:
- Synergy of every agent pair (unlisted pairs score 0.5)
- Average synergy and its rating
- Role distribution against the optimal spread
- Recommendations for missing roles or open slots

Agents are case-insensitive. Pass them as arguments or with --roster.
Without agents the report is empty and asks for a selection.

Examples:
  # Score a full team
  rankcast synergy Jett Sage Sova Omen Killjoy

  # Same roster as a flag
  rankcast synergy --roster "Jett,Sage,Sova,Omen,Killjoy"`,
	Args: cobra.MaximumNArgs(contract.MaxRosterSize),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, func(in *contract.ConfigRawInput) {
			if len(args) > 0 {
				in.Roster = strings.Join(args, ",")
			}
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		report := engine.TeamSynergy(cfg.Roster)
		if err := writer.WriteSynergy(report, cfg); err != nil {
			contract.LogFatal("Cannot write synergy report", err)
		}
	},
}
