package cmd

import (
	"github.com/huangsam/rankcast/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the rankcast MCP server",
	Long:    `Launch an MCP server on stdio that lets AI agents summarize matches, predict ranks, suggest improvements and score team synergy.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, source, historyStore(), logger)
	},
}
