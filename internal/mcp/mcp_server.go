// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewMCPServer initializes and configures the rankcast MCP server without starting it.
// This is exposed for unit testing. The history store may be nil.
func NewMCPServer(baseCfg *contract.Config, source contract.MatchSource, store contract.HistoryStore, logger *zap.SugaredLogger) *server.MCPServer {
	s := server.NewMCPServer(
		"Rankcast Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		store:   store,
		logger:  logger,
	}

	matchArgs := []mcp.ToolOption{
		mcp.WithString("path", mcp.Description("Path to a JSON or CSV match history file.")),
		mcp.WithString("matches", mcp.Description("Inline JSON array of match records. Takes precedence over path.")),
		mcp.WithNumber("window", mcp.Description("Number of most recent matches to consider.")),
	}

	// --- 1. Tool: summarize ---
	s.AddTool(mcp.NewTool("summarize",
		append([]mcp.ToolOption{
			mcp.WithDescription("Summarize recent match performance: KDA statistics, win rate, consistency, trend and per-agent results."),
		}, matchArgs...)...,
	), h.handleSummarize)

	// --- 2. Tool: predict_rank ---
	s.AddTool(mcp.NewTool("predict_rank",
		append([]mcp.ToolOption{
			mcp.WithDescription("Predict the next rank movement from recent matches against a tier benchmark."),
			mcp.WithString("rank", mcp.Description("Current rank, for example 'gold-2'. Defaults to the configured rank.")),
		}, matchArgs...)...,
	), h.handlePredictRank)

	// --- 3. Tool: improvement_areas ---
	s.AddTool(mcp.NewTool("improvement_areas",
		append([]mcp.ToolOption{
			mcp.WithDescription("Suggest prioritized improvement areas from recent matches."),
		}, matchArgs...)...,
	), h.handleImprovementAreas)

	// --- 4. Tool: team_synergy ---
	s.AddTool(mcp.NewTool("team_synergy",
		mcp.WithDescription("Score pairwise agent synergy and role balance of a team roster."),
		mcp.WithString("roster", mcp.Description("Comma-separated agent names, for example 'Jett,Sage,Sova'. An empty roster yields an empty report.")),
	), h.handleTeamSynergy)

	// --- 5. Tool: list_benchmarks ---
	s.AddTool(mcp.NewTool("list_benchmarks",
		mcp.WithDescription("List the tier benchmark table and scoring formulas. With match data, also report the fit against every tier."),
		mcp.WithString("path", mcp.Description("Optional path to a match history file for tier fit.")),
		mcp.WithString("matches", mcp.Description("Optional inline JSON array of match records for tier fit.")),
	), h.handleListBenchmarks)

	return s
}

// StartMCPServer starts the rankcast MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.MatchSource, store contract.HistoryStore, logger *zap.SugaredLogger) error {
	s := NewMCPServer(baseCfg, source, store, logger)
	return server.ServeStdio(s)
}
