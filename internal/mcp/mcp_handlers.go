package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/rankcast/core"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/iocache"
	"github.com/huangsam/rankcast/internal/loader"
	"github.com/huangsam/rankcast/internal/outwriter"
	"github.com/huangsam/rankcast/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// inlineSource is the source label for matches passed inline.
const inlineSource = "inline"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.MatchSource
	store   contract.HistoryStore
	logger  *zap.SugaredLogger
}

// engine builds an engine for one request, applying the optional window override.
func (h *toolHandler) engine(request mcp.CallToolRequest) (*core.Engine, error) {
	cfg := h.baseCfg.Clone()
	if w := request.GetInt("window", 0); w != 0 {
		if w < 1 || w > contract.MaxWindow {
			return nil, fmt.Errorf("window must be between 1 and %d (received %d)", contract.MaxWindow, w)
		}
		cfg.Window = w
	}
	return core.NewEngine(cfg, h.logger), nil
}

// records resolves the match records of a request from inline JSON or a path.
func (h *toolHandler) records(ctx context.Context, request mcp.CallToolRequest, required bool) (string, []schema.MatchRecord, error) {
	if inline := request.GetString("matches", ""); inline != "" {
		records, skipped, err := loader.ReadJSON(strings.NewReader(inline))
		if err != nil {
			return "", nil, fmt.Errorf("invalid matches: %w", err)
		}
		if skipped > 0 {
			h.logger.Debugw("skipped undecodable match records", "path", inlineSource, "skipped", skipped, "kept", len(records))
		}
		return inlineSource, records, nil
	}
	if path := request.GetString("path", ""); path != "" {
		records, err := h.source.Load(ctx, path)
		if err != nil {
			return "", nil, err
		}
		return path, records, nil
	}
	if required {
		return "", nil, errors.New("either matches or path is required")
	}
	return "", nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := h.engine(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, records, err := h.records(ctx, request, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load matches: %v", err)), nil
	}
	return jsonResult(schema.SummaryResult{Source: source, PerformanceSummary: e.Summarize(records)})
}

func (h *toolHandler) handlePredictRank(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := h.engine(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, records, err := h.records(ctx, request, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load matches: %v", err)), nil
	}

	rank := strings.TrimSpace(request.GetString("rank", ""))
	if rank == "" {
		rank = h.baseCfg.CurrentRank
	}
	prediction := e.PredictRank(records, rank)
	result := schema.PredictionResult{
		Source:         source,
		Label:          schema.GetPlainLabel(prediction.Score),
		RankPrediction: prediction,
	}

	params := map[string]any{"window": e.Window(), "rank": rank}
	if _, err := iocache.RecordPredictionRun(ctx, h.store, "mcp:predict_rank", params, []schema.PredictionResult{result}); err != nil {
		h.logger.Warnw("failed to record prediction history", "source", source, "error", err)
	}
	return jsonResult(result)
}

func (h *toolHandler) handleImprovementAreas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := h.engine(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, records, err := h.records(ctx, request, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load matches: %v", err)), nil
	}
	return jsonResult(schema.AdviceResult{Source: source, Areas: e.ImprovementAreas(records)})
}

func (h *toolHandler) handleTeamSynergy(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roster, err := contract.ParseRoster(request.GetString("roster", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid roster: %v", err)), nil
	}
	e := core.NewEngine(h.baseCfg, h.logger)
	return jsonResult(e.TeamSynergy(roster))
}

// benchmarksResult is the JSON shape of the list_benchmarks tool.
type benchmarksResult struct {
	*schema.BenchmarksRenderModel
	TierFit *schema.TierFitResult `json:"tierFit,omitempty"`
}

func (h *toolHandler) handleListBenchmarks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e := core.NewEngine(h.baseCfg, h.logger)
	rows := e.Benchmarks()
	result := benchmarksResult{
		BenchmarksRenderModel: outwriter.BuildBenchmarksRenderModel(rows, e.Weights(), e.PredictionParams()),
	}

	source, records, err := h.records(ctx, request, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load matches: %v", err)), nil
	}
	if source != "" {
		fits := e.BenchmarkFit(e.Summarize(records))
		result.TierFit = &schema.TierFitResult{Source: source, Fits: schema.EnrichTierFits(fits, rows)}
	}
	return jsonResult(result)
}
