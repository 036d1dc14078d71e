package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/covgate/covgate/core"
	"github.com/covgate/covgate/internal/contract"
	"github.com/covgate/covgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

func (h *toolHandler) handleEvaluateCoverage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ReportPath = request.GetString("report_path", "")
	if f := request.GetString("format", ""); f != "" {
		cfg.Format = schema.ReportFormat(f)
	}

	verdict, err := core.Evaluate(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(verdict, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetComponentCoverage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ReportPath = request.GetString("report_path", "")
	component := request.GetString("component", "")
	if f := request.GetString("format", ""); f != "" {
		cfg.Format = schema.ReportFormat(f)
	}

	verdict, err := core.Evaluate(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	for _, comp := range verdict.Components {
		if comp.Name == component {
			jsonData, _ := json.MarshalIndent(comp, "", "  ")
			return mcp.NewToolResultText(string(jsonData)), nil
		}
	}

	return mcp.NewToolResultError(fmt.Sprintf("component %q not found in report %q", component, cfg.ReportPath)), nil
}

func (h *toolHandler) handleGetGateHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("history tracking is disabled; set --history-backend to record runs"), nil
	}

	limit := request.GetInt("limit", contract.DefaultResultLimit)
	if limit <= 0 || limit > contract.MaxResultLimit {
		limit = contract.DefaultResultLimit
	}

	runs, err := h.store.GetRecentRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load gate history: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
