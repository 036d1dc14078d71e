// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/covgate/covgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Covgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Covgate Coverage Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: evaluate_coverage ---
	s.AddTool(mcp.NewTool("evaluate_coverage",
		mcp.WithDescription("Evaluate a coverage report against the configured component thresholds and return the full verdict."),
		mcp.WithString("report_path", mcp.Description("Path to the coverage report file."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Report format (cobertura, json). Defaults to the configured format."), mcp.Enum("cobertura", "json")),
	), h.handleEvaluateCoverage)

	// --- 2. Tool: get_component_coverage ---
	s.AddTool(mcp.NewTool("get_component_coverage",
		mcp.WithDescription("Evaluate a coverage report and return the result for a single component."),
		mcp.WithString("report_path", mcp.Description("Path to the coverage report file."), mcp.Required()),
		mcp.WithString("component", mcp.Description("Name of the component to look up."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Report format (cobertura, json)."), mcp.Enum("cobertura", "json")),
	), h.handleGetComponentCoverage)

	// --- 3. Tool: get_gate_history ---
	s.AddTool(mcp.NewTool("get_gate_history",
		mcp.WithDescription("Return recent coverage gate runs from the verdict history, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleGetGateHistory)

	return s
}

// StartMCPServer starts the Covgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
