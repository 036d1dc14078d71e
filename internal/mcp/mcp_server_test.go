package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/covgate/covgate/internal/contract"
	mcp_internal "github.com/covgate/covgate/internal/mcp"
	"github.com/covgate/covgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportJSON = `[
  {"filename": "adapters/bitcoin/htlc.rs", "lines_valid": 100, "lines_covered": 95},
  {"filename": "adapters/ethereum/bridge.rs", "lines_valid": 100, "lines_covered": 70}
]`

func baseTestConfig() *contract.Config {
	return &contract.Config{
		Format: schema.JSONFormat,
		Rules: []schema.ComponentRule{
			{Name: "bitcoin", Pattern: "adapters/bitcoin/", Tier: schema.CriticalTier, Priority: 5},
			{Name: "adapters", Pattern: "adapters/", Tier: schema.StandardTier, Priority: 20},
		},
		Policy:      schema.DefaultTierPolicy(),
		Workers:     2,
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
	}
}

func writeTestReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverage.json")
	require.NoError(t, os.WriteFile(path, []byte(reportJSON), 0o644))
	return path
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := baseTestConfig()
	reportPath := writeTestReport(t)

	// No history store wired; history lookups should report it as disabled
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	ctx := context.Background()

	t.Run("evaluate_coverage returns verdict", func(t *testing.T) {
		tool := s.GetTool("evaluate_coverage")
		require.NotNil(t, tool, "Tool evaluate_coverage should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "evaluate_coverage",
				Arguments: map[string]any{
					"report_path": reportPath,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		require.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"overall_status": "fail"`)
		assert.Contains(t, text, `"name": "adapters"`)
		assert.Contains(t, text, `"name": "bitcoin"`)
	})

	t.Run("evaluate_coverage missing report", func(t *testing.T) {
		tool := s.GetTool("evaluate_coverage")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "evaluate_coverage",
				Arguments: map[string]any{
					"report_path": filepath.Join(t.TempDir(), "missing.json"),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "evaluation failed")
	})

	t.Run("get_component_coverage finds component", func(t *testing.T) {
		tool := s.GetTool("get_component_coverage")
		require.NotNil(t, tool, "Tool get_component_coverage should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_component_coverage",
				Arguments: map[string]any{
					"report_path": reportPath,
					"component":   "bitcoin",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"name": "bitcoin"`)
		assert.Contains(t, text, `"tier": "critical"`)
		assert.Contains(t, text, `"status": "pass"`)
	})

	t.Run("get_component_coverage unknown component", func(t *testing.T) {
		tool := s.GetTool("get_component_coverage")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_component_coverage",
				Arguments: map[string]any{
					"report_path": reportPath,
					"component":   "solana",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `component "solana" not found`)
	})

	t.Run("get_gate_history without store", func(t *testing.T) {
		tool := s.GetTool("get_gate_history")
		require.NotNil(t, tool, "Tool get_gate_history should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_gate_history",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history tracking is disabled")
	})
}

func TestMCPServerDoesNotMutateBaseConfig(t *testing.T) {
	baseCfg := baseTestConfig()
	reportPath := writeTestReport(t)

	s := mcp_internal.NewMCPServer(baseCfg, nil)
	tool := s.GetTool("evaluate_coverage")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "evaluate_coverage",
			Arguments: map[string]any{
				"report_path": reportPath,
				"format":      "json",
			},
		},
	}

	_, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)

	// Per-request settings land on a clone, never the shared base config
	assert.Empty(t, baseCfg.ReportPath)
}
