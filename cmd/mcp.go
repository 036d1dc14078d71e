package cmd

import (
	"github.com/covgate/covgate/internal/history"
	"github.com/covgate/covgate/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Covgate MCP server",
	Long:  `Launch an MCP server that allows AI agents to evaluate coverage reports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The gate config (rules, thresholds) is loaded up front; individual
		// tool calls supply their own report paths.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, history.Manager.Store())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
