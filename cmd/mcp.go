package cmd

import (
	"github.com/huangsam/elimu/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the Elimu MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents grade scores, predict performance and build report cards.`,
	PreRunE: rosterSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, store)
	},
}
