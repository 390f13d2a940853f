package cmd

import (
	"github.com/huangsam/gitwrapped/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gitwrapped MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents build wrapped results and list archetypes via standard tools.`,
	// Headers are suppressed inside the tools, since stdio carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, version)
	},
}
