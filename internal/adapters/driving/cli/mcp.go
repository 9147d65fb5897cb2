package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server, exposing the advisor to
MCP-compatible AI assistants.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead, for testing with MCP Inspector or remote access.

Examples:
  # Stdio mode (default, for Claude Desktop)
  advisor mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  advisor mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "advisor": {
        "command": "/path/to/advisor",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Advisor: advisorService}, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
