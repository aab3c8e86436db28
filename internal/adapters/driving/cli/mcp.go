package cli

import (
	"github.com/spf13/cobra"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server, exposing document
ingestion and question answering as tools for AI assistants.

By default the server communicates over stdio using JSON-RPC and can
be used with Claude Desktop and other MCP-compatible assistants.

Use --http to serve over HTTP instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access

Examples:
  # Stdio mode (default, for Claude Desktop)
  citewise mcp

  # HTTP mode (for MCP Inspector, remote access)
  citewise mcp --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "citewise": {
        "command": "/path/to/citewise",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ingest := ingestService
	answer := answerService
	if ingest == nil || answer == nil {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()
		ingest = sess.newIngestService()
		answer = sess.newAnswerService()
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Ingest: ingest,
		Answer: answer,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on %s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
