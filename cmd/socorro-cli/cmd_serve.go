package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/padenot/socorro-cli/internal/logging"
	mcpserver "github.com/padenot/socorro-cli/internal/mcp"
	"github.com/padenot/socorro-cli/internal/socorro"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Requests per second and burst allowed to the API while serving. One
// agent can issue many tool calls in quick succession.
const (
	serveRate  = 2
	serveBurst = 4
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts a Model Context Protocol server over stdin/stdout exposing the
get_crash and search_crashes tools. Requests to the API are rate limited.

The server monitors for parent process death. When the MCP host disconnects
or restarts, the server self-terminates to prevent orphaned processes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	client, err := newClient(socorro.WithRateLimit(serveRate, serveBurst))
	if err != nil {
		return err
	}

	defaults := mcpserver.DefaultDefaults()
	defaults.Depth = current.depth
	defaults.Product = current.product
	srv := mcpserver.NewServer(client, defaults, version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, mcpserver.DefaultWatchInterval, cancel)

	logging.New("mcp").Info("starting socorro-cli MCP server over stdio (parent watchdog active)", "base_url", client.BaseURL())
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
