// ABOUTME: MCP server command implementation for chirp.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/chirpsearch/chirp/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server (stdio mode)",
		Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, exposing tweet search, reply,
and timeline tools through a standardized protocol.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := newApp()
	if err != nil {
		return err
	}

	server, err := mcppkg.NewServer(app.engine)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
