// ABOUTME: MCP server initialization for chirp.
// ABOUTME: Exposes search, replies, and timeline tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chirpsearch/chirp/internal/engine"
	"github.com/chirpsearch/chirp/internal/models"
)

// Querier is the query surface the tools call; *engine.Engine implements it.
type Querier interface {
	Search(ctx context.Context, query string, opts engine.SearchOptions) (models.Result, error)
	Replies(ctx context.Context, parentID string, limit int) (models.Result, error)
	UserTimeline(ctx context.Context, username string, limit int) (models.Result, error)
	DemoMode() bool
}

// Server wraps the MCP server with the query engine.
type Server struct {
	mcp    *gomcp.Server
	engine Querier
}

// NewServer creates an MCP server exposing chirp's search capabilities.
func NewServer(q Querier) (*Server, error) {
	if q == nil {
		return nil, fmt.Errorf("query engine is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "chirp",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		engine: q,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
