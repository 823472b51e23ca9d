// ABOUTME: MCP server setup for the readiness engine.
// ABOUTME: Exposes scoring, recalculation, and settings over stdio transport.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/readiness/internal/recalc"
	"github.com/harperreed/readiness/internal/settings"
	"github.com/harperreed/readiness/internal/storage"
)

// Server wraps the MCP server with the readiness components.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Store
	settings  *settings.Store
	coord     *recalc.Coordinator
}

// NewServer creates a new MCP server wired to the given components.
func NewServer(store storage.Store, settingsStore *settings.Store, coord *recalc.Coordinator) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "readiness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		settings:  settingsStore,
		coord:     coord,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
