package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/codegraph/internal/pipeline"
)

const (
	// ServerName is the MCP server name
	ServerName = "codegraph"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server exposes the ingestion-and-query pipeline as MCP tools over stdio.
type Server struct {
	mcp      *server.MCPServer
	pipeline *pipeline.Pipeline
}

// NewServer wraps an already-wired pipeline in an MCP server.
func NewServer(p *pipeline.Pipeline) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		pipeline: p,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcp.AddTool(ingestCodebaseTool(), s.handleIngestCodebase)
	s.mcp.AddTool(askCodebaseTool(), s.handleAskCodebase)
	s.mcp.AddTool(graphSchemaTool(), s.handleGraphSchema)
}
