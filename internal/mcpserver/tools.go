package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/codegraph/internal/pipeline"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeGraphNotReady = -32001 // Graph holds no ingested data
	ErrorCodeEmptyQuestion = -32002 // Question parameter is empty
)

// handleIngestCodebase handles the ingest_codebase tool invocation
func (s *Server) handleIngestCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	report, err := s.pipeline.Ingest(ctx, path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "ingestion failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"run_id":          report.RunID,
		"files_found":     report.FilesFound,
		"files_ingested":  report.FilesIngested,
		"files_skipped":   report.FilesSkipped,
		"chunks_upserted": report.ChunksUpserted,
		"chunks_removed":  report.ChunksRemoved,
		"edge_pairs":      report.EdgePairs,
		"node_count":      report.NodeCount,
		"duration_ms":     report.Duration.Milliseconds(),
	}

	if len(report.Failures) > 0 {
		failures := report.Failures
		if len(failures) > 5 {
			response["failure_count"] = len(failures)
			failures = failures[:5]
		}
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = fmt.Sprintf("%s: %s", f.Path, f.Err)
		}
		response["failures"] = msgs
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleAskCodebase handles the ask_codebase tool invocation
func (s *Server) handleAskCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	question, ok := args["question"].(string)
	if !ok || question == "" {
		return nil, newMCPError(ErrorCodeEmptyQuestion, "question parameter is required and cannot be empty", map[string]interface{}{
			"param":  "question",
			"reason": "missing or empty",
		})
	}

	summarize := getBoolDefault(args, "summarize", false)
	showQuery := getBoolDefault(args, "show_query", false)

	ans, err := s.pipeline.AskDetailed(ctx, question, pipeline.AskOptions{Summarize: summarize})
	if err != nil {
		// A failed question is a tool-level result, not a protocol error;
		// the client should keep asking.
		return mcp.NewToolResultText(pipeline.RenderError(err)), nil
	}

	response := map[string]interface{}{
		"answer": ans.Text,
		"rows":   ans.Rows,
	}
	if showQuery {
		response["query"] = ans.Cypher
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGraphSchema handles the graph_schema tool invocation
func (s *Server) handleGraphSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schemaText, err := s.pipeline.Schema(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeGraphNotReady, "schema unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(schemaText), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is a readable directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
