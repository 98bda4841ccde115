package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ingestCodebaseTool returns the tool definition for ingest_codebase
func ingestCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ingest_codebase",
		Description: "Ingest a directory of source files into the code graph",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory to ingest",
				},
			},
			Required: []string{"path"},
		},
	}
}

// askCodebaseTool returns the tool definition for ask_codebase
func askCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ask_codebase",
		Description: "Answer a natural-language question about the ingested codebase",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"summarize": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, wrap the matched content in a generative summary",
					"default":     false,
				},
				"show_query": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include the generated Cypher query in the response",
					"default":     false,
				},
			},
			Required: []string{"question"},
		},
	}
}

// graphSchemaTool returns the tool definition for graph_schema
func graphSchemaTool() mcp.Tool {
	return mcp.Tool{
		Name:        "graph_schema",
		Description: "Describe the current node labels, relationship types and properties of the code graph",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
