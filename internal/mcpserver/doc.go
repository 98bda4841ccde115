// Package mcpserver exposes the pipeline as MCP tools over stdio:
//
//   - ingest_codebase: ingest a directory into the code graph
//   - ask_codebase: answer a natural-language question about it
//   - graph_schema: describe the graph's current shape
//
// Per-question failures are returned as tool results, not protocol errors,
// so a bad question never takes the server down. Stdout is reserved for the
// MCP protocol; logging goes to stderr.
package mcpserver
