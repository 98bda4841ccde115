// Package pipeline is the orchestrator: it wires the chunker, graph writer,
// schema introspector, query translator, executor and answer synthesizer
// around explicitly injected store and model contracts, and owns the
// contract with the CLI and MCP surfaces.
package pipeline
