// Package types defines the core domain types shared across the ingestion
// and query pipeline.
//
// The central types are:
//
//   - SourceFile: a raw file read from disk during one ingestion run,
//     tagged with a detected language. Ephemeral - discarded after chunking.
//   - Chunk: a bounded slice of one source file's text. Chunks are what get
//     persisted to the graph store as CodeChunk nodes.
//   - QueryOutcome: the tagged result of executing a translated query.
//     Absence of rows is an expected, common outcome, so it is modeled as a
//     value rather than an error.
//
// The package also holds the sentinel errors for the pipeline's failure
// taxonomy. Components wrap these with fmt.Errorf("...: %w", ...) so callers
// can classify failures with errors.Is.
package types
