// Package graph defines the graph-store contract and its Neo4j
// implementation.
//
// The durable schema is deliberately small: CodeChunk nodes with id, name,
// content and language properties, linked by SAME_LANGUAGE relationships.
// No other labels or relationship types exist.
//
// Store is a single-method query contract so the rest of the pipeline stays
// independent of the driver. Each Query call runs in its own session; the
// store's transactional guarantees are relied on instead of pipeline-side
// locking.
package graph
