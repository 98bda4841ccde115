package ingest

import (
	"context"
	"fmt"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/pkg/types"
)

// Cypher statements for the durable schema. CodeChunk nodes are keyed by id
// (relative path plus ordinal) so re-ingesting the same file overwrites its
// chunks in place instead of accumulating duplicates.
const (
	upsertChunkCypher = `
MERGE (c:CodeChunk {id: $id})
SET c.name = $name, c.content = $content, c.language = $language, c.ordinal = $ordinal`

	// deriveEdgesCypher links the run's touched chunks to every distinct
	// same-language peer, in both directions. Scoping the first MATCH to the
	// touched ids keeps derivation incremental instead of recomputing the
	// full pairing set on every run.
	deriveEdgesCypher = `
MATCH (a:CodeChunk) WHERE a.id IN $ids
MATCH (b:CodeChunk) WHERE b.id <> a.id AND b.language = a.language
MERGE (a)-[:SAME_LANGUAGE]->(b)
MERGE (b)-[:SAME_LANGUAGE]->(a)
RETURN count(*) AS pairs`

	// deleteStaleCypher removes a file's chunks at or beyond its new chunk
	// count. Without it, a file that shrank on re-ingest leaves its trailing
	// chunks behind with stale content, still matchable by queries.
	deleteStaleCypher = `
MATCH (c:CodeChunk)
WHERE c.id STARTS WITH $prefix AND c.ordinal >= $from
DETACH DELETE c
RETURN count(c) AS removed`

	countNodesCypher = `MATCH (c:CodeChunk) RETURN count(c) AS count`
)

// Writer upserts chunks as graph nodes and derives relationships between
// them. It holds no state beyond the store reference.
type Writer struct {
	store graph.Store
}

// NewWriter creates a Writer over the given store.
func NewWriter(store graph.Store) *Writer {
	return &Writer{store: store}
}

// UpsertChunk merges one chunk into the graph by id, overwriting content and
// language if the node already exists.
func (w *Writer) UpsertChunk(ctx context.Context, chunk *types.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return fmt.Errorf("invalid chunk %s: %w", chunk.ID, err)
	}

	_, err := w.store.Query(ctx, upsertChunkCypher, map[string]any{
		"id":       chunk.ID,
		"name":     chunk.Name,
		"content":  chunk.Content,
		"language": string(chunk.Language),
		"ordinal":  chunk.Ordinal,
	})
	if err != nil {
		return fmt.Errorf("upsert chunk %s: %w", chunk.ID, err)
	}
	return nil
}

// DeriveRelationships ensures SAME_LANGUAGE edges exist between the given
// chunk ids and all same-language peers. Must run only after every upsert in
// the ingestion run has completed, since it depends on the full post-run
// node set.
func (w *Writer) DeriveRelationships(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	rows, err := w.store.Query(ctx, deriveEdgesCypher, map[string]any{"ids": ids})
	if err != nil {
		return 0, fmt.Errorf("derive relationships: %w", err)
	}

	if len(rows) > 0 {
		if pairs, ok := rows[0]["pairs"].(int64); ok {
			return pairs, nil
		}
	}
	return 0, nil
}

// DeleteStaleChunks removes the file's chunks with ordinal >= from, so a
// file that now yields fewer chunks than on its previous ingestion leaves no
// stale trailing nodes.
func (w *Writer) DeleteStaleChunks(ctx context.Context, relPath string, from int) (int64, error) {
	rows, err := w.store.Query(ctx, deleteStaleCypher, map[string]any{
		"prefix": relPath + "#",
		"from":   from,
	})
	if err != nil {
		return 0, fmt.Errorf("delete stale chunks for %s: %w", relPath, err)
	}

	if len(rows) > 0 {
		if n, ok := rows[0]["removed"].(int64); ok {
			return n, nil
		}
	}
	return 0, nil
}

// CountNodes returns the current CodeChunk node count.
func (w *Writer) CountNodes(ctx context.Context) (int64, error) {
	rows, err := w.store.Query(ctx, countNodesCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count nodes: %w", err)
	}
	if len(rows) > 0 {
		if n, ok := rows[0]["count"].(int64); ok {
			return n, nil
		}
	}
	return 0, nil
}
