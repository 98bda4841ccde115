package graph

import "context"

// Row is one result record from the graph store, keyed by projection name.
type Row map[string]any

// Store is the graph-store contract. All pipeline mutation and querying goes
// through it; the store's own transactional guarantees are the only locking.
//
// Implementations map transport failures to types.ErrStoreUnavailable and
// statement rejections to types.ErrStoreQueryRejected.
type Store interface {
	// Query runs a single Cypher statement and returns its rows. An empty
	// result set is returned as (nil, nil) rows with no error.
	Query(ctx context.Context, statement string, params map[string]any) ([]Row, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
