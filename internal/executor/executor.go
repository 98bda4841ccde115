// Package executor runs translated queries against the graph store and
// classifies the outcome.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/internal/translator"
)

// Executor runs structured queries. It distinguishes rows present, rows
// empty (a valid query with no matches, not an error) and execution
// rejected. There are no retries here: a malformed query is a translation
// defect, not a transient fault, so it surfaces upward instead of being
// resubmitted.
type Executor struct {
	store graph.Store
}

// New creates an Executor over the given store.
func New(store graph.Store) *Executor {
	return &Executor{store: store}
}

// Execute runs the query. An empty row slice with a nil error means the
// query matched nothing.
func (e *Executor) Execute(ctx context.Context, q translator.StructuredQuery) ([]graph.Row, error) {
	rows, err := e.store.Query(ctx, q.Cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}

	slog.Debug("query executed", "question", q.Question, "rows", len(rows))
	return rows, nil
}
