package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/internal/translator"
	"github.com/dshills/codegraph/pkg/types"
)

type stubStore struct {
	rows      []graph.Row
	err       error
	lastQuery string
}

func (s *stubStore) Query(_ context.Context, statement string, _ map[string]any) ([]graph.Row, error) {
	s.lastQuery = statement
	return s.rows, s.err
}

func (s *stubStore) Close(context.Context) error { return nil }

func TestExecute_PassesCypherThrough(t *testing.T) {
	store := &stubStore{rows: []graph.Row{{"content": "x = 1"}}}
	e := New(store)

	q := translator.StructuredQuery{
		Cypher:   "MATCH (c:CodeChunk) RETURN c.content",
		Question: "what is x?",
	}
	rows, err := e.Execute(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, q.Cypher, store.lastQuery)
	require.Len(t, rows, 1)
	assert.Equal(t, "x = 1", rows[0]["content"])
}

func TestExecute_EmptyResultIsNotAnError(t *testing.T) {
	e := New(&stubStore{rows: []graph.Row{}})

	rows, err := e.Execute(context.Background(), translator.StructuredQuery{Cypher: "MATCH (c:CodeChunk) RETURN c.content"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExecute_RejectedQuerySurfaces(t *testing.T) {
	e := New(&stubStore{err: types.ErrStoreQueryRejected})

	_, err := e.Execute(context.Background(), translator.StructuredQuery{Cypher: "MATCH syntax gone wrong RETURN c.content"})
	assert.ErrorIs(t, err, types.ErrStoreQueryRejected)
}

func TestExecute_StoreUnavailableSurfaces(t *testing.T) {
	e := New(&stubStore{err: types.ErrStoreUnavailable})

	_, err := e.Execute(context.Background(), translator.StructuredQuery{Cypher: "MATCH (c:CodeChunk) RETURN c.content"})
	assert.ErrorIs(t, err, types.ErrStoreUnavailable)
}
