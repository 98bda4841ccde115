package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/pkg/types"
)

// stubStore answers introspection statements from canned data.
type stubStore struct {
	labels   []graph.Row
	relTypes []graph.Row
	props    []graph.Row
	err      error
}

func (s *stubStore) Query(ctx context.Context, statement string, params map[string]any) ([]graph.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	switch {
	case strings.Contains(statement, "db.labels"):
		return s.labels, nil
	case strings.Contains(statement, "db.relationshipTypes"):
		return s.relTypes, nil
	default:
		return s.props, nil
	}
}

func (s *stubStore) Close(ctx context.Context) error { return nil }

func TestDescribe_RendersSchema(t *testing.T) {
	store := &stubStore{
		labels:   []graph.Row{{"label": "CodeChunk"}},
		relTypes: []graph.Row{{"relationshipType": "SAME_LANGUAGE"}},
		props: []graph.Row{
			{"label": "CodeChunk", "key": "name"},
			{"label": "CodeChunk", "key": "content"},
			{"label": "CodeChunk", "key": "language"},
			{"label": "CodeChunk", "key": "id"},
		},
	}

	text, err := NewIntrospector(store).Describe(context.Background())
	require.NoError(t, err)

	assert.Contains(t, text, "CodeChunk {content, id, language, name}")
	assert.Contains(t, text, "SAME_LANGUAGE")
}

func TestDescribe_EmptyGraph(t *testing.T) {
	store := &stubStore{}

	_, err := NewIntrospector(store).Describe(context.Background())
	assert.ErrorIs(t, err, types.ErrSchemaUnavailable)
}

func TestDescribe_StoreFailure(t *testing.T) {
	store := &stubStore{err: types.ErrStoreUnavailable}

	_, err := NewIntrospector(store).Describe(context.Background())
	assert.ErrorIs(t, err, types.ErrStoreUnavailable)
}

func TestDescribe_NoRelationshipsYet(t *testing.T) {
	store := &stubStore{
		labels: []graph.Row{{"label": "CodeChunk"}},
		props:  []graph.Row{{"label": "CodeChunk", "key": "name"}},
	}

	text, err := NewIntrospector(store).Describe(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "(none)")
}
