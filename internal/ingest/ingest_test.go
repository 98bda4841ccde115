package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/pkg/types"
)

// fakeStore is an in-memory graph.Store understanding the writer's
// statements. It mimics MERGE semantics: upserts by id, edge pairs by
// unordered id pair.
type fakeStore struct {
	mu    sync.Mutex
	nodes map[string]map[string]any // id -> properties
	edges map[string]bool           // "a|b" directed

	deriveCalls  int
	failUpsertID string // reject upserts for this chunk id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes: make(map[string]map[string]any),
		edges: make(map[string]bool),
	}
}

func (f *fakeStore) Query(ctx context.Context, statement string, params map[string]any) ([]graph.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.Contains(statement, "MERGE (c:CodeChunk"):
		id := params["id"].(string)
		if f.failUpsertID != "" && id == f.failUpsertID {
			return nil, types.ErrStoreQueryRejected
		}
		f.nodes[id] = map[string]any{
			"name":     params["name"],
			"content":  params["content"],
			"language": params["language"],
			"ordinal":  params["ordinal"],
		}
		return nil, nil

	case strings.Contains(statement, "DETACH DELETE c"):
		prefix := params["prefix"].(string)
		from := params["from"].(int)
		var removed int64
		for id, props := range f.nodes {
			if !strings.HasPrefix(id, prefix) || props["ordinal"].(int) < from {
				continue
			}
			delete(f.nodes, id)
			for edge := range f.edges {
				if strings.HasPrefix(edge, id+"|") || strings.HasSuffix(edge, "|"+id) {
					delete(f.edges, edge)
				}
			}
			removed++
		}
		return []graph.Row{{"removed": removed}}, nil

	case strings.Contains(statement, "MERGE (a)-[:SAME_LANGUAGE]->(b)"):
		f.deriveCalls++
		ids := toStrings(params["ids"])
		var pairs int64
		for _, a := range ids {
			for b, bprops := range f.nodes {
				if b == a {
					continue
				}
				aprops, ok := f.nodes[a]
				if !ok || aprops["language"] != bprops["language"] {
					continue
				}
				f.edges[a+"|"+b] = true
				f.edges[b+"|"+a] = true
				pairs++
			}
		}
		return []graph.Row{{"pairs": pairs}}, nil

	case strings.Contains(statement, "RETURN count(c) AS count"):
		return []graph.Row{{"count": int64(len(f.nodes))}}, nil
	}

	return nil, types.ErrStoreQueryRejected
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func toStrings(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, x := range vals {
			out = append(out, x.(string))
		}
		return out
	}
	return nil
}

func (f *fakeStore) nodeIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.nodes))
	for id := range f.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *fakeStore) edgeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edges)
}

func writeTestTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestIngestDirectory_TwoPythonFiles(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{
		"a.py": "def f(): pass",
		"b.py": "def g(): pass",
	})

	ing := New(store, Config{Workers: 2})
	report, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesFound)
	assert.Equal(t, 2, report.FilesIngested)
	assert.Equal(t, 2, report.ChunksUpserted)
	assert.Empty(t, report.Failures)
	assert.Equal(t, int64(2), report.NodeCount)

	assert.Equal(t, []string{"a.py#0", "b.py#0"}, store.nodeIDs())
	// Exactly one SAME_LANGUAGE pair between the two chunks, traversable in
	// both directions.
	assert.Equal(t, 2, store.edgeCount())
	assert.True(t, store.edges["a.py#0|b.py#0"])
	assert.True(t, store.edges["b.py#0|a.py#0"])
}

func TestIngestDirectory_Idempotent(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{
		"a.py": "def f(): pass",
		"b.py": "def g(): pass",
	})

	ing := New(store, Config{Workers: 1})
	_, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)
	first := store.nodeIDs()

	report, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first, store.nodeIDs(), "re-ingesting must not create duplicate nodes")
	assert.Equal(t, int64(2), report.NodeCount)
}

func TestIngestDirectory_ChangedContentOverwritesInPlace(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{"a.py": "def f(): pass"})

	ing := New(store, Config{Workers: 1})
	_, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f(): return 2"), 0o644))
	_, err = ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py#0"}, store.nodeIDs())
	assert.Equal(t, "def f(): return 2", store.nodes["a.py#0"]["content"])
}

func TestIngestDirectory_ShrunkenFileDropsTrailingChunks(t *testing.T) {
	store := newFakeStore()
	long := strings.Repeat("def f():\n    pass\n\n", 120)
	root := writeTestTree(t, map[string]string{"a.py": long})

	ing := New(store, Config{Workers: 1})
	_, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)
	require.Greater(t, len(store.nodeIDs()), 1, "fixture must span multiple chunks")

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f(): pass"), 0o644))
	report, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py#0"}, store.nodeIDs(), "trailing chunks must not survive a shrink")
	assert.Positive(t, report.ChunksRemoved)
	assert.Equal(t, "def f(): pass", store.nodes["a.py#0"]["content"])
}

func TestIngestDirectory_UndecodableFileSkipped(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{"a.py": "def f(): pass"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0x81}, 0o644))

	ing := New(store, Config{Workers: 1})
	report, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err, "an undecodable file must not abort the run")

	assert.Equal(t, 1, report.FilesIngested)
	assert.Equal(t, 1, report.FilesSkipped)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Err, "not decodable")
	assert.Equal(t, []string{"a.py#0"}, store.nodeIDs())
}

func TestIngestDirectory_ItemFailureDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	store.failUpsertID = "a.py#0"
	root := writeTestTree(t, map[string]string{
		"a.py": "def f(): pass",
		"b.py": "def g(): pass",
	})

	ing := New(store, Config{Workers: 1})
	report, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ChunksUpserted)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "a.py#0", report.Failures[0].Path)
	assert.Equal(t, []string{"b.py#0"}, store.nodeIDs())
}

func TestIngestDirectory_DerivationRunsOnceAfterUpserts(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{
		"a.py": "def f(): pass",
		"b.py": "def g(): pass",
		"c.go": "package main",
	})

	ing := New(store, Config{Workers: 4})
	_, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 1, store.deriveCalls, "derivation is a single post-barrier step")
	// Go chunk has no same-language peer: no edges touch it.
	for edge := range store.edges {
		assert.NotContains(t, edge, "c.go")
	}
}

func TestIngestDirectory_Cancellation(t *testing.T) {
	store := newFakeStore()
	root := writeTestTree(t, map[string]string{"a.py": "def f(): pass"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ing := New(store, Config{Workers: 1})
	_, err := ing.IngestDirectory(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverFiles_SkipsHiddenAndVendor(t *testing.T) {
	root := writeTestTree(t, map[string]string{
		"a.py":                "x",
		".git/config":         "x",
		"vendor/dep/dep.go":   "x",
		"node_modules/m/i.js": "x",
		"sub/b.js":            "x",
		"go.sum":              "x",
	})

	files, err := DiscoverFiles(root)
	require.NoError(t, err)

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, _ := filepath.Rel(root, f)
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	assert.Equal(t, []string{"a.py", "sub/b.js"}, rels)
}

func TestReadSourceFile_DetectsLanguage(t *testing.T) {
	root := writeTestTree(t, map[string]string{"sub/x.md": "# title"})

	file, err := ReadSourceFile(root, filepath.Join(root, "sub", "x.md"))
	require.NoError(t, err)

	assert.Equal(t, "sub/x.md", file.RelPath)
	assert.Equal(t, types.LangMarkdown, file.Language)
	assert.Equal(t, "x.md", file.Name())
}

func TestWriter_DeriveRelationshipsEmptyIDs(t *testing.T) {
	store := newFakeStore()
	w := NewWriter(store)

	pairs, err := w.DeriveRelationships(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, pairs)
	assert.Zero(t, store.deriveCalls)
}

func TestWriter_UpsertInvalidChunk(t *testing.T) {
	w := NewWriter(newFakeStore())

	err := w.UpsertChunk(context.Background(), &types.Chunk{ID: "x#0"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, types.ErrStoreQueryRejected), "validation failures never reach the store")
}
