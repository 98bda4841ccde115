package integration

import (
	"context"
	"strings"
	"sync"

	"github.com/dshills/codegraph/internal/graph"
)

// chunkNode mirrors a CodeChunk node's durable properties.
type chunkNode struct {
	ID       string
	Name     string
	Content  string
	Language string
	Ordinal  int
}

// MemoryStore is an in-memory graph.Store that understands the statements
// the pipeline issues: chunk upserts, relationship derivation, node counts
// and schema introspection. Question queries are scripted per statement so
// tests control exactly what the graph "matches".
type MemoryStore struct {
	mu       sync.Mutex
	nodes    map[string]chunkNode
	edges    map[string]map[string]bool
	scripted map[string][]graph.Row
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:    make(map[string]chunkNode),
		edges:    make(map[string]map[string]bool),
		scripted: make(map[string][]graph.Row),
	}
}

// Script registers the rows to return for an exact question-query statement.
func (m *MemoryStore) Script(statement string, rows []graph.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted[statement] = rows
}

// Query dispatches on the statement shape.
func (m *MemoryStore) Query(_ context.Context, statement string, params map[string]any) ([]graph.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case strings.Contains(statement, "MERGE (c:CodeChunk"):
		node := chunkNode{
			ID:       params["id"].(string),
			Name:     params["name"].(string),
			Content:  params["content"].(string),
			Language: params["language"].(string),
			Ordinal:  params["ordinal"].(int),
		}
		m.nodes[node.ID] = node
		return nil, nil

	case strings.Contains(statement, "DETACH DELETE c"):
		prefix := params["prefix"].(string)
		from := params["from"].(int)
		var removed int64
		for id, node := range m.nodes {
			if !strings.HasPrefix(id, prefix) || node.Ordinal < from {
				continue
			}
			delete(m.nodes, id)
			delete(m.edges, id)
			for _, peers := range m.edges {
				delete(peers, id)
			}
			removed++
		}
		return []graph.Row{{"removed": removed}}, nil

	case strings.Contains(statement, "MERGE (a)-[:SAME_LANGUAGE]->(b)"):
		return m.deriveEdges(params["ids"].([]string)), nil

	case strings.Contains(statement, "RETURN count(c) AS count"):
		return []graph.Row{{"count": int64(len(m.nodes))}}, nil

	case strings.Contains(statement, "db.labels"):
		if len(m.nodes) == 0 {
			return nil, nil
		}
		return []graph.Row{{"label": "CodeChunk"}}, nil

	case strings.Contains(statement, "db.relationshipTypes"):
		if len(m.edges) == 0 {
			return nil, nil
		}
		return []graph.Row{{"relationshipType": "SAME_LANGUAGE"}}, nil

	case strings.Contains(statement, "UNWIND labels(n)"):
		if len(m.nodes) == 0 {
			return nil, nil
		}
		var rows []graph.Row
		for _, key := range []string{"content", "id", "language", "name", "ordinal"} {
			rows = append(rows, graph.Row{"label": "CodeChunk", "key": key})
		}
		return rows, nil

	default:
		return m.scripted[statement], nil
	}
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close(context.Context) error { return nil }

// deriveEdges mirrors the incremental derivation statement: each touched id
// is linked in both directions with every distinct same-language peer. The
// returned row carries the pair-match count.
func (m *MemoryStore) deriveEdges(ids []string) []graph.Row {
	var matches int64
	for _, id := range ids {
		a, ok := m.nodes[id]
		if !ok {
			continue
		}
		for _, b := range m.nodes {
			if b.ID == a.ID || b.Language != a.Language {
				continue
			}
			m.addEdge(a.ID, b.ID)
			m.addEdge(b.ID, a.ID)
			matches++
		}
	}
	return []graph.Row{{"pairs": matches}}
}

func (m *MemoryStore) addEdge(from, to string) {
	if m.edges[from] == nil {
		m.edges[from] = make(map[string]bool)
	}
	m.edges[from][to] = true
}

// NodeCount reports how many chunk nodes the store holds.
func (m *MemoryStore) NodeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

// Node returns the stored node for an id.
func (m *MemoryStore) Node(id string) (chunkNode, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	return n, ok
}

// HasEdge reports whether a directed SAME_LANGUAGE edge exists.
func (m *MemoryStore) HasEdge(from, to string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edges[from][to]
}
