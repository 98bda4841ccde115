package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/pkg/types"
)

// Introspection statements. Property keys come from a node scan rather than
// apoc, so the introspector works on a bare Neo4j install.
const (
	labelsCypher     = `CALL db.labels() YIELD label RETURN label`
	relTypesCypher   = `CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType`
	propertiesCypher = `
MATCH (n)
UNWIND labels(n) AS label
UNWIND keys(n) AS key
RETURN DISTINCT label, key`
)

// Introspector derives the graph's current shape as the textual form the
// query translator expects as grounding context. The description is
// re-derived per querying session and never cached across ingestion runs.
type Introspector struct {
	store graph.Store
}

// NewIntrospector creates an Introspector over the given store.
func NewIntrospector(store graph.Store) *Introspector {
	return &Introspector{store: store}
}

// Describe renders the current node labels, relationship types and
// properties. An empty graph yields types.ErrSchemaUnavailable: translating
// against a blank schema is guaranteed to produce an unusable query, so the
// caller must surface the condition instead of pressing on.
func (in *Introspector) Describe(ctx context.Context) (string, error) {
	labels, err := in.collect(ctx, labelsCypher, "label")
	if err != nil {
		return "", fmt.Errorf("introspect labels: %w", err)
	}
	if len(labels) == 0 {
		return "", types.ErrSchemaUnavailable
	}

	relTypes, err := in.collect(ctx, relTypesCypher, "relationshipType")
	if err != nil {
		return "", fmt.Errorf("introspect relationship types: %w", err)
	}

	props, err := in.collectProperties(ctx)
	if err != nil {
		return "", fmt.Errorf("introspect properties: %w", err)
	}

	return render(labels, relTypes, props), nil
}

// collect runs a single-column introspection query and returns the values.
func (in *Introspector) collect(ctx context.Context, statement, column string) ([]string, error) {
	rows, err := in.store.Query(ctx, statement, nil)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, row := range rows {
		if v, ok := row[column].(string); ok {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}

// collectProperties maps each label to its sorted property keys.
func (in *Introspector) collectProperties(ctx context.Context) (map[string][]string, error) {
	rows, err := in.store.Query(ctx, propertiesCypher, nil)
	if err != nil {
		return nil, err
	}

	props := make(map[string][]string)
	for _, row := range rows {
		label, lok := row["label"].(string)
		key, kok := row["key"].(string)
		if lok && kok {
			props[label] = append(props[label], key)
		}
	}
	for label := range props {
		sort.Strings(props[label])
	}
	return props, nil
}

// render produces the schema text handed to the translator.
func render(labels, relTypes []string, props map[string][]string) string {
	var b strings.Builder

	b.WriteString("Node labels and properties:\n")
	for _, label := range labels {
		if keys := props[label]; len(keys) > 0 {
			fmt.Fprintf(&b, "  %s {%s}\n", label, strings.Join(keys, ", "))
		} else {
			fmt.Fprintf(&b, "  %s\n", label)
		}
	}

	b.WriteString("Relationship types:\n")
	if len(relTypes) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, rt := range relTypes {
		fmt.Fprintf(&b, "  %s\n", rt)
	}

	return b.String()
}
