package answer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/pkg/types"
)

const (
	// DefaultDisplayBound caps how much matched content is shown.
	DefaultDisplayBound = 1000

	// TruncationMarker is appended when the display bound is hit.
	TruncationMarker = "..."

	// MsgNoMatches is the fixed empty-result answer. Absence of rows is an
	// expected outcome, not an error.
	MsgNoMatches = "No matching data found in the graph for this query."

	// MsgNoContent is the fixed answer when matched nodes carried no usable
	// content.
	MsgNoContent = "No relevant content found in the matched nodes."
)

// Synthesizer converts executor rows into a bounded, user-facing answer.
// This is deterministic formatting of executor output, never generative
// summarization; it never calls the language model.
type Synthesizer struct {
	displayBound int
}

// New creates a Synthesizer with the given display bound (<=0 means the
// default).
func New(displayBound int) *Synthesizer {
	if displayBound <= 0 {
		displayBound = DefaultDisplayBound
	}
	return &Synthesizer{displayBound: displayBound}
}

// Classify maps rows to a tagged outcome.
func (s *Synthesizer) Classify(rows []graph.Row) types.QueryOutcome {
	if len(rows) == 0 {
		return types.QueryOutcome{Kind: types.OutcomeEmpty}
	}

	content, ok := contentProjection(rows[0])
	if !ok {
		return types.QueryOutcome{
			Kind:   types.OutcomeMalformed,
			Detail: describeShape(rows[0]),
		}
	}
	if strings.TrimSpace(content) == "" {
		return types.QueryOutcome{Kind: types.OutcomeNoContent}
	}

	return types.QueryOutcome{Kind: types.OutcomeFound, Content: content}
}

// Synthesize renders the final answer text for the rows, in priority order:
// empty result, blank content, found content (truncated to the display
// bound), then a shape diagnostic. It never fails.
func (s *Synthesizer) Synthesize(rows []graph.Row, rawQuestion string) string {
	outcome := s.Classify(rows)

	switch outcome.Kind {
	case types.OutcomeEmpty:
		return MsgNoMatches
	case types.OutcomeNoContent:
		return MsgNoContent
	case types.OutcomeFound:
		return s.truncate(outcome.Content)
	default:
		return fmt.Sprintf("Unexpected result shape for %q: %s", rawQuestion, outcome.Detail)
	}
}

// truncate bounds content to the display limit, marking the cut. The cut
// backs off to a rune boundary so a multi-byte final character is dropped
// whole instead of mangled.
func (s *Synthesizer) truncate(content string) string {
	if len(content) <= s.displayBound {
		return content
	}
	cut := s.displayBound
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + TruncationMarker
}

// contentProjection finds the content field in a row. Generated queries may
// project it as "content", "c.content" or any aliased variant, so any key
// whose final segment is "content" counts.
func contentProjection(row graph.Row) (string, bool) {
	for key, val := range row {
		lower := strings.ToLower(key)
		if lower == "content" || strings.HasSuffix(lower, ".content") {
			if str, ok := val.(string); ok {
				return str, true
			}
			// Projected but not text: treat as blank rather than crash.
			return "", true
		}
	}
	return "", false
}

// describeShape names the keys a malformed row actually carried.
func describeShape(row graph.Row) string {
	if len(row) == 0 {
		return "row with no fields"
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "row with fields [" + strings.Join(keys, ", ") + "]"
}
