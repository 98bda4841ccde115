package translator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/codegraph/pkg/types"
)

// Cypher surface grammar for generated queries. The model's raw text is
// never handed to the store: it must sanitize into a single read query whose
// first clause is whitelisted and whose RETURN projects content.
var (
	openingClauses = []string{"MATCH", "OPTIONAL MATCH", "WITH", "UNWIND", "CALL", "RETURN"}

	// Generated queries are read-only. A mutation keyword outside a quoted
	// literal means the model misunderstood the task, which is a parse
	// failure for retry purposes. Keywords match on word boundaries so
	// property names like "dataset" or "offset" never trip the scan.
	mutationRe = regexp.MustCompile(`\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP)\b`)

	fenceRe = regexp.MustCompile("(?s)```(?:[Cc]ypher)?\\s*(.*?)```")

	// cypherPrefixRe matches a literal language-name prefix the store would
	// reject as unparseable.
	cypherPrefixRe = regexp.MustCompile(`(?i)^cypher[:\s]+`)
)

// SanitizeAndValidate strips fences and banned tokens from raw model output
// and checks the result against the query surface grammar. Failures wrap
// types.ErrTranslationInvalid.
func SanitizeAndValidate(raw string) (string, error) {
	cypher := Sanitize(raw)
	if err := Validate(cypher); err != nil {
		return "", err
	}
	return cypher, nil
}

// Sanitize extracts the query text from model output: code fences are
// unwrapped and a leading 'cypher' label is stripped.
func Sanitize(raw string) string {
	out := strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(out); m != nil {
		out = strings.TrimSpace(m[1])
	}

	out = cypherPrefixRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// Validate checks a sanitized query against the surface grammar.
func Validate(cypher string) error {
	if cypher == "" {
		return fmt.Errorf("%w: empty output", types.ErrTranslationInvalid)
	}

	upper := strings.ToUpper(cypher)

	if !hasOpeningClause(upper) {
		return fmt.Errorf("%w: query must start with one of %s",
			types.ErrTranslationInvalid, strings.Join(openingClauses, ", "))
	}

	// Scan with string literals blanked out: a question about code may well
	// quote text that contains a keyword.
	if kw := mutationRe.FindString(strings.ToUpper(stripLiterals(cypher))); kw != "" {
		return fmt.Errorf("%w: mutation clause %s not allowed",
			types.ErrTranslationInvalid, kw)
	}

	returnIdx := strings.LastIndex(upper, "RETURN")
	if returnIdx < 0 {
		return fmt.Errorf("%w: query has no RETURN clause", types.ErrTranslationInvalid)
	}

	if !strings.Contains(strings.ToLower(cypher[returnIdx:]), "content") {
		return fmt.Errorf("%w: RETURN clause must project content", types.ErrTranslationInvalid)
	}

	return nil
}

// stripLiterals removes single-, double- and backtick-quoted spans so
// keyword scans only see query structure. Backslash escapes inside quotes
// are honored; an unterminated literal simply swallows the rest.
func stripLiterals(s string) string {
	var b strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' && quote != '`' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		if ch == '\'' || ch == '"' || ch == '`' {
			quote = ch
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func hasOpeningClause(upper string) bool {
	for _, clause := range openingClauses {
		if strings.HasPrefix(upper, clause+" ") || strings.HasPrefix(upper, clause+"\n") || strings.HasPrefix(upper, clause+"(") {
			return true
		}
	}
	return false
}
