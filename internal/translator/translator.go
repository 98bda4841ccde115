package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/codegraph/internal/llm"
	"github.com/dshills/codegraph/pkg/types"
)

// promptTemplate is the deterministic prompt for Cypher generation. It
// embeds the live schema description plus a fixed instruction set: partial
// text matches must use CONTAINS or regex, the query must always project
// content, and the output must be bare Cypher.
const promptTemplate = `You are an AI assistant that converts natural language questions about a codebase into Cypher queries.
Use the following Neo4j graph schema to generate Cypher queries:
%s
The graph contains CodeChunk nodes with properties: id, name, content, language, and ordinal.
CodeChunks with the same language are connected by SAME_LANGUAGE relationships.

When searching for specific terms, use CONTAINS or =~ for partial matches, not exact equality.
Always return the content of the CodeChunk nodes in your queries.
Respond with a single Cypher query and nothing else. Do not include the word 'cypher' in your query.

Question: %s
Cypher query:`

// retryFeedback is appended to the prompt on the single bounded retry after
// an unparseable first attempt.
const retryFeedback = `

Your previous output failed to parse as Cypher (%s). Respond with only one valid Cypher query, no prose, no code fences.`

const defaultCacheSize = 512

// StructuredQuery is a validated, store-executable query produced from a
// question.
type StructuredQuery struct {
	Cypher   string
	Question string
}

// Translator converts free-text questions into validated Cypher using the
// completion contract, grounded on the current schema description.
type Translator struct {
	client llm.CompletionClient
	cache  *lru.Cache[string, string]
}

// New creates a Translator. Successful translations are cached by
// schema+question hash, so repeating a question against an unchanged graph
// skips the model call.
func New(client llm.CompletionClient) *Translator {
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(fmt.Sprintf("translator cache: %v", err))
	}
	return &Translator{client: client, cache: cache}
}

// Translate produces a structured query for the question. Unparseable model
// output triggers exactly one retry with parse feedback before surfacing
// types.ErrTranslationInvalid. A model timeout is treated the same way: the
// retry applies, and the second failure surfaces rather than hangs.
func (t *Translator) Translate(ctx context.Context, question, schemaText string) (StructuredQuery, error) {
	if question == "" {
		return StructuredQuery{}, fmt.Errorf("%w: empty question", types.ErrTranslationInvalid)
	}
	if schemaText == "" {
		return StructuredQuery{}, types.ErrSchemaUnavailable
	}

	key := cacheKey(schemaText, question)
	if cypher, ok := t.cache.Get(key); ok {
		slog.Debug("translation cache hit", "question", question)
		return StructuredQuery{Cypher: cypher, Question: question}, nil
	}

	prompt := fmt.Sprintf(promptTemplate, schemaText, question)

	cypher, firstErr := t.attempt(ctx, prompt)
	if firstErr != nil {
		if !retryable(firstErr) {
			return StructuredQuery{}, firstErr
		}

		slog.Debug("translation retry", "question", question, "reason", firstErr)
		retryPrompt := prompt + fmt.Sprintf(retryFeedback, reason(firstErr))
		var retryErr error
		cypher, retryErr = t.attempt(ctx, retryPrompt)
		if retryErr != nil {
			if errors.Is(retryErr, types.ErrModelUnavailable) || errors.Is(retryErr, context.Canceled) {
				return StructuredQuery{}, retryErr
			}
			return StructuredQuery{}, fmt.Errorf("%w: %v", types.ErrTranslationInvalid, retryErr)
		}
	}

	t.cache.Add(key, cypher)
	return StructuredQuery{Cypher: cypher, Question: question}, nil
}

// attempt runs one completion and validates its output.
func (t *Translator) attempt(ctx context.Context, prompt string) (string, error) {
	out, err := t.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return SanitizeAndValidate(out)
}

// retryable reports whether a first-attempt failure gets the bounded retry.
// Transport failures and caller cancellation surface immediately; parse
// failures and timeouts retry once.
func retryable(err error) bool {
	if errors.Is(err, types.ErrModelUnavailable) || errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, types.ErrTranslationInvalid) || errors.Is(err, types.ErrModelTimeout)
}

// reason extracts a short feedback string for the retry prompt.
func reason(err error) string {
	if errors.Is(err, types.ErrModelTimeout) {
		return "the previous attempt timed out"
	}
	return "previous output failed to parse"
}

func cacheKey(schemaText, question string) string {
	h := sha256.Sum256([]byte(schemaText + "\x00" + question))
	return hex.EncodeToString(h[:])
}
