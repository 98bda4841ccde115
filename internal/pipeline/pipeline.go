package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/codegraph/internal/answer"
	"github.com/dshills/codegraph/internal/executor"
	"github.com/dshills/codegraph/internal/graph"
	"github.com/dshills/codegraph/internal/ingest"
	"github.com/dshills/codegraph/internal/llm"
	"github.com/dshills/codegraph/internal/schema"
	"github.com/dshills/codegraph/internal/translator"
	"github.com/dshills/codegraph/pkg/types"
)

// Config tunes the pipeline. Zero values mean defaults.
type Config struct {
	Workers      int // ingestion worker pool size
	ChunkMaxSize int // maximum chunk content length
	ChunkOverlap int // characters shared between consecutive chunks
	DisplayBound int // answer truncation bound
}

// Pipeline composes ingestion and querying over explicitly injected store
// and model contracts. There is no ambient client state: everything the
// components need is passed in here and handed to their constructors.
type Pipeline struct {
	store graph.Store
	model llm.CompletionClient

	ingestor     *ingest.Ingestor
	introspector *schema.Introspector
	translator   *translator.Translator
	executor     *executor.Executor
	synthesizer  *answer.Synthesizer
}

// New wires the pipeline components around the given contracts.
func New(store graph.Store, model llm.CompletionClient, cfg Config) *Pipeline {
	return &Pipeline{
		store: store,
		model: model,
		ingestor: ingest.New(store, ingest.Config{
			Workers:      cfg.Workers,
			ChunkMaxSize: cfg.ChunkMaxSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}),
		introspector: schema.NewIntrospector(store),
		translator:   translator.New(model),
		executor:     executor.New(store),
		synthesizer:  answer.New(cfg.DisplayBound),
	}
}

// Ingest runs one ingestion pass over a directory.
func (p *Pipeline) Ingest(ctx context.Context, dir string) (*ingest.Report, error) {
	return p.ingestor.IngestDirectory(ctx, dir)
}

// Schema returns the current schema description.
func (p *Pipeline) Schema(ctx context.Context) (string, error) {
	return p.introspector.Describe(ctx)
}

// AskOptions controls optional behavior for a single question.
type AskOptions struct {
	// Summarize wraps the deterministic answer in a generative summary of
	// the matched content. On any model failure the deterministic answer is
	// the fallback.
	Summarize bool
}

// Answer is the result of one question.
type Answer struct {
	Text   string
	Cypher string // the executed query
	Rows   int
}

// Ask answers a single question and returns just the answer text.
func (p *Pipeline) Ask(ctx context.Context, question string) (string, error) {
	ans, err := p.AskDetailed(ctx, question, AskOptions{})
	if err != nil {
		return "", err
	}
	return ans.Text, nil
}

// AskDetailed runs the full query path: a fresh schema snapshot, translation,
// execution, synthesis. The schema is re-derived per question so it reflects
// the latest ingested state; ingestion and querying never share a
// transaction, so cancelling here cannot corrupt ingestion state.
func (p *Pipeline) AskDetailed(ctx context.Context, question string, opts AskOptions) (*Answer, error) {
	schemaText, err := p.introspector.Describe(ctx)
	if err != nil {
		// An ungrounded translator call is guaranteed to produce an
		// unusable query; stop before any model call.
		return nil, err
	}

	query, err := p.translator.Translate(ctx, question, schemaText)
	if err != nil {
		return nil, err
	}

	rows, err := p.executor.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	text := p.synthesizer.Synthesize(rows, question)

	if opts.Summarize {
		if summary, serr := p.summarize(ctx, question, rows); serr == nil {
			text = summary
		} else {
			slog.Warn("summary generation failed, using deterministic answer", "error", serr)
		}
	}

	return &Answer{Text: text, Cypher: query.Cypher, Rows: len(rows)}, nil
}

// summaryRowLimit bounds how many rows feed the generative summary.
const summaryRowLimit = 5

const summaryPrompt = `Answer the question using only the code excerpts below. Be concise. If the excerpts do not answer the question, say so.

Question: %s

Excerpts:
%s`

// summarize asks the model for a natural-language summary of the matched
// content. Only called when rows carried usable content.
func (p *Pipeline) summarize(ctx context.Context, question string, rows []graph.Row) (string, error) {
	outcome := p.synthesizer.Classify(rows)
	if !outcome.Found() {
		return "", fmt.Errorf("nothing to summarize")
	}

	var excerpts strings.Builder
	count := 0
	for _, row := range rows {
		if count >= summaryRowLimit {
			break
		}
		for key, val := range row {
			if str, ok := val.(string); ok && strings.Contains(strings.ToLower(key), "content") && str != "" {
				fmt.Fprintf(&excerpts, "---\n%s\n", str)
				count++
				break
			}
		}
	}

	return p.model.Complete(ctx, fmt.Sprintf(summaryPrompt, question, excerpts.String()))
}

// RenderError converts a question's failure into the user-visible string
// printed by the interactive loop. Nothing here is allowed to crash the
// process; the loop keeps accepting questions afterward.
func RenderError(err error) string {
	switch {
	case errors.Is(err, types.ErrSchemaUnavailable):
		return "Graph not ready: ingest a directory before asking questions."
	case errors.Is(err, types.ErrTranslationInvalid):
		return "Could not generate a valid query for this question. Try rephrasing it."
	case errors.Is(err, types.ErrModelTimeout):
		return "The language model timed out. Try again."
	case errors.Is(err, types.ErrModelUnavailable):
		return "The language model is unavailable: " + err.Error()
	case errors.Is(err, types.ErrStoreQueryRejected):
		return "The graph store rejected the generated query: " + err.Error()
	case errors.Is(err, types.ErrStoreUnavailable):
		return "The graph store is unavailable: " + err.Error()
	case errors.Is(err, context.Canceled):
		return "Question cancelled."
	default:
		return "Error: " + err.Error()
	}
}
