package types

import "errors"

// Failure taxonomy for the pipeline. Per-item ingestion failures are
// collected and reported in aggregate; per-question failures are rendered at
// the orchestrator boundary, never propagated as a crash.
var (
	// ErrDecode means a file could not be decoded as text. The file is
	// skipped and ingestion continues.
	ErrDecode = errors.New("file is not decodable text")

	// ErrStoreUnavailable means the graph store could not be reached.
	ErrStoreUnavailable = errors.New("graph store unavailable")

	// ErrStoreQueryRejected means the store refused a statement as
	// malformed. During querying this is a translation defect, surfaced
	// upward rather than retried.
	ErrStoreQueryRejected = errors.New("graph store rejected query")

	// ErrSchemaUnavailable means the graph holds no labels or properties.
	// Translation must not be attempted against an empty schema.
	ErrSchemaUnavailable = errors.New("graph schema unavailable: no data ingested")

	// ErrTranslationInvalid means the model output could not be parsed as a
	// query. One bounded retry with parse feedback applies before this
	// surfaces.
	ErrTranslationInvalid = errors.New("generated query is not valid")

	// ErrModelUnavailable means the completion service failed at the
	// transport level.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrModelTimeout means the completion call exceeded its deadline.
	ErrModelTimeout = errors.New("language model call timed out")
)
