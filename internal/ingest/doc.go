// Package ingest turns a directory of mixed-language source files into
// CodeChunk nodes and SAME_LANGUAGE relationships in the graph store.
//
// The pipeline is discover -> read -> chunk -> upsert, run across a bounded
// worker pool; per-file ordering does not matter. Relationship derivation is
// the one step with an ordering requirement: it runs strictly after every
// upsert in the run has completed, because it depends on the full post-run
// node set.
//
// Failure policy: a file that cannot be decoded, or a chunk whose upsert the
// store rejects, is recorded on the run's Report and skipped. Only context
// cancellation or a failure of the derivation step itself aborts a run.
package ingest
