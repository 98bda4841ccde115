// Package chunker splits raw source files into bounded, language-tagged
// text chunks for graph ingestion.
//
// Chunking is line/character-bounded, not syntax-aware: each language gets a
// preference-ordered separator list, and the splitter cuts at the last
// separator occurrence inside the size window. Files whose language is not
// recognized are chunked with a generic line-bounded strategy rather than
// dropped.
//
//	c := chunker.New(chunker.Config{MaxSize: 1000})
//	chunks := c.ChunkAll(files)
//
// Invariants: every chunk's content length is at most MaxSize, and chunk
// boundaries never cross file boundaries.
package chunker
