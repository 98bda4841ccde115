package types

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// Chunk represents a bounded slice of one source file's text, ready to be
// upserted into the graph store as a CodeChunk node.
//
// Chunks are keyed by ID (relative path plus ordinal) rather than by
// basename: two files sharing a basename in different directories must not
// overwrite each other's nodes. Name carries the basename purely for
// display.
type Chunk struct {
	ID       string // "<relpath>#<ordinal>", unique upsert key
	Name     string // file basename, display identifier
	Content  string
	Language Language

	// Provenance
	SourcePath string // relative path of the originating file
	Ordinal    int    // zero-based position within the file

	ContentHash [32]byte // SHA-256 of Content, for change detection
}

// NewChunk builds a chunk for the given slice of a source file.
func NewChunk(file *SourceFile, ordinal int, content string) Chunk {
	c := Chunk{
		ID:         fmt.Sprintf("%s#%d", file.RelPath, ordinal),
		Name:       file.Name(),
		Content:    content,
		Language:   file.Language,
		SourcePath: file.RelPath,
		Ordinal:    ordinal,
	}
	c.ContentHash = sha256.Sum256([]byte(content))
	return c
}

// Validate checks chunk integrity before it is handed to the graph writer.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return errors.New("chunk ID cannot be empty")
	}
	if c.Content == "" {
		return errors.New("chunk content cannot be empty")
	}
	if c.Ordinal < 0 {
		return errors.New("chunk ordinal must be non-negative")
	}
	if c.Language == "" {
		return errors.New("chunk language must be set")
	}
	return nil
}
