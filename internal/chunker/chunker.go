package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/codegraph/pkg/types"
)

const (
	// DefaultMaxSize is the maximum chunk content length in bytes.
	DefaultMaxSize = 1000

	// DefaultOverlap is the number of characters shared between consecutive
	// chunks. Zero means no repetition between adjacent chunks.
	DefaultOverlap = 0
)

// languageSeparators lists preferred split points per language, most
// semantic first. The walk cuts at the last occurrence of the highest
// priority separator inside the size window, so chunks tend to break at
// declaration or paragraph boundaries instead of mid-line.
var languageSeparators = map[types.Language][]string{
	types.LangPython:     {"\nclass ", "\ndef ", "\n\tdef ", "\n\n", "\n", " "},
	types.LangJavaScript: {"\nfunction ", "\nclass ", "\nconst ", "\nlet ", "\n\n", "\n", " "},
	types.LangGo:         {"\nfunc ", "\ntype ", "\nvar ", "\nconst ", "\n\n", "\n", " "},
	types.LangMarkdown:   {"\n## ", "\n# ", "\n\n", "\n", " "},
	types.LangHTML:       {"</div>", "</p>", "\n\n", "\n", " "},
}

// genericSeparators is the line-bounded fallback for unrecognized languages.
// Unknown files are never dropped; they just get the generic strategy.
var genericSeparators = []string{"\n\n", "\n", " "}

// Config controls chunk sizing.
type Config struct {
	MaxSize int // maximum chunk content length (default DefaultMaxSize)
	Overlap int // characters shared between consecutive chunks (default 0)
}

// Chunker splits source files into bounded, language-tagged chunks.
type Chunker struct {
	maxSize int
	overlap int
}

// New creates a Chunker, applying defaults for unset config values.
func New(cfg Config) *Chunker {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxSize {
		cfg.Overlap = DefaultOverlap
	}
	return &Chunker{maxSize: cfg.MaxSize, overlap: cfg.Overlap}
}

// ChunkAll chunks every file in order. Chunk boundaries never cross file
// boundaries.
func (c *Chunker) ChunkAll(files []*types.SourceFile) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(files))
	for _, f := range files {
		chunks = append(chunks, c.ChunkFile(f)...)
	}
	return chunks
}

// ChunkFile splits one file into chunks no longer than MaxSize. Files below
// MaxSize yield exactly one chunk.
func (c *Chunker) ChunkFile(file *types.SourceFile) []types.Chunk {
	content := string(file.Content)
	if content == "" {
		return nil
	}

	seps, ok := languageSeparators[file.Language]
	if !ok {
		seps = genericSeparators
	}

	slices := c.splitBounded(content, seps)
	chunks := make([]types.Chunk, 0, len(slices))
	for i, s := range slices {
		chunks = append(chunks, types.NewChunk(file, i, s))
	}
	return chunks
}

// splitBounded walks content producing contiguous slices no longer than
// maxSize, with overlap characters shared between consecutive slices.
func (c *Chunker) splitBounded(content string, seps []string) []string {
	if len(content) <= c.maxSize {
		return []string{content}
	}

	var out []string
	start := 0
	for start < len(content) {
		end := start + c.maxSize
		if end >= len(content) {
			out = appendNonEmpty(out, content[start:])
			break
		}

		cut := findCut(content, start, end, seps)
		out = appendNonEmpty(out, content[start:cut])

		next := runeFloor(content, cut-c.overlap)
		if next <= start {
			// Overlap would stall the walk; advance without it.
			next = cut
		}
		start = next
	}
	return out
}

// findCut returns the end offset for the slice starting at start, preferring
// the last occurrence of the highest priority separator in the window. Falls
// back to a hard cut at the size boundary, backed off to a rune boundary so
// a window without separators never slices a multi-byte rune in half.
func findCut(content string, start, end int, seps []string) int {
	window := content[start:end]
	for _, sep := range seps {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}
	if b := runeFloor(content, end); b > start {
		return b
	}
	return end
}

// runeFloor backs i off to the nearest rune boundary at or before it.
func runeFloor(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func appendNonEmpty(out []string, s string) []string {
	if strings.TrimSpace(s) == "" {
		return out
	}
	return append(out, s)
}
