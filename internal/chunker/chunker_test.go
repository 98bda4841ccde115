package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codegraph/pkg/types"
)

func pyFile(rel, content string) *types.SourceFile {
	return &types.SourceFile{
		Path:     "/src/" + rel,
		RelPath:  rel,
		Content:  []byte(content),
		Language: types.LangPython,
	}
}

func TestChunkFile_SmallFileSingleChunk(t *testing.T) {
	c := New(Config{MaxSize: 1000})
	file := pyFile("a.py", "def f(): pass")

	chunks := c.ChunkFile(file)

	require.Len(t, chunks, 1)
	assert.Equal(t, "a.py#0", chunks[0].ID)
	assert.Equal(t, "a.py", chunks[0].Name)
	assert.Equal(t, "def f(): pass", chunks[0].Content)
	assert.Equal(t, types.LangPython, chunks[0].Language)
}

func TestChunkFile_SizeInvariant(t *testing.T) {
	c := New(Config{MaxSize: 50})

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("def handler(): return 1\n\n")
	}
	chunks := c.ChunkFile(pyFile("big.py", b.String()))

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 50, "chunk %s exceeds max size", chunk.ID)
	}
}

func TestChunkFile_OrdinalsAreSequential(t *testing.T) {
	c := New(Config{MaxSize: 30})
	chunks := c.ChunkFile(pyFile("big.py", strings.Repeat("line one\nline two\n", 20)))

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Ordinal)
	}
}

func TestChunkFile_PrefersSemanticBoundaries(t *testing.T) {
	c := New(Config{MaxSize: 60})
	content := "def first():\n    return 1\n\ndef second():\n    return 2\n\ndef third():\n    return 3\n"

	chunks := c.ChunkFile(pyFile("funcs.py", content))

	require.Greater(t, len(chunks), 1)
	// Splits should land at paragraph or def boundaries, so no chunk starts
	// mid-word.
	for _, chunk := range chunks[1:] {
		assert.False(t, strings.HasPrefix(chunk.Content, "eturn"), "chunk split mid-word: %q", chunk.Content)
	}
}

func TestChunkFile_UnknownLanguageStillChunked(t *testing.T) {
	c := New(Config{MaxSize: 40})
	file := &types.SourceFile{
		Path:     "/src/data.cfg",
		RelPath:  "data.cfg",
		Content:  []byte(strings.Repeat("key = value\n", 20)),
		Language: types.DetectLanguage("data.cfg"),
	}
	require.Equal(t, types.LangUnknown, file.Language)

	chunks := c.ChunkFile(file)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, types.LangUnknown, chunk.Language)
		assert.LessOrEqual(t, len(chunk.Content), 40)
	}
}

func TestChunkFile_Overlap(t *testing.T) {
	c := New(Config{MaxSize: 40, Overlap: 10})
	content := strings.Repeat("abcdefghij", 20) // no separators, hard cuts
	chunks := c.ChunkFile(pyFile("blob.py", content))

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		tail := prev[len(prev)-10:]
		assert.True(t, strings.HasPrefix(chunks[i].Content, tail),
			"chunk %d does not share %d chars with its predecessor", i, 10)
	}
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 40)
	}
}

func TestChunkFile_MultiByteContentStaysValidUTF8(t *testing.T) {
	c := New(Config{MaxSize: 1000})
	// 1800 bytes of 3-byte runes with no separators: every cut is a hard cut.
	content := strings.Repeat("世", 600)

	chunks := c.ChunkFile(pyFile("prose.py", content))

	require.Greater(t, len(chunks), 1)
	var rejoined strings.Builder
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk.Content), "chunk %s is not valid UTF-8", chunk.ID)
		assert.LessOrEqual(t, len(chunk.Content), 1000)
		rejoined.WriteString(chunk.Content)
	}
	assert.Equal(t, content, rejoined.String(), "hard cuts must not drop or mangle bytes")
}

func TestChunkFile_OverlapLandsOnRuneBoundary(t *testing.T) {
	c := New(Config{MaxSize: 100, Overlap: 10})
	content := strings.Repeat("é", 120) // 2-byte runes, 240 bytes

	chunks := c.ChunkFile(pyFile("accents.py", content))

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk.Content), "chunk %s is not valid UTF-8", chunk.ID)
	}
}

func TestChunkFile_EmptyFile(t *testing.T) {
	c := New(Config{})
	assert.Empty(t, c.ChunkFile(pyFile("empty.py", "")))
}

func TestChunkAll_NoCrossFileBoundaries(t *testing.T) {
	c := New(Config{MaxSize: 1000})
	files := []*types.SourceFile{
		pyFile("a.py", "def f(): pass"),
		pyFile("b.py", "def g(): pass"),
	}

	chunks := c.ChunkAll(files)

	require.Len(t, chunks, 2)
	assert.Equal(t, "a.py#0", chunks[0].ID)
	assert.Equal(t, "b.py#0", chunks[1].ID)
	assert.Equal(t, "def f(): pass", chunks[0].Content)
	assert.Equal(t, "def g(): pass", chunks[1].Content)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultMaxSize, c.maxSize)
	assert.Equal(t, DefaultOverlap, c.overlap)

	// Overlap >= maxSize would stall the walk; it resets to the default.
	c = New(Config{MaxSize: 10, Overlap: 10})
	assert.Equal(t, DefaultOverlap, c.overlap)
}
