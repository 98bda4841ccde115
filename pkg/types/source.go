package types

import (
	"path/filepath"
	"strings"
)

// Language identifies the programming language of a source file or chunk.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
	LangMarkdown   Language = "markdown"
	LangHTML       Language = "html"
	LangUnknown    Language = "unknown"
)

// extensionLanguages maps file extensions to languages. Files with any other
// extension are tagged LangUnknown but still ingested.
var extensionLanguages = map[string]Language{
	".py":   LangPython,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".go":   LangGo,
	".md":   LangMarkdown,
	".html": LangHTML,
	".htm":  LangHTML,
}

// DetectLanguage returns the language for a file path based on its extension.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}

// SourceFile is a file read once per ingestion run. It is never persisted;
// chunks derived from it are.
type SourceFile struct {
	Path     string // absolute path on disk
	RelPath  string // relative to the ingestion root, used as the chunk key prefix
	Content  []byte
	Language Language
}

// Name returns the display name for the file (its basename).
func (f *SourceFile) Name() string {
	return filepath.Base(f.Path)
}
