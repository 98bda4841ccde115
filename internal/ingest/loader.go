package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/codegraph/pkg/types"
)

// DiscoverFiles walks root and returns every regular file worth ingesting.
// Hidden directories and files are skipped, as are a few well-known
// non-source artifacts. Unrecognized extensions are kept; language detection
// tags them unknown later rather than dropping them.
func DiscoverFiles(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := info.Name()
		if info.IsDir() {
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			if name == "vendor" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || skipBasenames[name] {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// skipBasenames lists files that carry no answerable content.
var skipBasenames = map[string]bool{
	"LICENSE": true,
	"go.sum":  true,
}

// ReadSourceFile reads one file and tags its language. Content that is not
// valid UTF-8 text yields ErrDecode; the caller records the diagnostic and
// moves on.
func ReadSourceFile(root, path string) (*types.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, types.ErrDecode)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relativize %s: %w", path, err)
	}

	return &types.SourceFile{
		Path:     path,
		RelPath:  filepath.ToSlash(rel),
		Content:  content,
		Language: types.DetectLanguage(path),
	}, nil
}
