// Package scanner discovers candidate media: files in an entry's directory
// and inline references inside an entry's rich-text body.
package scanner

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fellrun/content-pipeline/internal/extractor"
	"github.com/fellrun/content-pipeline/internal/port"
)

type Scanner struct{}

// compile-time checks
var (
	_ port.DirectoryScanner = (*Scanner)(nil)
	_ port.DocumentScanner  = (*Scanner)(nil)
)

func New() *Scanner {
	return &Scanner{}
}

// ListImages enumerates regular files with a recognised image extension in
// dir. Order is the underlying filesystem enumeration order; it is not
// guaranteed sorted, and consumers needing stable ordering must sort.
func (s *Scanner) ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanner: error reading directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if extractor.IsImageFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// isRemote reports whether src is already an absolute or protocol-relative
// URL, which the pipeline must never touch.
func isRemote(src string) bool {
	return strings.HasPrefix(src, "http") || strings.HasPrefix(src, "//")
}

// resolveLocalPath maps a document src value onto the entry's directory,
// handling the four path styles authors use: an absolute-from-static-root
// prefix, an explicit ./ relative prefix, a ../ parent-relative prefix, and a
// bare relative path.
func resolveLocalPath(entryDir, src string) (filename, fullPath string) {
	switch {
	case strings.HasPrefix(src, "/static/"):
		filename = path.Base(src)
		fullPath = filepath.Join(entryDir, filename)
	case strings.HasPrefix(src, "./"):
		rel := strings.TrimPrefix(src, "./")
		filename = path.Base(rel)
		fullPath = filepath.Join(entryDir, rel)
	case strings.HasPrefix(src, "../"):
		filename = path.Base(src)
		fullPath = filepath.Join(entryDir, src)
	case !strings.HasPrefix(src, "/"):
		filename = path.Base(src)
		fullPath = filepath.Join(entryDir, src)
	default:
		filename = path.Base(src)
		fullPath = filepath.Join(entryDir, filename)
	}
	return filename, fullPath
}
