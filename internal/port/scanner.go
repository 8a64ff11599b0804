package port

import "github.com/fellrun/content-pipeline/internal/model"

// ImageResolver converts one local image file into a published asset. The
// document scanner calls it for every inline reference it resolves.
type ImageResolver func(dir, filename string) (*model.MediaAsset, error)

// DirectoryScanner enumerates candidate media files for an entry.
type DirectoryScanner interface {
	// ListImages returns the base names of regular files in dir carrying a
	// recognised image extension, in filesystem enumeration order. That order
	// is not guaranteed sorted; consumers needing stable ordering must sort.
	ListImages(dir string) ([]string, error)
}

// DocumentScanner finds and rewrites inline media references in an entry body.
type DocumentScanner interface {
	// InlineVideoSources returns the src values of local video references,
	// collected by both extraction strategies (structured-call syntax and
	// literal markup tags). Absolute (http/https/protocol-relative) sources
	// and non-video extensions are excluded.
	InlineVideoSources(body string) []string

	// RewriteInlineImages walks the parsed document tree, resolves each local
	// src against the entry directory, and rewrites the element in place with
	// the resolved URL, dimensions, placeholder and lazy-load hints.
	// References to nonexistent files are skipped with a warning.
	RewriteInlineImages(body, entryDir string, resolve ImageResolver) (string, error)

	// RewriteVideoSources replaces each resolved src value with its public
	// URL: structurally for markup tags, literally for the call syntax.
	RewriteVideoSources(body string, resolved map[string]string) string
}
