package model

import "strings"

type EntryKind string

const (
	EntryKindGallery EntryKind = "gallery"
	EntryKindPost    EntryKind = "post"
	EntryKindRace    EntryKind = "race"
)

// Tag is a structured tag record. Posts may also carry plain string tags; the
// two forms have separate merge helpers in the content package.
type Tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Entry is one transformed content unit (gallery, post, or race report),
// ready for the presentation layer. All fields are recomputed on every build.
type Entry struct {
	Kind         EntryKind `json:"kind"`
	Slug         string    `json:"slug"`
	SlugAsParams string    `json:"slug_as_params"`
	Permalink    string    `json:"permalink"`
	Title        string    `json:"title"`
	Year         string    `json:"year"`
	Created      string    `json:"created,omitempty"`
	Updated      string    `json:"updated,omitempty"`
	Location     string    `json:"location,omitempty"`
	Author       string    `json:"author,omitempty"`
	Excerpt      string    `json:"excerpt,omitempty"`
	Description  string    `json:"description,omitempty"`
	Published    bool      `json:"published"`

	Cover  *MediaAsset  `json:"cover,omitempty"`
	Images []MediaAsset `json:"images,omitempty"`
	Videos []MediaVideo `json:"videos,omitempty"`
	Body   string       `json:"body,omitempty"`

	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
