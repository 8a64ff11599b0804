package content

import (
	"strings"

	"github.com/fellrun/content-pipeline/internal/model"
)

// Two explicit merge functions, selected by the caller. Tag collections come
// in two shapes (plain names on posts, structured records on curated lists)
// and the shape is known statically at every call site.

// MergeTagNames deduplicates plain string tags across groups, preserving
// first-seen order.
func MergeTagNames(groups ...[]string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, group := range groups {
		for _, name := range group {
			if !seen[name] {
				seen[name] = true
				merged = append(merged, name)
			}
		}
	}
	return merged
}

// TagFromName derives a structured tag record from a plain name.
func TagFromName(name string) model.Tag {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return model.Tag{Slug: slug, Name: name}
}

// MergeTags deduplicates structured tag records by slug; the first record
// seen for a slug wins.
func MergeTags(groups ...[]model.Tag) []model.Tag {
	seen := make(map[string]bool)
	var merged []model.Tag
	for _, group := range groups {
		for _, tag := range group {
			if !seen[tag.Slug] {
				seen[tag.Slug] = true
				merged = append(merged, tag)
			}
		}
	}
	return merged
}
