// Package buildctx carries per-entry build state through context, so log
// lines emitted deep in the pipeline can be attributed to the entry being
// processed.
package buildctx

import "context"

type ctxKey int

const entrySlugKey ctxKey = iota

// WithEntrySlug returns a context tagged with the slug of the entry currently
// being transformed.
func WithEntrySlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, entrySlugKey, slug)
}

// EntrySlugFromContext returns the current entry slug, if any.
func EntrySlugFromContext(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(entrySlugKey).(string)
	return slug, ok
}
