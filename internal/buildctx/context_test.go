package buildctx

import (
	"context"
	"testing"
)

func TestEntrySlugRoundTrip(t *testing.T) {
	ctx := WithEntrySlug(context.Background(), "gallery/2024/dolomites")
	if got, ok := EntrySlugFromContext(ctx); !ok || got != "gallery/2024/dolomites" {
		t.Errorf("EntrySlugFromContext = (%q, %v)", got, ok)
	}
}

func TestEntrySlugAbsent(t *testing.T) {
	if got, ok := EntrySlugFromContext(context.Background()); ok || got != "" {
		t.Errorf("expected no slug, got (%q, %v)", got, ok)
	}
}
