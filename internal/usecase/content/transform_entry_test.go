package content

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
)

func newTestTransformer(conv *mockConverter, vids *mockUploader, dirs *mockDirScanner, docs *mockDocScanner) port.EntryTransformer {
	if conv == nil {
		conv = &mockConverter{}
	}
	if vids == nil {
		vids = &mockUploader{}
	}
	if dirs == nil {
		dirs = &mockDirScanner{}
	}
	if docs == nil {
		docs = &mockDocScanner{}
	}
	return NewEntryTransformer(conv, vids, dirs, docs)
}

func TestTransformEntry_MissingArgs(t *testing.T) {
	svc := newTestTransformer(nil, nil, nil, nil)

	_, _, err := svc.TransformEntry(context.Background(), port.RawEntry{Slug: "gallery/2024/x"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestTransformEntry_DerivedFields(t *testing.T) {
	cases := []struct {
		kind          model.EntryKind
		slug          string
		wantYear      string
		wantParams    string
		wantPermalink string
	}{
		{model.EntryKindGallery, "gallery/2024/dolomites", "2024", "2024/dolomites", "/gallery/2024/dolomites"},
		{model.EntryKindPost, "posts/2023/trail-notes", "2023", "2023/trail-notes", "/posts/2023/trail-notes"},
		{model.EntryKindRace, "races/2022/utmb", "2022", "2022/utmb", "/races/2022/utmb"},
	}
	svc := newTestTransformer(nil, nil, nil, nil)
	for _, c := range cases {
		entry, _, err := svc.TransformEntry(context.Background(), port.RawEntry{Kind: c.kind, Slug: c.slug, Dir: "d"})
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", c.slug, err)
		}
		if entry.Year != c.wantYear {
			t.Errorf("%s: year = %q, want %q", c.slug, entry.Year, c.wantYear)
		}
		if entry.SlugAsParams != c.wantParams {
			t.Errorf("%s: slugAsParams = %q, want %q", c.slug, entry.SlugAsParams, c.wantParams)
		}
		if entry.Permalink != c.wantPermalink {
			t.Errorf("%s: permalink = %q, want %q", c.slug, entry.Permalink, c.wantPermalink)
		}
	}
}

func TestTransformEntry_YearDefaultsToCurrent(t *testing.T) {
	svc := newTestTransformer(nil, nil, nil, nil)

	entry, _, err := svc.TransformEntry(context.Background(), port.RawEntry{Kind: model.EntryKindPost, Slug: "drafts", Dir: "d"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := strconv.Itoa(time.Now().Year()); entry.Year != want {
		t.Errorf("year = %q, want %q", entry.Year, want)
	}
}

func TestTransformEntry_CoverFailureIsolated(t *testing.T) {
	conv := &mockConverter{errs: map[string]error{"cover.jpg": errors.New("decode failed")}}
	svc := newTestTransformer(conv, nil, nil, nil)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindPost, Slug: "posts/2024/x", Dir: "d", Cover: "cover.jpg",
	})
	if err != nil {
		t.Fatalf("a cover failure must not fail the entry, got %v", err)
	}
	if entry.Cover != nil {
		t.Error("expected no cover on the entry")
	}
	if report.Count(port.FileFailed) != 1 {
		t.Errorf("expected 1 failed file, got %d", report.Count(port.FileFailed))
	}
}

func TestTransformEntry_GalleryImages(t *testing.T) {
	dirs := &mockDirScanner{files: []string{"b.jpg", "a.jpg", "c.jpg"}}
	conv := &mockConverter{}
	svc := newTestTransformer(conv, nil, dirs, nil)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindGallery, Slug: "gallery/2024/x", Dir: "d",
		Featured: []string{"a.jpg"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entry.Images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(entry.Images))
	}
	// enumeration order preserved, featuring does not reorder
	if entry.Images[0].Filename != "b.jpg" || entry.Images[1].Filename != "a.jpg" {
		t.Errorf("unexpected image order: %v", entry.Images)
	}
	if !entry.Images[1].IsFeatured {
		t.Error("expected a.jpg to be featured")
	}
	if entry.Images[0].IsFeatured || entry.Images[2].IsFeatured {
		t.Error("unexpected featured flags")
	}
	if report.Count(port.FileUploaded) != 3 {
		t.Errorf("expected 3 uploaded files, got %d", report.Count(port.FileUploaded))
	}
}

func TestTransformEntry_GalleryListErrorIsFatal(t *testing.T) {
	dirs := &mockDirScanner{err: errors.New("permission denied")}
	svc := newTestTransformer(nil, nil, dirs, nil)

	_, _, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindGallery, Slug: "gallery/2024/x", Dir: "d",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestTransformEntry_GalleryPartialFailure(t *testing.T) {
	dirs := &mockDirScanner{files: []string{"a.jpg", "broken.jpg", "c.jpg"}}
	conv := &mockConverter{errs: map[string]error{"broken.jpg": errors.New("decode failed")}}
	svc := newTestTransformer(conv, nil, dirs, nil)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindGallery, Slug: "gallery/2024/x", Dir: "d",
	})
	if err != nil {
		t.Fatalf("a per-file failure must not fail the entry, got %v", err)
	}
	if len(entry.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(entry.Images))
	}
	if report.Count(port.FileFailed) != 1 || report.Count(port.FileUploaded) != 2 {
		t.Errorf("unexpected report counts: %+v", report)
	}
	if len(conv.calls) != 3 {
		t.Errorf("expected all 3 files attempted, got %v", conv.calls)
	}
}

func TestTransformEntry_SkippedFilesReported(t *testing.T) {
	dirs := &mockDirScanner{files: []string{"a.jpg"}}
	conv := &mockConverter{outs: map[string]port.ConvertImageOutput{
		"a.jpg": {Asset: model.MediaAsset{Filename: "a.jpg"}, Skipped: true},
	}}
	svc := newTestTransformer(conv, nil, dirs, nil)

	_, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindGallery, Slug: "gallery/2024/x", Dir: "d",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Count(port.FileSkipped) != 1 || report.Count(port.FileUploaded) != 0 {
		t.Errorf("unexpected report counts: %+v", report)
	}
}

func TestTransformEntry_BodyVideos(t *testing.T) {
	docs := &mockDocScanner{videoSources: []string{"./clips/run.mp4"}}
	vids := &mockUploader{}
	svc := newTestTransformer(nil, vids, nil, docs)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindPost, Slug: "posts/2024/x", Dir: "d",
		Body: `<video src="./clips/run.mp4"></video>`,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vids.calls) != 1 || vids.calls[0] != "run.mp4" {
		t.Errorf("expected upload of the base name, got %v", vids.calls)
	}
	if len(entry.Videos) != 1 {
		t.Fatalf("expected 1 video on the entry, got %d", len(entry.Videos))
	}
	want := "https://cdn.example.com/posts/2024/x/run.mp4"
	if got := docs.rewrittenVideos["./clips/run.mp4"]; got != want {
		t.Errorf("resolved map = %v, want %q for the original src", docs.rewrittenVideos, want)
	}
	if report.Count(port.FileUploaded) != 1 {
		t.Errorf("unexpected report counts: %+v", report)
	}
}

func TestTransformEntry_BodyVideoFailureIsolated(t *testing.T) {
	docs := &mockDocScanner{videoSources: []string{"./bad.mp4", "./good.mp4"}}
	vids := &mockUploader{errs: map[string]error{"bad.mp4": errors.New("file missing")}}
	svc := newTestTransformer(nil, vids, nil, docs)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindPost, Slug: "posts/2024/x", Dir: "d", Body: "body",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entry.Videos) != 1 {
		t.Fatalf("expected 1 video, got %d", len(entry.Videos))
	}
	if report.Count(port.FileFailed) != 1 || report.Count(port.FileUploaded) != 1 {
		t.Errorf("unexpected report counts: %+v", report)
	}
	if _, ok := docs.rewrittenVideos["./bad.mp4"]; ok {
		t.Error("failed video must not appear in the resolved map")
	}
}

func TestTransformEntry_BodyRewritten(t *testing.T) {
	docs := &mockDocScanner{inlineImages: []string{"inline.jpg"}}
	conv := &mockConverter{}
	svc := newTestTransformer(conv, nil, nil, docs)

	entry, report, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindPost, Slug: "posts/2024/x", Dir: "d", Body: "original",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Body != "rewritten:original" {
		t.Errorf("unexpected body %q", entry.Body)
	}
	if report.Count(port.FileUploaded) != 1 {
		t.Errorf("unexpected report counts: %+v", report)
	}
}

func TestTransformEntry_UnparseableBodyDegrades(t *testing.T) {
	docs := &mockDocScanner{rewriteErr: errors.New("parse failed")}
	svc := newTestTransformer(nil, nil, nil, docs)

	entry, _, err := svc.TransformEntry(context.Background(), port.RawEntry{
		Kind: model.EntryKindPost, Slug: "posts/2024/x", Dir: "d", Body: "original",
	})
	if err != nil {
		t.Fatalf("an unparseable body must not fail the entry, got %v", err)
	}
	if entry.Body != "original" {
		t.Errorf("expected the original body to survive, got %q", entry.Body)
	}
}
