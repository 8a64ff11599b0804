package content

import (
	"testing"

	"github.com/fellrun/content-pipeline/internal/port"
)

func TestBuildSummary_Counts(t *testing.T) {
	s := &BuildSummary{}

	r1 := &port.EntryReport{Slug: "gallery/2024/a"}
	r1.Add("a.jpg", port.FileUploaded, "", 100)
	r1.Add("b.jpg", port.FileSkipped, "", 0)
	s.Add(r1)

	r2 := &port.EntryReport{Slug: "posts/2024/b"}
	r2.Add("c.jpg", port.FileFailed, "decode failed", 0)
	r2.Add("d.mp4", port.FileUploaded, "", 250)
	s.Add(r2)

	if got := s.Count(port.FileUploaded); got != 2 {
		t.Errorf("uploaded = %d, want 2", got)
	}
	if got := s.Count(port.FileSkipped); got != 1 {
		t.Errorf("skipped = %d, want 1", got)
	}
	if got := s.Count(port.FileFailed); got != 1 {
		t.Errorf("failed = %d, want 1", got)
	}
	if got := s.BytesUploaded(); got != 350 {
		t.Errorf("bytes = %d, want 350", got)
	}

	failures := s.Failures()
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Slug != "posts/2024/b" || failures[0].Result.File != "c.jpg" {
		t.Errorf("unexpected failure detail: %+v", failures[0])
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s := &BuildSummary{}
	if s.Count(port.FileFailed) != 0 || s.BytesUploaded() != 0 || s.Failures() != nil {
		t.Error("empty summary must report zeroes")
	}
}
