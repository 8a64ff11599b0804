package model

import (
	"reflect"
	"testing"
	"time"
)

func TestVideoMimeType(t *testing.T) {
	cases := map[string]string{
		".mp4":  "video/mp4",
		".MP4":  "video/mp4",
		"mp4":   "video/mp4",
		".webm": "video/webm",
		".mov":  "video/quicktime",
		".avi":  "video/x-msvideo",
		".mkv":  "video/x-matroska",
		".m4v":  "video/x-m4v",
		".xyz":  "video/mp4",
		"":      "video/mp4",
	}
	for ext, want := range cases {
		if got := VideoMimeType(ext); got != want {
			t.Errorf("VideoMimeType(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestVideoObjectMetadataRoundTrip(t *testing.T) {
	video := MediaVideo{
		Filename:     "run.mp4",
		RemoteKey:    "posts/2024/x/run.mp4",
		PublicURL:    "https://cdn.example.com/posts/2024/x/run.mp4",
		SizeBytes:    1048576,
		Extension:    ".mp4",
		MimeType:     "video/mp4",
		LastModified: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	got, err := VideoFromObjectMetadata(video.Filename, video.RemoteKey, video.PublicURL, video.ToObjectMetadata())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(got, video) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, video)
	}
}

func TestVideoFromObjectMetadata_BadValues(t *testing.T) {
	if _, err := VideoFromObjectMetadata("a.mp4", "k", "u", map[string]string{MetaSizeBytes: "big"}); err == nil {
		t.Error("expected error for a non-numeric size")
	}
	if _, err := VideoFromObjectMetadata("a.mp4", "k", "u", map[string]string{MetaLastModified: "yesterday"}); err == nil {
		t.Error("expected error for an unparseable timestamp")
	}
}
