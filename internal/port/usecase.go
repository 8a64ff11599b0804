package port

import (
	"context"

	"github.com/fellrun/content-pipeline/internal/model"
)

// ImageConverter turns one local image file into a published MediaAsset,
// skipping the upload when the content-addressed key already exists.
type ImageConverter interface {
	ConvertImage(ctx context.Context, in ConvertImageInput) (ConvertImageOutput, error)
}
type ConvertImageInput struct {
	Dir      string
	Slug     string
	Filename string
}
type ConvertImageOutput struct {
	Asset         model.MediaAsset
	Skipped       bool
	BytesUploaded int64
}

// VideoUploader publishes one local video file referenced from an entry body.
type VideoUploader interface {
	UploadVideo(ctx context.Context, in UploadVideoInput) (UploadVideoOutput, error)
}
type UploadVideoInput struct {
	Dir      string
	Slug     string
	Filename string
}
type UploadVideoOutput struct {
	Video         model.MediaVideo
	Skipped       bool
	BytesUploaded int64
}

// FileStatus is the outcome of processing a single media file.
type FileStatus string

const (
	FileUploaded FileStatus = "uploaded"
	FileSkipped  FileStatus = "skipped"
	FileFailed   FileStatus = "failed"
)

// FileResult records one processed file, so the build can report exact
// failure counts and reasons instead of only log lines.
type FileResult struct {
	File          string     `json:"file"`
	Status        FileStatus `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	BytesUploaded int64      `json:"bytes_uploaded,omitempty"`
}

// EntryReport aggregates the per-file results for one transformed entry.
type EntryReport struct {
	Slug    string       `json:"slug"`
	Results []FileResult `json:"results"`
}

func (r *EntryReport) Add(file string, status FileStatus, reason string, bytes int64) {
	r.Results = append(r.Results, FileResult{File: file, Status: status, Reason: reason, BytesUploaded: bytes})
}

func (r *EntryReport) Count(status FileStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// RawEntry is a discovered, front-matter-parsed entry before any media
// resolution has happened.
type RawEntry struct {
	Kind        model.EntryKind
	Slug        string
	Dir         string
	Title       string
	Cover       string
	Featured    []string
	Body        string
	Created     string
	Updated     string
	Location    string
	Author      string
	Excerpt     string
	Description string
	Tags        []string
	Categories  []string
	Published   bool
}

// EntryTransformer drives the full per-entry pipeline: cover, gallery images,
// inline body media, derived fields. Per-file failures are isolated and
// reported, never fatal to the entry.
type EntryTransformer interface {
	TransformEntry(ctx context.Context, raw RawEntry) (*model.Entry, *EntryReport, error)
}
