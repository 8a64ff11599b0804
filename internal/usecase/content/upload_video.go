package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fellrun/content-pipeline/internal/logger"
	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
)

type videoUploaderSrv struct {
	strg port.Storage
}

// compile-time check: *videoUploaderSrv must satisfy port.VideoUploader
var _ port.VideoUploader = (*videoUploaderSrv)(nil)

// NewVideoUploader constructs a VideoUploader implementation.
func NewVideoUploader(strg port.Storage) port.VideoUploader {
	return &videoUploaderSrv{strg: strg}
}

// RemoteVideoKey derives the store key for a referenced video. Unlike
// images, the original extension is preserved.
func RemoteVideoKey(slug, filename string) string {
	return slug + "/" + filename
}

// UploadVideo publishes one local video file, skipping the upload when its
// key already exists on the store.
func (s *videoUploaderSrv) UploadVideo(ctx context.Context, in port.UploadVideoInput) (port.UploadVideoOutput, error) {
	if in.Dir == "" || in.Slug == "" || in.Filename == "" {
		return port.UploadVideoOutput{}, fmt.Errorf("content: dir, slug and filename are all required (got %q, %q, %q)", in.Dir, in.Slug, in.Filename)
	}

	key := RemoteVideoKey(in.Slug, in.Filename)
	publicURL := s.strg.PublicURL(key)

	info, err := s.strg.StatObject(ctx, key)
	if err == nil {
		video, err := model.VideoFromObjectMetadata(in.Filename, key, publicURL, info.UserMetadata)
		if err != nil {
			return port.UploadVideoOutput{}, fmt.Errorf("content: error reading metadata of existing object %q: %w", key, err)
		}
		logger.Infof(ctx, "object %q already published, skipping upload", key)
		return port.UploadVideoOutput{Video: video, Skipped: true}, nil
	}
	if !errors.Is(err, ErrObjectNotFound) {
		return port.UploadVideoOutput{}, err
	}

	fullPath := filepath.Join(in.Dir, in.Filename)
	stat, err := os.Stat(fullPath)
	if err != nil {
		return port.UploadVideoOutput{}, fmt.Errorf("content: error reading video file %q: %w", fullPath, err)
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	video := model.MediaVideo{
		Filename:     in.Filename,
		RemoteKey:    key,
		PublicURL:    publicURL,
		SizeBytes:    stat.Size(),
		Extension:    ext,
		MimeType:     model.VideoMimeType(ext),
		LastModified: stat.ModTime().UTC(),
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return port.UploadVideoOutput{}, fmt.Errorf("content: error opening video file %q: %w", fullPath, err)
	}
	defer func() { _ = f.Close() }()

	if err := s.strg.SaveObject(ctx, key, f, video.SizeBytes, video.MimeType, video.ToObjectMetadata()); err != nil {
		return port.UploadVideoOutput{}, err
	}
	logger.Infof(ctx, "uploaded %s -> %s", in.Filename, publicURL)

	return port.UploadVideoOutput{Video: video, BytesUploaded: video.SizeBytes}, nil
}
