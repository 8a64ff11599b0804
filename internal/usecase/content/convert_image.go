package content

import (
	"bytes"
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

type imageConverterSrv struct {
	strg  port.Storage
	trans port.ImageTranscoder
}

// compile-time check: *imageConverterSrv must satisfy port.ImageConverter
var _ port.ImageConverter = (*imageConverterSrv)(nil)

// NewImageConverter constructs an ImageConverter implementation.
func NewImageConverter(strg port.Storage, trans port.ImageTranscoder) port.ImageConverter {
	return &imageConverterSrv{strg: strg, trans: trans}
}

// RemoteImageKey derives the content-addressed store key for an image. It is
// a pure function of (entrySlug, filename stem): two builds over the same
// entry and file always compute the same key, which is what makes the
// skip-if-exists check sound.
func RemoteImageKey(slug, filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return slug + "/" + stem + ".webp"
}

// ConvertImage publishes one local image as a WebP asset. When the key is
// already present on the store, the upload is skipped and the existing
// object's metadata is deserialised into the same asset shape.
func (s *imageConverterSrv) ConvertImage(ctx context.Context, in port.ConvertImageInput) (port.ConvertImageOutput, error) {
	if in.Dir == "" || in.Slug == "" || in.Filename == "" {
		return port.ConvertImageOutput{}, fmt.Errorf("content: dir, slug and filename are all required (got %q, %q, %q)", in.Dir, in.Slug, in.Filename)
	}

	key := RemoteImageKey(in.Slug, in.Filename)
	publicURL := s.strg.PublicURL(key)

	info, err := s.strg.StatObject(ctx, key)
	if err == nil {
		asset, err := model.AssetFromObjectMetadata(in.Filename, key, publicURL, info.UserMetadata)
		if err != nil {
			return port.ConvertImageOutput{}, fmt.Errorf("content: error reading metadata of existing object %q: %w", key, err)
		}
		logger.Infof(ctx, "object %q already published, skipping upload", key)
		return port.ConvertImageOutput{Asset: asset, Skipped: true}, nil
	}
	if !errors.Is(err, ErrObjectNotFound) {
		return port.ConvertImageOutput{}, err
	}

	data, readName, err := readSourceFile(in.Dir, in.Filename)
	if err != nil {
		return port.ConvertImageOutput{}, err
	}

	res, err := s.trans.Transcode(data, readName)
	if err != nil && retriableDecode(in.Filename, readName) {
		// A differently-cased extension on a case-sensitive filesystem can
		// hide the real file; try the uppercase variant once.
		altName, altPath := uppercaseExtVariant(in.Dir, in.Filename)
		if altData, altErr := os.ReadFile(altPath); altErr == nil {
			res, err = s.trans.Transcode(altData, altName)
		}
	}
	if err != nil {
		return port.ConvertImageOutput{}, err
	}

	asset := model.MediaAsset{
		Filename:           in.Filename,
		RemoteKey:          key,
		PublicURL:          publicURL,
		Width:              res.Width,
		Height:             res.Height,
		PlaceholderDataURI: res.PlaceholderDataURI,
		PlaceholderWidth:   res.PlaceholderWidth,
		PlaceholderHeight:  res.PlaceholderHeight,
		Exif:               res.Exif,
	}
	meta, err := asset.ToObjectMetadata()
	if err != nil {
		return port.ConvertImageOutput{}, err
	}

	size := int64(len(res.WebP))
	if err := s.strg.SaveObject(ctx, key, bytes.NewReader(res.WebP), size, "image/webp", meta); err != nil {
		return port.ConvertImageOutput{}, err
	}
	logger.Infof(ctx, "uploaded %s -> %s", in.Filename, publicURL)

	return port.ConvertImageOutput{Asset: asset, BytesUploaded: size}, nil
}

// readSourceFile reads the source image, falling back to an
// uppercase-extension sibling when the expected path is unreadable.
func readSourceFile(dir, filename string) ([]byte, string, error) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err == nil {
		return data, filename, nil
	}

	altName, altPath := uppercaseExtVariant(dir, filename)
	if altName == filename {
		return nil, "", fmt.Errorf("content: error reading source file %q: %w", filename, err)
	}
	altData, altErr := os.ReadFile(altPath)
	if altErr != nil {
		return nil, "", fmt.Errorf("content: error reading source file %q: %w", filename, err)
	}
	return altData, altName, nil
}

func uppercaseExtVariant(dir, filename string) (name, fullPath string) {
	ext := filepath.Ext(filename)
	name = strings.TrimSuffix(filename, ext) + strings.ToUpper(ext)
	return name, filepath.Join(dir, name)
}

// retriableDecode reports whether a decode failure may be retried via the
// uppercase-extension fallback. HEIC and SVG failures are conversion
// failures, not case mismatches, and always propagate.
func retriableDecode(requested, read string) bool {
	switch strings.ToLower(filepath.Ext(requested)) {
	case ".heic", ".svg":
		return false
	}
	alt, _ := uppercaseExtVariant("", requested)
	return read != alt
}
