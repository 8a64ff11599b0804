// Package extractor classifies media files and reads their intrinsic
// metadata: pixel dimensions, EXIF summary and orientation.
package extractor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/fellrun/content-pipeline/internal/heic"
	"github.com/fellrun/content-pipeline/internal/model"
)

type Kind string

const (
	KindUnknown Kind = "unknown"
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
)

// Fixed allow-lists. Unrecognised extensions are filtered out upstream by the
// scanner, not rejected here.
var (
	imageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".avif": true,
		".webp": true,
		".heic": true,
		".svg":  true,
	}
	videoExtensions = map[string]bool{
		".mp4":  true,
		".webm": true,
		".mov":  true,
		".avi":  true,
		".mkv":  true,
		".m4v":  true,
	}
)

// Classify determines the media kind from the file extension alone.
func Classify(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindUnknown
	}
}

func IsImageFile(filename string) bool { return Classify(filename) == KindImage }
func IsVideoFile(filename string) bool { return Classify(filename) == KindVideo }

// Info is the extracted source metadata for one media buffer. Width and
// Height are display-orientation dimensions: when the orientation tag swaps
// axes (values 5 through 8) they are already swapped here, so downstream
// consumers never see raw sensor geometry.
type Info struct {
	Kind        Kind
	Width       int
	Height      int
	Orientation int
	Vector      bool
	Exif        model.ExifSummary
	// Decodable holds the buffer standard decoders can read. For HEIC
	// sources it carries the converted intermediate; otherwise the input.
	Decodable []byte
}

// Extract reads kind, dimensions and tag metadata from a raw media buffer.
// Tag parse failure is non-fatal: the image proceeds tag-less with a warning
// logged by the caller. A HEIC conversion failure, in contrast, propagates.
func Extract(data []byte, filename string) (Info, error) {
	kind := Classify(filename)
	info := Info{Kind: kind, Decodable: data}
	if kind != KindImage {
		return info, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))

	// Vector sources have no intrinsic pixel size and carry no EXIF; the
	// transcoder rasterizes them at a fixed density.
	if ext == ".svg" {
		info.Vector = true
		return info, nil
	}

	if ext == ".heic" {
		converted, err := heic.ToJPEG(data)
		if err != nil {
			return Info{}, err
		}
		info.Decodable = converted
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(info.Decodable))
	if err != nil {
		return Info{}, fmt.Errorf("extractor: error decoding image config: %w", err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height

	summary, orientation, err := parseExif(data)
	if err != nil {
		// Corrupt metadata block: proceed tag-less.
		log.Printf("warning: failed reading exif data for %q: %v", filename, err)
		return info, nil
	}
	info.Exif = summary
	info.Orientation = orientation

	if OrientationSwapsAxes(orientation) {
		info.Width, info.Height = info.Height, info.Width
	}
	return info, nil
}

// OrientationSwapsAxes reports whether the given EXIF orientation value turns
// a landscape sensor frame into a portrait display frame or vice versa.
func OrientationSwapsAxes(orientation int) bool {
	return orientation >= 5 && orientation <= 8
}
