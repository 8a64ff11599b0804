package port

import "github.com/fellrun/content-pipeline/internal/model"

// TranscodedImage is the result of normalising one source image: the WebP
// delivery bytes, the post-correction (and post-resize) dimensions, the
// embedded blurred placeholder, and the retained EXIF summary.
type TranscodedImage struct {
	WebP               []byte
	Width              int
	Height             int
	PlaceholderDataURI string
	PlaceholderWidth   int
	PlaceholderHeight  int
	Exif               model.ExifSummary
}

// ImageTranscoder converts a raw source image into the delivery format.
// The filename selects format handling (HEIC pre-conversion, SVG
// rasterization, EXIF skip for vectors).
type ImageTranscoder interface {
	Transcode(data []byte, filename string) (*TranscodedImage, error)
}
