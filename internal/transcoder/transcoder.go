// Package transcoder normalises source images into the fixed delivery
// format: orientation-corrected, bounded-edge WebP plus a small blurred
// placeholder encoded as a data URI.
package transcoder

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/fellrun/content-pipeline/internal/extractor"
	"github.com/fellrun/content-pipeline/internal/port"
)

const (
	// MaxEdge bounds the longer edge of the delivered asset. Images already
	// under the bound are never upscaled.
	MaxEdge = 3840
	// WebPQuality is the lossy quality for the main asset.
	WebPQuality = 80
)

type Transcoder struct{}

// compile-time check: *Transcoder must satisfy port.ImageTranscoder
var _ port.ImageTranscoder = (*Transcoder)(nil)

func New() *Transcoder {
	return &Transcoder{}
}

// Transcode converts one raw source image. HEIC sources are pre-converted
// and SVG sources rasterized before decoding; failure of either pre-step is
// fatal for the file and propagates.
func (t *Transcoder) Transcode(data []byte, filename string) (*port.TranscodedImage, error) {
	info, err := extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}
	if info.Kind != extractor.KindImage {
		return nil, fmt.Errorf("transcoder: %q is not an image", filename)
	}

	decodable := info.Decodable
	if info.Vector {
		decodable, err = rasterizeSVG(data)
		if err != nil {
			return nil, err
		}
	}

	img, err := imaging.Decode(bytes.NewReader(decodable))
	if err != nil {
		return nil, fmt.Errorf("transcoder: error decoding %q: %w", filename, err)
	}

	// Orientation first, then resize: the edge bound applies to display
	// geometry.
	nrgba := applyOrientation(img, info.Orientation)
	nrgba = clampLongerEdge(nrgba, MaxEdge)
	img = nrgba

	bounds := img.Bounds()
	finalW, finalH := bounds.Dx(), bounds.Dy()

	buf := &bytes.Buffer{}
	if err := webp.Encode(buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, fmt.Errorf("transcoder: error encoding WebP for %q: %w", filename, err)
	}

	placeholder, err := makePlaceholder(img)
	if err != nil {
		return nil, fmt.Errorf("transcoder: error generating placeholder for %q: %w", filename, err)
	}

	return &port.TranscodedImage{
		WebP:               buf.Bytes(),
		Width:              finalW,
		Height:             finalH,
		PlaceholderDataURI: placeholder,
		PlaceholderWidth:   PlaceholderEdge,
		PlaceholderHeight:  placeholderHeight(finalW, finalH),
		Exif:               info.Exif,
	}, nil
}

// applyOrientation performs the geometric correction the orientation tag
// demands. Rotation degrees follow the capture convention (clockwise);
// imaging rotates counter-clockwise, hence the inverted constants.
func applyOrientation(img image.Image, orientation int) *image.NRGBA {
	switch orientation {
	case 2: // horizontal flip
		return imaging.FlipH(img)
	case 3: // 180 degree rotation
		return imaging.Rotate180(img)
	case 5: // horizontal flip + 270 degree rotation
		return imaging.Rotate90(imaging.FlipH(img))
	case 6: // 90 degree rotation
		return imaging.Rotate270(img)
	case 7: // horizontal flip + 90 degree rotation
		return imaging.Rotate270(imaging.FlipH(img))
	case 8: // 270 degree rotation
		return imaging.Rotate90(img)
	default: // 1, absent, or out of range: identity
		return imaging.Clone(img)
	}
}

// clampLongerEdge shrinks the image so its longer edge fits maxEdge,
// preserving aspect ratio. A resize call with the current size would be a
// wasteful re-sample, and a naive call could upscale, so images already
// within the bound are returned untouched.
func clampLongerEdge(img *image.NRGBA, maxEdge int) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w > h {
		if w <= maxEdge {
			return img
		}
		return imaging.Resize(img, maxEdge, 0, imaging.Lanczos)
	}
	if h <= maxEdge {
		return img
	}
	return imaging.Resize(img, 0, maxEdge, imaging.Lanczos)
}

func placeholderHeight(finalW, finalH int) int {
	if finalW == 0 {
		return 0
	}
	return int(math.Round(float64(PlaceholderEdge) / float64(finalW) * float64(finalH)))
}
