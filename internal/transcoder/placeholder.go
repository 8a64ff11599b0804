package transcoder

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	// PlaceholderEdge is the fixed width of the blurred preview.
	PlaceholderEdge = 20
	// PlaceholderQuality is the lossy quality of the preview encoding.
	PlaceholderQuality = 50

	placeholderBlurSigma = 1.5
)

// makePlaceholder shrinks the already-oriented image to the placeholder
// edge, blurs it, and embeds it as a base64 WebP data URI.
func makePlaceholder(img image.Image) (string, error) {
	small := imaging.Resize(img, PlaceholderEdge, 0, imaging.Lanczos)
	small = imaging.Blur(small, placeholderBlurSigma)

	buf := &bytes.Buffer{}
	if err := webp.Encode(buf, small, &webp.Options{Quality: PlaceholderQuality}); err != nil {
		return "", err
	}
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
