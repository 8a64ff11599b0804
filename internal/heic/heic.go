// Package heic converts HEIC-family images into a decodable intermediate
// form. Dimension and EXIF reads on raw HEIC buffers are unreliable, so the
// conversion runs before any other handling.
package heic

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/adrium/goheif"
)

const jpegQuality = 90

// ToJPEG decodes a HEIC buffer and re-encodes it as JPEG. Failure here is
// fatal for the file: there is no further fallback for an undecodable source.
func ToJPEG(data []byte) ([]byte, error) {
	// Use more memory, but prevent crashes on malformed tiles.
	goheif.SafeEncoding = true

	img, err := goheif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("heic: error decoding image: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("heic: error encoding intermediate jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
