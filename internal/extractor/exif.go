package extractor

import (
	"errors"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/fellrun/content-pipeline/internal/model"
)

// parseExif pulls the retained tag subset and the orientation value out of a
// raw image buffer. Absence of an EXIF block is not an error; a zero
// orientation means "no correction".
func parseExif(data []byte) (model.ExifSummary, int, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return model.ExifSummary{}, 0, nil
		}
		return model.ExifSummary{}, 0, fmt.Errorf("extractor: error locating exif data: %w", err)
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return model.ExifSummary{}, 0, fmt.Errorf("extractor: error parsing exif data: %w", err)
	}

	var summary model.ExifSummary
	orientation := 0
	for _, t := range tags {
		switch t.TagName {
		case "Make":
			summary.Make = t.FormattedFirst
		case "Model":
			summary.Model = t.FormattedFirst
		case "DateTimeOriginal":
			summary.DateTimeOriginal = t.FormattedFirst
		case "ExposureTime":
			summary.ExposureTime = t.FormattedFirst
		case "FNumber":
			summary.FNumber = t.FormattedFirst
		case "ISOSpeedRatings":
			summary.ISO = t.FormattedFirst
		case "FocalLength":
			summary.FocalLength = t.FormattedFirst
		case "Orientation":
			orientation = orientationValue(t.Value)
		}
	}
	return summary, orientation, nil
}

// orientationValue tolerates the encodings seen in the wild: a uint16 slice,
// a bare uint16, or garbage (treated as no orientation).
func orientationValue(v interface{}) int {
	if vals, ok := v.([]uint16); ok && len(vals) > 0 {
		return int(vals[0])
	}
	if val, ok := v.(uint16); ok {
		return int(val)
	}
	return 0
}
