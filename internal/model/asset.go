package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Object metadata keys. The store's metadata facility is string-only, so every
// numeric field crosses this boundary as a decimal string. Keys are lowercase;
// the storage gateway normalises whatever casing the store hands back.
const (
	MetaWidth       = "width"
	MetaHeight      = "height"
	MetaBlurWidth   = "blurwidth"
	MetaBlurHeight  = "blurheight"
	MetaBlurDataURL = "blurdataurl"
	MetaExif        = "exif"
)

// ExifSummary is the restricted set of tags retained per image. Never the full
// tag block: the store caps metadata size and the presentation layer only
// renders these seven fields.
type ExifSummary struct {
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	DateTimeOriginal string `json:"date_time_original,omitempty"`
	ExposureTime     string `json:"exposure_time,omitempty"`
	FNumber          string `json:"f_number,omitempty"`
	ISO              string `json:"iso,omitempty"`
	FocalLength      string `json:"focal_length,omitempty"`
}

// MediaAsset is the unit the pipeline produces for one image.
type MediaAsset struct {
	Filename           string      `json:"filename"`
	RemoteKey          string      `json:"remote_key"`
	PublicURL          string      `json:"src"`
	Width              int         `json:"width"`
	Height             int         `json:"height"`
	PlaceholderDataURI string      `json:"blur_data_url"`
	PlaceholderWidth   int         `json:"blur_width"`
	PlaceholderHeight  int         `json:"blur_height"`
	IsFeatured         bool        `json:"featured"`
	Exif               ExifSummary `json:"exif"`
}

// ToObjectMetadata serialises the fields that ride along with the uploaded
// object. IsFeatured is deliberately absent: featuring is decided per entry at
// build time, never persisted on the store.
func (a MediaAsset) ToObjectMetadata() (map[string]string, error) {
	exifJSON, err := json.Marshal(a.Exif)
	if err != nil {
		return nil, fmt.Errorf("marshal exif summary: %w", err)
	}
	return map[string]string{
		MetaWidth:       strconv.Itoa(a.Width),
		MetaHeight:      strconv.Itoa(a.Height),
		MetaBlurWidth:   strconv.Itoa(a.PlaceholderWidth),
		MetaBlurHeight:  strconv.Itoa(a.PlaceholderHeight),
		MetaBlurDataURL: a.PlaceholderDataURI,
		MetaExif:        string(exifJSON),
	}, nil
}

// AssetFromObjectMetadata rebuilds a MediaAsset from the metadata attached to
// an already-published object, so a skipped upload yields the same record
// shape as a fresh conversion.
func AssetFromObjectMetadata(filename, remoteKey, publicURL string, meta map[string]string) (MediaAsset, error) {
	a := MediaAsset{
		Filename:           filename,
		RemoteKey:          remoteKey,
		PublicURL:          publicURL,
		PlaceholderDataURI: meta[MetaBlurDataURL],
	}

	var err error
	if a.Width, err = metaInt(meta, MetaWidth); err != nil {
		return MediaAsset{}, err
	}
	if a.Height, err = metaInt(meta, MetaHeight); err != nil {
		return MediaAsset{}, err
	}
	if a.PlaceholderWidth, err = metaInt(meta, MetaBlurWidth); err != nil {
		return MediaAsset{}, err
	}
	if a.PlaceholderHeight, err = metaInt(meta, MetaBlurHeight); err != nil {
		return MediaAsset{}, err
	}

	if raw := meta[MetaExif]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &a.Exif); err != nil {
			return MediaAsset{}, fmt.Errorf("unmarshal exif summary for %q: %w", remoteKey, err)
		}
	}
	return a, nil
}

func metaInt(meta map[string]string, key string) (int, error) {
	raw, ok := meta[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("metadata field %q: %w", key, err)
	}
	return n, nil
}
