package model

import (
	"fmt"
	"strconv"
	"time"
)

const (
	MetaSizeBytes    = "sizebytes"
	MetaExtension    = "ext"
	MetaMimeType     = "mimetype"
	MetaLastModified = "lastmodified"
)

// videoMimeTypes is the fixed extension-to-MIME lookup for referenced videos.
var videoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".m4v":  "video/x-m4v",
}

// VideoMimeType returns the MIME type for a video file extension (leading dot,
// any casing). Unknown extensions fall back to the generic video type.
func VideoMimeType(ext string) string {
	if mime, ok := videoMimeTypes[normalizeExt(ext)]; ok {
		return mime
	}
	return "video/mp4"
}

// MediaVideo is the unit the pipeline produces for one referenced video. The
// remote key preserves the original extension, unlike images.
type MediaVideo struct {
	Filename     string    `json:"filename"`
	RemoteKey    string    `json:"remote_key"`
	PublicURL    string    `json:"src"`
	SizeBytes    int64     `json:"size_bytes"`
	Extension    string    `json:"extension"`
	MimeType     string    `json:"mime_type"`
	LastModified time.Time `json:"last_modified"`
}

func (v MediaVideo) ToObjectMetadata() map[string]string {
	return map[string]string{
		MetaSizeBytes:    strconv.FormatInt(v.SizeBytes, 10),
		MetaExtension:    v.Extension,
		MetaMimeType:     v.MimeType,
		MetaLastModified: v.LastModified.UTC().Format(time.RFC3339),
	}
}

func VideoFromObjectMetadata(filename, remoteKey, publicURL string, meta map[string]string) (MediaVideo, error) {
	v := MediaVideo{
		Filename:  filename,
		RemoteKey: remoteKey,
		PublicURL: publicURL,
		Extension: meta[MetaExtension],
		MimeType:  meta[MetaMimeType],
	}

	if raw := meta[MetaSizeBytes]; raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return MediaVideo{}, fmt.Errorf("metadata field %q: %w", MetaSizeBytes, err)
		}
		v.SizeBytes = n
	}
	if raw := meta[MetaLastModified]; raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return MediaVideo{}, fmt.Errorf("metadata field %q: %w", MetaLastModified, err)
		}
		v.LastModified = t
	}
	return v, nil
}
