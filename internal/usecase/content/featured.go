package content

import (
	"path/filepath"
	"strings"

	"github.com/fellrun/content-pipeline/internal/model"
)

// SetFeaturedImages flags the assets whose filename stem appears in the
// entry's featured list. The extension is ignored entirely, so its casing
// never matters; the stem comparison itself is case-sensitive. Order of the
// incoming assets is preserved: featuring flags, it does not reorder.
func SetFeaturedImages(featured []string, images []model.MediaAsset) []model.MediaAsset {
	if len(featured) == 0 || len(images) == 0 {
		return images
	}

	stems := make(map[string]bool, len(featured))
	for _, f := range featured {
		stems[fileStem(f)] = true
	}

	for i := range images {
		images[i].IsFeatured = stems[fileStem(images[i].Filename)]
	}
	return images
}

func fileStem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
