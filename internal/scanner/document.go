package scanner

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fellrun/content-pipeline/internal/extractor"
	"github.com/fellrun/content-pipeline/internal/port"
)

// RewriteInlineImages walks the body's parsed tree and rewrites every local
// image reference in place: resolved public URL, dimensions, placeholder and
// lazy-load hints. References to files that do not exist are skipped with a
// warning so one bad link never fails the entry.
//
// The body is returned untouched when no element needed rewriting, so
// non-HTML bodies do not take a parse/render round trip.
func (s *Scanner) RewriteInlineImages(body, entryDir string, resolve port.ImageResolver) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("scanner: error parsing document body: %w", err)
	}

	changed := false
	doc.Find("[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" || isRemote(src) || extractor.IsVideoFile(path.Base(src)) {
			return
		}

		filename, fullPath := resolveLocalPath(entryDir, src)
		if _, err := os.Stat(fullPath); err != nil {
			log.Printf("warning: image file not found: %s, skipping...", fullPath)
			return
		}

		asset, err := resolve(filepath.Dir(fullPath), filename)
		if err != nil {
			log.Printf("warning: failed to process inline image %q: %v", src, err)
			return
		}

		sel.SetAttr("src", asset.PublicURL)
		sel.SetAttr("width", strconv.Itoa(asset.Width))
		sel.SetAttr("height", strconv.Itoa(asset.Height))
		sel.SetAttr("blurdataurl", asset.PlaceholderDataURI)
		sel.SetAttr("loading", "lazy")
		sel.SetAttr("placeholder", "blur")
		changed = true
	})

	if !changed {
		return body, nil
	}
	return renderBody(doc)
}

// renderBody serialises the document back to a fragment, dropping the
// html/head/body scaffolding the parser adds around fragments.
func renderBody(doc *goquery.Document) (string, error) {
	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("scanner: error rendering document body: %w", err)
	}
	return html, nil
}
