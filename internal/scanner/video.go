package scanner

import (
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fellrun/content-pipeline/internal/extractor"
)

// Bodies reference video either through compiled component-call syntax or
// through literal markup tags; both extraction strategies always run.
var (
	callVideoRe = regexp.MustCompile(`l\("video",\{[^}]*src:["']([^"']+)["'][^}]*\}`)
	tagVideoRe  = regexp.MustCompile(`<video[^>]*src=["']([^"']+)["'][^>]*>`)
)

// InlineVideoSources collects the src values of local video references in
// the body. Sources that are already absolute URLs, or whose extension is
// not a recognised video format, are excluded. After a rewrite pass every
// reference is absolute, so a second pass finds nothing.
func (s *Scanner) InlineVideoSources(body string) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, re := range []*regexp.Regexp{callVideoRe, tagVideoRe} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			src := m[1]
			if isRemote(src) || !extractor.IsVideoFile(path.Base(src)) {
				continue
			}
			if !seen[src] {
				seen[src] = true
				sources = append(sources, src)
			}
		}
	}
	return sources
}

// RewriteVideoSources replaces resolved video references in the body.
// Literal markup tags are rewritten structurally over the parsed tree, which
// eliminates the substring-collision hazard of blind replacement; the
// component-call syntax lives inside text and can only be patched by literal
// string replacement of its quoted src value.
func (s *Scanner) RewriteVideoSources(body string, resolved map[string]string) string {
	if len(resolved) == 0 {
		return body
	}

	if tagVideoRe.MatchString(body) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
			changed := false
			doc.Find("video[src]").Each(func(_ int, sel *goquery.Selection) {
				src, _ := sel.Attr("src")
				if url, ok := resolved[src]; ok {
					sel.SetAttr("src", url)
					changed = true
				}
			})
			if changed {
				if html, err := renderBody(doc); err == nil {
					body = html
				}
			}
		}
	}

	for src, url := range resolved {
		body = strings.ReplaceAll(body, `src:"`+src+`"`, `src:"`+url+`"`)
		body = strings.ReplaceAll(body, `src:'`+src+`'`, `src:"`+url+`"`)
	}
	return body
}
