package content

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/fellrun/content-pipeline/internal/buildctx"
	"github.com/fellrun/content-pipeline/internal/logger"
	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
)

type entryTransformerSrv struct {
	conv port.ImageConverter
	vids port.VideoUploader
	dirs port.DirectoryScanner
	docs port.DocumentScanner
	now  func() time.Time
}

// compile-time check: *entryTransformerSrv must satisfy port.EntryTransformer
var _ port.EntryTransformer = (*entryTransformerSrv)(nil)

// NewEntryTransformer constructs the per-entry orchestrator.
func NewEntryTransformer(conv port.ImageConverter, vids port.VideoUploader, dirs port.DirectoryScanner, docs port.DocumentScanner) port.EntryTransformer {
	return &entryTransformerSrv{conv: conv, vids: vids, dirs: dirs, docs: docs, now: time.Now}
}

// TransformEntry resolves an entry's cover, gallery images and inline body
// media. A single bad file degrades only itself: failures are recorded in
// the report and the transform continues with the remaining files.
func (s *entryTransformerSrv) TransformEntry(ctx context.Context, raw port.RawEntry) (*model.Entry, *port.EntryReport, error) {
	if raw.Slug == "" || raw.Dir == "" {
		return nil, nil, fmt.Errorf("content: slug and dir are required (got %q, %q)", raw.Slug, raw.Dir)
	}

	ctx = buildctx.WithEntrySlug(ctx, raw.Slug)
	report := &port.EntryReport{Slug: raw.Slug}

	entry := &model.Entry{
		Kind:         raw.Kind,
		Slug:         raw.Slug,
		SlugAsParams: slugAsParams(raw.Slug),
		Permalink:    permalink(raw.Kind, raw.Slug),
		Title:        raw.Title,
		Year:         s.yearFromSlug(raw.Slug),
		Created:      raw.Created,
		Updated:      raw.Updated,
		Location:     raw.Location,
		Author:       raw.Author,
		Excerpt:      raw.Excerpt,
		Description:  raw.Description,
		Published:    raw.Published,
		Tags:         raw.Tags,
		Categories:   raw.Categories,
	}

	if raw.Cover != "" {
		out, err := s.conv.ConvertImage(ctx, port.ConvertImageInput{Dir: raw.Dir, Slug: raw.Slug, Filename: raw.Cover})
		if err != nil {
			logger.Errorf(ctx, "error processing cover %q: %v", raw.Cover, err)
			report.Add(raw.Cover, port.FileFailed, err.Error(), 0)
		} else {
			entry.Cover = &out.Asset
			report.Add(raw.Cover, fileStatus(out.Skipped), "", out.BytesUploaded)
		}
	}

	if raw.Kind == model.EntryKindGallery {
		if err := s.transformGallery(ctx, raw, entry, report); err != nil {
			return nil, nil, err
		}
	}

	if raw.Body != "" {
		entry.Body = s.transformBody(ctx, raw, entry, report)
	}

	return entry, report, nil
}

func (s *entryTransformerSrv) transformGallery(ctx context.Context, raw port.RawEntry, entry *model.Entry, report *port.EntryReport) error {
	files, err := s.dirs.ListImages(raw.Dir)
	if err != nil {
		return err
	}

	var images []model.MediaAsset
	for _, f := range files {
		out, err := s.conv.ConvertImage(ctx, port.ConvertImageInput{Dir: raw.Dir, Slug: raw.Slug, Filename: f})
		if err != nil {
			logger.Errorf(ctx, "error processing file %q: %v", f, err)
			report.Add(f, port.FileFailed, err.Error(), 0)
			continue
		}
		report.Add(f, fileStatus(out.Skipped), "", out.BytesUploaded)
		images = append(images, out.Asset)
	}
	entry.Images = SetFeaturedImages(raw.Featured, images)
	return nil
}

func (s *entryTransformerSrv) transformBody(ctx context.Context, raw port.RawEntry, entry *model.Entry, report *port.EntryReport) string {
	body := raw.Body

	resolved := make(map[string]string)
	for _, src := range s.docs.InlineVideoSources(body) {
		filename := path.Base(src)
		out, err := s.vids.UploadVideo(ctx, port.UploadVideoInput{Dir: raw.Dir, Slug: raw.Slug, Filename: filename})
		if err != nil {
			logger.Errorf(ctx, "error processing video %q: %v", src, err)
			report.Add(filename, port.FileFailed, err.Error(), 0)
			continue
		}
		report.Add(filename, fileStatus(out.Skipped), "", out.BytesUploaded)
		resolved[src] = out.Video.PublicURL
		entry.Videos = append(entry.Videos, out.Video)
	}
	body = s.docs.RewriteVideoSources(body, resolved)

	rewritten, err := s.docs.RewriteInlineImages(body, raw.Dir, func(dir, filename string) (*model.MediaAsset, error) {
		out, err := s.conv.ConvertImage(ctx, port.ConvertImageInput{Dir: dir, Slug: raw.Slug, Filename: filename})
		if err != nil {
			report.Add(filename, port.FileFailed, err.Error(), 0)
			return nil, err
		}
		report.Add(filename, fileStatus(out.Skipped), "", out.BytesUploaded)
		return &out.Asset, nil
	})
	if err != nil {
		// An unparseable body degrades to the un-rewritten original rather
		// than failing the entry.
		logger.Errorf(ctx, "error rewriting inline images: %v", err)
		return body
	}
	return rewritten
}

func fileStatus(skipped bool) port.FileStatus {
	if skipped {
		return port.FileSkipped
	}
	return port.FileUploaded
}

// yearFromSlug derives the entry year from the second slash-delimited slug
// segment, defaulting to the current calendar year.
func (s *entryTransformerSrv) yearFromSlug(slug string) string {
	parts := strings.Split(slug, "/")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return strconv.Itoa(s.now().Year())
}

// slugAsParams is every slug segment after the first, rejoined.
func slugAsParams(slug string) string {
	parts := strings.Split(slug, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], "/")
}

func permalink(kind model.EntryKind, slug string) string {
	params := slugAsParams(slug)
	switch kind {
	case model.EntryKindGallery:
		return "/gallery/" + params
	case model.EntryKindRace:
		return "/races/" + params
	default:
		return "/posts/" + params
	}
}
