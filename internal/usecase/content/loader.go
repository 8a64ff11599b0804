package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
	"github.com/fellrun/content-pipeline/internal/validation"
)

const entryDocument = "index.md"

// sections maps top-level content directories to entry kinds.
var sections = []struct {
	dir  string
	kind model.EntryKind
}{
	{"gallery", model.EntryKindGallery},
	{"posts", model.EntryKindPost},
	{"races", model.EntryKindRace},
}

// Loader discovers entries under the content root and parses their front
// matter into RawEntry records.
type Loader struct {
	root string
}

func NewLoader(contentRoot string) *Loader {
	return &Loader{root: contentRoot}
}

type frontMatter struct {
	Title       string   `mapstructure:"title" validate:"required"`
	Slug        string   `mapstructure:"slug"`
	Cover       string   `mapstructure:"cover"`
	Featured    []string `mapstructure:"featured"`
	Created     string   `mapstructure:"created"`
	Updated     string   `mapstructure:"updated"`
	Location    string   `mapstructure:"location"`
	Author      string   `mapstructure:"author"`
	Excerpt     string   `mapstructure:"excerpt"`
	Description string   `mapstructure:"description"`
	Tags        []string `mapstructure:"tags"`
	Categories  []string `mapstructure:"categories"`
	Published   bool     `mapstructure:"published"`
}

// DiscoverEntries walks the content tree. An entry is a directory holding an
// index.md document; sibling media files belong to it. Entries with broken
// front matter are skipped with a warning, not fatal to the build.
func (l *Loader) DiscoverEntries() ([]port.RawEntry, error) {
	var entries []port.RawEntry
	for _, section := range sections {
		sectionRoot := filepath.Join(l.root, section.dir)
		if _, err := os.Stat(sectionRoot); err != nil {
			continue
		}

		err := filepath.WalkDir(sectionRoot, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || d.Name() != entryDocument {
				return nil
			}
			raw, err := l.loadEntry(p, section.kind)
			if err != nil {
				log.Printf("warning: skipping entry %q: %v", p, err)
				return nil
			}
			entries = append(entries, raw)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("content: error walking %q: %w", sectionRoot, err)
		}
	}
	return entries, nil
}

func (l *Loader) loadEntry(docPath string, kind model.EntryKind) (port.RawEntry, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return port.RawEntry{}, err
	}

	fmBytes, body, err := splitFrontMatter(data)
	if err != nil {
		return port.RawEntry{}, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(fmBytes)); err != nil {
		return port.RawEntry{}, fmt.Errorf("parse front matter: %w", err)
	}
	var fm frontMatter
	if err := v.Unmarshal(&fm); err != nil {
		return port.RawEntry{}, fmt.Errorf("decode front matter: %w", err)
	}
	if err := validation.ValidateStruct(&fm); err != nil {
		return port.RawEntry{}, fmt.Errorf("invalid front matter: %v", validation.ErrorsToMap(err))
	}

	dir := filepath.Dir(docPath)
	rel, err := filepath.Rel(l.root, dir)
	if err != nil {
		return port.RawEntry{}, err
	}

	// the directory path is the slug unless the front matter overrides it
	slug := filepath.ToSlash(rel)
	if fm.Slug != "" {
		slug = fm.Slug
	}

	return port.RawEntry{
		Kind:        kind,
		Slug:        slug,
		Dir:         dir,
		Title:       fm.Title,
		Cover:       fm.Cover,
		Featured:    fm.Featured,
		Body:        body,
		Created:     fm.Created,
		Updated:     fm.Updated,
		Location:    fm.Location,
		Author:      fm.Author,
		Excerpt:     fm.Excerpt,
		Description: fm.Description,
		Tags:        fm.Tags,
		Categories:  fm.Categories,
		Published:   fm.Published,
	}, nil
}

// splitFrontMatter separates the leading YAML block from the document body.
// A document without front matter is all body.
func splitFrontMatter(data []byte) (fm []byte, body string, err error) {
	open := []byte("---\n")
	if !bytes.HasPrefix(data, open) {
		return nil, string(data), nil
	}

	rest := data[len(open):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, "", fmt.Errorf("unterminated front matter block")
	}

	fm = rest[:end]
	tail := rest[end+len("\n---"):]
	tail = bytes.TrimPrefix(tail, []byte("\n"))
	return fm, string(tail), nil
}
