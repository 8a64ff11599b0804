package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/fellrun/content-pipeline/internal/config"
	"github.com/fellrun/content-pipeline/internal/logger"
	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
	"github.com/fellrun/content-pipeline/internal/scanner"
	"github.com/fellrun/content-pipeline/internal/storage"
	"github.com/fellrun/content-pipeline/internal/transcoder"
	contentSvc "github.com/fellrun/content-pipeline/internal/usecase/content"
)

var dataFiles = map[model.EntryKind]string{
	model.EntryKindGallery: "galleries.json",
	model.EntryKindPost:    "posts.json",
	model.EntryKindRace:    "races.json",
}

func main() {
	strict := flag.Bool("strict", false, "exit with a non-zero status when any media file fails")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)
	scan := scanner.New()

	converterSvc := contentSvc.NewImageConverter(strg, transcoder.New())
	uploaderSvc := contentSvc.NewVideoUploader(strg)
	transformerSvc := contentSvc.NewEntryTransformer(converterSvc, uploaderSvc, scan, scan)

	raws, err := contentSvc.NewLoader(cfg.ContentRoot).DiscoverEntries()
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to discover entries: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "found %d entries under %q", len(raws), cfg.ContentRoot)

	byKind := map[model.EntryKind][]*model.Entry{}
	summary := &contentSvc.BuildSummary{}
	for _, raw := range raws {
		entry, report, err := transformerSvc.TransformEntry(ctx, raw)
		if err != nil {
			logger.Errorf(ctx, "❌  Entry %q failed: %v", raw.Slug, err)
			failedReport := &port.EntryReport{Slug: raw.Slug}
			failedReport.Add(entryFile(raw), port.FileFailed, err.Error(), 0)
			summary.Add(failedReport)
			continue
		}
		byKind[entry.Kind] = append(byKind[entry.Kind], entry)
		summary.Add(report)
	}

	if err := writeData(cfg.OutputDir, byKind); err != nil {
		logger.Errorf(ctx, "❌  Failed to write data files: %v", err)
		os.Exit(1)
	}

	printSummary(summary)

	if failed := summary.Count(port.FileFailed); failed > 0 {
		for _, f := range summary.Failures() {
			logger.Warnf(ctx, "⚠️  %s: %s: %s", f.Slug, f.Result.File, f.Result.Reason)
		}
		if *strict {
			logger.Errorf(ctx, "❌  Build finished with %d failed files", failed)
			os.Exit(1)
		}
	}
	logger.Info(ctx, "✅  Build completed")
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.StoreEndpoint,
		cfg.StoreAccessKey,
		cfg.StoreSecretKey,
		cfg.StoreUseSSL,
		cfg.Bucket,
		cfg.PublicBaseURL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise object store client: %v", err)
		os.Exit(1)
	}

	return strg
}

func entryFile(raw port.RawEntry) string {
	return filepath.ToSlash(filepath.Join(raw.Slug, "index.md"))
}

func writeData(dir string, byKind map[model.EntryKind][]*model.Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for kind, name := range dataFiles {
		entries := byKind[kind]
		if entries == nil {
			entries = []*model.Entry{}
		}
		// newest first: slugs start with the year
		sort.Slice(entries, func(i, j int) bool { return entries[i].Slug > entries[j].Slug })
		if err := writeJSON(filepath.Join(dir, name), entries); err != nil {
			return err
		}
	}

	var groups [][]model.Tag
	for _, entries := range byKind {
		for _, e := range entries {
			tags := make([]model.Tag, 0, len(e.Tags))
			for _, name := range e.Tags {
				tags = append(tags, contentSvc.TagFromName(name))
			}
			groups = append(groups, tags)
		}
	}
	merged := contentSvc.MergeTags(groups...)
	if merged == nil {
		merged = []model.Tag{}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Slug < merged[j].Slug })
	return writeJSON(filepath.Join(dir, "tags.json"), merged)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(summary *contentSvc.BuildSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Entry", "Uploaded", "Skipped", "Failed"})
	for _, r := range summary.Reports {
		t.AppendRow(table.Row{r.Slug, r.Count(port.FileUploaded), r.Count(port.FileSkipped), r.Count(port.FileFailed)})
	}
	t.AppendFooter(table.Row{
		"Total",
		summary.Count(port.FileUploaded),
		summary.Count(port.FileSkipped),
		summary.Count(port.FileFailed),
	})
	t.Render()
	fmt.Printf("uploaded %s across %d entries\n", humanize.Bytes(uint64(summary.BytesUploaded())), len(summary.Reports))
}
