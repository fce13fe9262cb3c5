// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export walks the decoded document store and writes one
// markdown file per eligible meeting. Repeated runs are cheap: a file
// that already exists is skipped unless the force flag is set.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kllymx/Breakfast/internal/cache"
	"github.com/kllymx/Breakfast/internal/extract"
	"github.com/kllymx/Breakfast/internal/render"
	"github.com/kllymx/Breakfast/pkg/types"
)

// maxSlugLength caps the sanitized title portion of a filename.
const maxSlugLength = 100

// TranscriptFetcher retrieves a transcript for a meeting that has none
// cached locally. A nil fetcher disables fetching.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, documentID string) ([]types.TranscriptEntry, error)
}

// Result holds the outcome of an export run.
type Result struct {
	Exported int
	Skipped  int
	Failed   int
}

// Total returns the total number of meetings processed.
func (r Result) Total() int {
	return r.Exported + r.Skipped + r.Failed
}

// HasFailures reports whether any meeting failed to export.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Filter keeps documents that are valid meetings, not soft-deleted, and
// (when days > 0) created within the last days days before now.
func Filter(docs []*types.Document, days int, now time.Time) []*types.Document {
	var cutoff time.Time
	if days > 0 {
		cutoff = now.AddDate(0, 0, -days)
	}

	var kept []*types.Document
	for _, d := range docs {
		if !d.ValidMeeting || d.DeletedAt != "" {
			continue
		}
		if days > 0 {
			created, ok := d.Created()
			if !ok || created.Before(cutoff) {
				continue
			}
		}
		kept = append(kept, d)
	}
	return kept
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeTitle lower-cases a title, collapses runs of non-alphanumeric
// characters to single hyphens, strips edge hyphens, and truncates to
// 100 characters. An absent title becomes "untitled". Titles differing
// only in case or collapsed punctuation collide; that is accepted.
func SanitizeTitle(title string) string {
	if title == "" {
		title = "untitled"
	}
	s := strings.ToLower(title)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return s
}

// Filename derives the deterministic output filename for a meeting:
// the UTC ISO date of its creation, the sanitized title, and the .md
// extension. An unparseable creation timestamp degrades to its first
// ten characters.
func Filename(doc *types.Document) string {
	datePrefix := doc.CreatedAt
	if created, ok := doc.Created(); ok {
		datePrefix = created.UTC().Format("2006-01-02")
	} else if len(datePrefix) > 10 {
		datePrefix = datePrefix[:10]
	}
	return datePrefix + "-" + SanitizeTitle(doc.Title) + ".md"
}

// Run exports every eligible meeting from the store into cfg.OutputDir,
// printing a per-meeting status line to w. A single file write or
// transcript fetch failure counts and logs but does not stop the run.
func Run(ctx context.Context, store *cache.Store, cfg types.ExportConfig, scanner extract.Scanner, fetcher TranscriptFetcher, w io.Writer, log *zap.Logger) (Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	docs := Filter(store.DocumentList(), cfg.Days, time.Now())
	log.Info("starting export",
		zap.Int("documents", len(store.Documents)),
		zap.Int("meetings", len(docs)),
		zap.Int("days", cfg.Days),
		zap.Bool("force", cfg.Force))

	var result Result
	for _, doc := range docs {
		filename := Filename(doc)
		path := filepath.Join(cfg.OutputDir, filename)

		if !cfg.Force {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(w, "skipped: %s (already exists)\n", filename)
				log.Info("skipped existing file", zap.String("file", filename))
				result.Skipped++
				continue
			}
		}

		entries := store.Transcript(doc.ID)
		if len(entries) == 0 && fetcher != nil {
			fetched, err := fetcher.Fetch(ctx, doc.ID)
			if err != nil {
				// No transcript is not fatal; render without one.
				log.Warn("transcript fetch failed", zap.String("id", doc.ID), zap.Error(err))
			} else {
				entries = fetched
			}
		}

		markdown := render.Markdown(doc, store.Metadata(doc.ID), entries, scanner)

		if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filename, err)
			log.Error("write failed", zap.String("file", filename), zap.Error(err))
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "exported: %s\n", filename)
		log.Info("exported", zap.String("file", filename))
		result.Exported++
	}

	fmt.Fprintf(w, "\nSync complete: %d exported, %d skipped\n", result.Exported, result.Skipped)
	if result.Skipped > 0 && !cfg.Force {
		fmt.Fprintln(w, "Use --force to overwrite existing files.")
	}
	log.Info("export complete",
		zap.Int("exported", result.Exported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}
