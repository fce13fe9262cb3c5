// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kllymx/Breakfast/internal/manifest"
	"github.com/kllymx/Breakfast/pkg/types"
)

// Result holds the outcome of an import run.
type Result struct {
	Imported int
	Failed   int
}

// HasFailures reports whether any note failed to import.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run selects the eligible notes via the manifest, hands each to the
// agent sequentially, and updates the manifest after every success. A
// failed note stays eligible for the next run; processing continues with
// the next note. Dry-run mode reports the eligible set and touches
// nothing.
func Run(cfg types.ImportConfig, m *manifest.Manifest, agent *Agent, w io.Writer, log *zap.Logger) (Result, error) {
	notes, err := manifest.ListNotes(cfg.SourceDir)
	if err != nil {
		return Result{}, fmt.Errorf("listing source notes: %w", err)
	}

	fmt.Fprintf(w, "Found %d notes in source folder\n", len(notes))
	fmt.Fprintf(w, "Already imported: %d\n", len(m.Imported))

	type candidate struct {
		note manifest.Note
		id   string
	}
	var eligible []candidate
	for _, note := range notes {
		id := manifest.NoteID(note.Path)
		if m.Eligible(id, note, cfg.ForceAll) {
			eligible = append(eligible, candidate{note: note, id: id})
		}
	}

	fmt.Fprintf(w, "Notes to import: %d\n\n", len(eligible))
	log.Info("import selection",
		zap.Int("notes", len(notes)),
		zap.Int("eligible", len(eligible)),
		zap.Bool("force_all", cfg.ForceAll),
		zap.Bool("dry_run", cfg.DryRun))

	if len(eligible) == 0 {
		fmt.Fprintln(w, "Nothing to import.")
		return Result{}, nil
	}

	if cfg.DryRun {
		fmt.Fprintln(w, "Dry run - would import:")
		for _, c := range eligible {
			fmt.Fprintf(w, "  - %s\n", c.note.Filename)
		}
		return Result{}, nil
	}

	var result Result
	for _, c := range eligible {
		fmt.Fprintf(w, "\nImporting: %s\n", c.note.Filename)

		content, err := os.ReadFile(c.note.Path)
		if err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", c.note.Filename, err)
			log.Error("read failed", zap.String("file", c.note.Filename), zap.Error(err))
			result.Failed++
			continue
		}

		prompt := BuildPrompt(cfg.Instructions, c.note.Filename, c.note.Path, cfg.VaultPath, string(content))
		if err := agent.Import(prompt, cfg.VaultPath, cfg.Live, w); err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", c.note.Filename, err)
			log.Error("agent failed", zap.String("file", c.note.Filename), zap.Error(err))
			result.Failed++
			continue
		}

		if err := m.MarkImported(c.id, c.note, time.Now()); err != nil {
			// The import side effects happened; surface the bookkeeping
			// failure but keep going.
			fmt.Fprintf(w, "warning: manifest update failed for %s: %v\n", c.note.Filename, err)
			log.Error("manifest update failed", zap.String("file", c.note.Filename), zap.Error(err))
		}
		fmt.Fprintf(w, "imported: %s\n", c.note.Filename)
		log.Info("imported", zap.String("file", c.note.Filename), zap.String("id", c.id))
		result.Imported++
	}

	if err := m.StampRun(time.Now()); err != nil {
		log.Error("manifest stamp failed", zap.Error(err))
	}

	fmt.Fprintf(w, "\nComplete: %d imported, %d failed\n", result.Imported, result.Failed)
	log.Info("import complete",
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed))
	return result, nil
}
