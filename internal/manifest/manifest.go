// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest tracks which exported notes have already been handed
// to the vault import stage. The manifest is a JSON file inside the
// vault, keyed by note id, rewritten after every successful import so a
// mid-run crash only costs a re-attempt of the in-flight note.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the manifest's fixed location relative to the vault root.
const FileName = ".breakfast-imported.json"

// Entry records one successful downstream import of a note.
type Entry struct {
	Filename   string    `json:"filename"`
	SourcePath string    `json:"sourcePath"`
	ImportedAt time.Time `json:"importedAt"`
}

// Manifest is the persisted import bookkeeping state. Entries are
// created on first import, replaced wholesale on re-import, and never
// deleted.
type Manifest struct {
	Imported map[string]Entry `json:"imported"`
	LastRun  *time.Time       `json:"lastRun"`

	vaultPath string
}

// Load reads the manifest from the vault, or returns a fresh empty one
// when none exists yet.
func Load(vaultPath string) (*Manifest, error) {
	m := &Manifest{
		Imported:  map[string]Entry{},
		vaultPath: vaultPath,
	}

	data, err := os.ReadFile(filepath.Join(vaultPath, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Imported == nil {
		m.Imported = map[string]Entry{}
	}
	return m, nil
}

// Save writes the manifest back to the vault. Called after every
// successful import, not batched.
func (m *Manifest) Save() error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(m.vaultPath, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// MarkImported upserts the entry for noteID and persists immediately.
func (m *Manifest) MarkImported(noteID string, note Note, now time.Time) error {
	m.Imported[noteID] = Entry{
		Filename:   note.Filename,
		SourcePath: note.Path,
		ImportedAt: now,
	}
	return m.Save()
}

// StampRun records the completion time of an import run and persists.
func (m *Manifest) StampRun(now time.Time) error {
	m.LastRun = &now
	return m.Save()
}

// Eligible reports whether a note is due for import: always when
// forceAll is set, when no entry exists for its id, or when the file has
// been modified after its recorded import time.
func (m *Manifest) Eligible(noteID string, note Note, forceAll bool) bool {
	if forceAll {
		return true
	}
	entry, ok := m.Imported[noteID]
	if !ok {
		return true
	}
	return note.ModTime.After(entry.ImportedAt)
}
