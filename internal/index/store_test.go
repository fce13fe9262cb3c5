// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kllymx/Breakfast/pkg/types"
)

func writeIndexedNote(t *testing.T, dir, name, id, title, body string) string {
	t.Helper()
	content := fmt.Sprintf("---\nid: %s\ntitle: %q\ncreated_at: \"2024-01-01T10:00:00Z\"\n---\n\n# %s\n\n%s\n",
		id, title, title, body)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestStore(t *testing.T, notesDir string) *Store {
	t.Helper()
	s, err := NewStore(types.IndexConfig{NotesDir: notesDir, IndexDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIngestIncremental(t *testing.T) {
	notesDir := t.TempDir()
	writeIndexedNote(t, notesDir, "2024-01-01-standup.md", "granola-1", "Standup", "Discussed the rollout plan.")
	path := writeIndexedNote(t, notesDir, "2024-01-02-retro.md", "granola-2", "Retro", "What went well.")

	s := newTestStore(t, notesDir)

	first, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Indexed)
	assert.Equal(t, 0, first.Skipped)

	// Unchanged files are skipped on the next run.
	second, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Indexed)
	assert.Equal(t, 2, second.Skipped)

	// A touched file is re-indexed as an update.
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Second)))
	third, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Updated)
	assert.Equal(t, 1, third.Skipped)
}

func TestIngestFallbackID(t *testing.T) {
	notesDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(notesDir, "2024-01-01-handmade.md"),
		[]byte("# Handmade note\n\nno header here\n"), 0o644))

	s := newTestStore(t, notesDir)
	summary, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)

	var id string
	require.NoError(t, s.db.QueryRow(`SELECT id FROM notes`).Scan(&id))
	assert.Equal(t, "2024-01-01-handmade", id)
}

func TestSearch(t *testing.T) {
	notesDir := t.TempDir()
	writeIndexedNote(t, notesDir, "2024-01-01-standup.md", "granola-1", "Standup", "Discussed the database migration timeline.")
	writeIndexedNote(t, notesDir, "2024-01-02-retro.md", "granola-2", "Retro", "Shipping went smoothly.")

	s := newTestStore(t, notesDir)
	_, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "migration", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "granola-1", results[0].ID)
	assert.Equal(t, "Standup", results[0].Title)
	assert.Equal(t, "2024-01-01-standup.md", results[0].Filename)
	assert.Contains(t, results[0].Snippet, "migration")

	none, err := s.Search(context.Background(), "kubernetes", 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.Search(context.Background(), "", 0)
	assert.Error(t, err)
}

func TestSearchMaxResults(t *testing.T) {
	notesDir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeIndexedNote(t, notesDir,
			fmt.Sprintf("2024-01-0%d-planning.md", i+1),
			fmt.Sprintf("granola-%d", i), "Planning", "Quarterly planning session.")
	}

	s := newTestStore(t, notesDir)
	_, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "planning", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestExport(t *testing.T) {
	notesDir := t.TempDir()
	writeIndexedNote(t, notesDir, "2024-01-01-standup.md", "granola-1", "Standup", "Body text.")

	s := newTestStore(t, notesDir)
	_, err := s.Ingest(context.Background(), io.Discard)
	require.NoError(t, err)
	require.NoError(t, s.Export(context.Background()))

	jsonData, err := os.ReadFile(filepath.Join(s.indexDir, "export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"id": "granola-1"`)
	assert.Contains(t, string(jsonData), `"filename": "2024-01-01-standup.md"`)

	yamlData, err := os.ReadFile(filepath.Join(s.indexDir, "export.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "id: granola-1")
}
