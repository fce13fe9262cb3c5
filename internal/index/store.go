// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a local sqlite full-text index over the
// exported markdown notes. Indexing is incremental: a note whose file
// modification time is unchanged since the last run is skipped.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/kllymx/Breakfast/internal/manifest"
	"github.com/kllymx/Breakfast/pkg/types"
)

const dbFile = "notes.db"

// Store manages the note index database.
type Store struct {
	db         *sql.DB
	notesDir   string
	indexDir   string
	maxResults int
}

// NewStore opens or creates the index database at cfg.IndexDir/notes.db,
// creating the schema when absent.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		notesDir:   cfg.NotesDir,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			created_at TEXT,
			filename TEXT,
			body TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS index_status (
			note_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notes_fts USING fts5(title, body, content=notes, content_rowid=rowid)`,
			`CREATE TRIGGER notes_ai AFTER INSERT ON notes BEGIN
				INSERT INTO notes_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
			END`,
			`CREATE TRIGGER notes_ad AFTER DELETE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
			END`,
			`CREATE TRIGGER notes_au AFTER UPDATE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
				INSERT INTO notes_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the total number of notes processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// noteHeader is the subset of frontmatter fields stored in the index.
type noteHeader struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	CreatedAt string `yaml:"created_at"`
}

// Ingest walks the notes directory and (re)indexes every markdown file
// whose modification time changed since the last run. Per-file failures
// count and continue.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	notes, err := manifest.ListNotes(s.notesDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading notes directory %s: %w", s.notesDir, err)
	}

	var summary IngestSummary
	for _, note := range notes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		modTime := note.ModTime.UTC().Format(time.RFC3339Nano)

		data, err := os.ReadFile(note.Path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", note.Filename, err)
			summary.Failed++
			continue
		}

		hdr := parseHeader(string(data))
		id := hdr.ID
		if id == "" {
			id = strings.TrimSuffix(note.Filename, ".md")
		}

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM index_status WHERE note_id = ?`, id,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", note.Filename)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.indexNote(ctx, id, hdr, note.Filename, string(data), modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", note.Filename, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", note.Filename)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", note.Filename)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) indexNote(ctx context.Context, id string, hdr noteHeader, filename, body, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO notes (id, title, created_at, filename, body)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   created_at = excluded.created_at,
		   filename = excluded.filename,
		   body = excluded.body`,
		id, hdr.Title, hdr.CreatedAt, filename, body,
	); err != nil {
		return fmt.Errorf("upserting note: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO index_status (note_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(note_id) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		id, modTime,
	); err != nil {
		return fmt.Errorf("recording index status: %w", err)
	}

	return tx.Commit()
}

// parseHeader decodes the frontmatter block of a rendered note. A
// missing or malformed block yields zero values.
func parseHeader(content string) noteHeader {
	var hdr noteHeader
	if !strings.HasPrefix(content, "---\n") {
		return hdr
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return hdr
	}
	yaml.Unmarshal([]byte(rest[:end]), &hdr)
	return hdr
}
