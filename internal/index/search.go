// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// SearchResult is one full-text match over the indexed notes.
type SearchResult struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Filename  string `json:"filename" yaml:"filename"`
	Snippet   string `json:"snippet" yaml:"snippet"`
}

// Search runs an FTS5 query over note titles and bodies, ranked by
// relevance. maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT n.id, n.title, n.created_at, n.filename,
			snippet(notes_fts, 1, '', '', ' … ', 12)
		 FROM notes_fts
		 JOIN notes n ON n.rowid = notes_fts.rowid
		 WHERE notes_fts MATCH ?
		 ORDER BY notes_fts.rank
		 LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.CreatedAt, &r.Filename, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// exportRow is a note's indexed metadata without the body.
type exportRow struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Filename  string `json:"filename" yaml:"filename"`
}

// Export writes the indexed note metadata to export.json and export.yaml
// in the index directory.
func (s *Store) Export(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at, filename FROM notes ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var entries []exportRow
	for rows.Next() {
		var e exportRow
		if err := rows.Scan(&e.ID, &e.Title, &e.CreatedAt, &e.Filename); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.indexDir, "export.json"), jsonData, 0o644); err != nil {
		return err
	}

	yamlData, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.yaml"), yamlData, 0o644)
}
