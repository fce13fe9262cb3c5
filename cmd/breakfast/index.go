// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kllymx/Breakfast/internal/index"
	"github.com/kllymx/Breakfast/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the full-text index over exported notes",
	Long: `Index ingests the exported markdown notes into a local SQLite
database with FTS5 indexing. Notes whose files are unchanged since the
last run are skipped. With --export, the indexed note metadata is also
written to export.json and export.yaml next to the database.`,
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over the indexed notes",
	Long: `Search queries the note index with FTS5 full-text search and prints
matching notes with a content snippet. Run "breakfast index" first to
build or refresh the index.`,
	RunE: runSearch,
}

func init() {
	indexCmd.Flags().Bool("export", false, "also write export.json and export.yaml")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")
	searchCmd.Flags().Bool("json", false, "print results as JSON")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
}

func indexConfig() types.IndexConfig {
	notesDir := outputDir()
	return types.IndexConfig{
		NotesDir: notesDir,
		IndexDir: filepath.Join(notesDir, ".index"),
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Ingest(context.Background(), os.Stdout); err != nil {
		return err
	}

	doExport, _ := cmd.Flags().GetBool("export")
	if doExport {
		if err := store.Export(context.Background()); err != nil {
			return err
		}
		fmt.Println("Wrote export.json and export.yaml")
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := indexConfig()
	cfg.MaxResults = maxResults

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), strings.Join(args, " "), maxResults)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-40s  %s\n", "Date", "Title", "File", "Snippet")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))
	for _, r := range results {
		date := r.CreatedAt
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-40s  %s\n",
			date, truncate(r.Title, 40), truncate(r.Filename, 40), truncate(r.Snippet, 60))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
