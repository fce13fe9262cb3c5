// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kllymx/Breakfast/internal/cache"
	"github.com/kllymx/Breakfast/internal/export"
	"github.com/kllymx/Breakfast/internal/logging"
	"github.com/kllymx/Breakfast/internal/token"
	"github.com/kllymx/Breakfast/internal/transcript"
	"github.com/kllymx/Breakfast/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "breakfast/0.1"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Export meetings from the Granola cache as markdown files",
	Long: `Sync reads the Granola cache, filters to valid non-deleted meetings,
and writes one markdown file per meeting into the output directory.
Files that already exist are skipped unless --force is set, so repeated
runs are cheap and idempotent.

With --fetch-transcripts, meetings without a cached transcript trigger
one network fetch each; a failed fetch renders the meeting without a
transcript.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntP("days", "d", 0, "only sync meetings created in the last N days")
	syncCmd.Flags().BoolP("force", "f", false, "overwrite existing files")
	syncCmd.Flags().Bool("fetch-transcripts", false, "fetch missing transcripts from the Granola API")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	force, _ := cmd.Flags().GetBool("force")
	fetch, _ := cmd.Flags().GetBool("fetch-transcripts")
	verbose, _ := cmd.Flags().GetBool("verbose")

	home := homeDir()
	cfg := types.ExportConfig{
		CacheFile: resolvePath("cache_file", defaultCacheFile(home)),
		OutputDir: outputDir(),
		Days:      days,
		Force:     force,
	}

	log := logging.New(logFile(), verbose)
	defer log.Sync()

	store, err := cache.Load(cfg.CacheFile)
	if err != nil {
		log.Error("cache load failed", zap.Error(err))
		return err
	}

	var fetcher export.TranscriptFetcher
	if fetch {
		tcfg := types.TranscriptConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			APIBase:   viper.GetString("transcript.api_base"),
			TokenFile: resolvePath("transcript.token_file", defaultTokenFile(home)),
		}
		tok := token.Load(tcfg.TokenFile)
		if tok == "" {
			fmt.Fprintln(os.Stderr, "No access token found; transcripts will not be fetched.")
		} else {
			fetcher = transcript.NewClient(&http.Client{Timeout: tcfg.Timeout}, tok, tcfg)
		}
	}

	// Per-meeting failures are counted and reported; only setup
	// failures exit non-zero.
	if _, err := export.Run(context.Background(), store, cfg, nil, fetcher, os.Stdout, log); err != nil {
		return err
	}
	fmt.Printf("Files saved to: %s\n", cfg.OutputDir)
	return nil
}
