// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default locations mirror the Granola desktop application's layout on
// macOS; every one can be overridden through the config file or
// BREAKFAST_* environment variables.
func defaultCacheFile(home string) string {
	return filepath.Join(home, "Library", "Application Support", "Granola", "cache-v3.json")
}

func defaultOutputDir(home string) string {
	return filepath.Join(home, "Documents", "Granola Notes")
}

func defaultLogFile(home string) string {
	return filepath.Join(home, "Library", "Logs", "granola-sync.log")
}

func defaultTokenFile(home string) string {
	return filepath.Join(home, "Library", "Application Support", "Granola", "supabase.json")
}

// resolvePath reads a viper key and falls back to def when unset. A
// leading ~ expands to the home directory.
func resolvePath(key, def string) string {
	v := viper.GetString(key)
	if v == "" {
		return def
	}
	return expandHome(v)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// outputDir resolves the exported-notes directory shared by the sync,
// import, and index stages.
func outputDir() string {
	return resolvePath("output_dir", defaultOutputDir(homeDir()))
}

// logFile resolves the append-only run log path.
func logFile() string {
	return resolvePath("log_file", defaultLogFile(homeDir()))
}
