// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the breakfast CLI: it exports
// Granola meeting notes as markdown and imports them into an Obsidian
// vault through an external agent.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the breakfast CLI.
var rootCmd = &cobra.Command{
	Use:   "breakfast",
	Short: "Export Granola meeting notes and import them into a vault",
	Long: `breakfast reads the local Granola application cache, renders each
meeting as a deterministic markdown file, and keeps a destination folder
in sync. A second stage hands new or changed notes to an external agent
that imports them into an Obsidian vault, tracked through a manifest so
repeated runs only touch what changed.

Each stage is a subcommand: sync exports markdown, import runs the vault
import, index and search maintain a local full-text index over the
exported notes.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./breakfast.yaml or ~/.config/breakfast/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show detailed logs")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("breakfast")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "breakfast"))
		}
	}

	viper.SetEnvPrefix("BREAKFAST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
