// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kllymx/Breakfast/internal/importer"
	"github.com/kllymx/Breakfast/internal/logging"
	"github.com/kllymx/Breakfast/internal/manifest"
	"github.com/kllymx/Breakfast/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import exported notes into the Obsidian vault via the agent",
	Long: `Import selects exported notes that are new or have changed since
their last import, hands each one to the external agent, and records the
outcome in a manifest inside the vault. A note that fails stays eligible
for the next run.

Use --dry-run to see the eligible set without importing anything, and
--live to attach the agent to the terminal for interactive sessions.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolP("force", "f", false, "reimport every note regardless of manifest state")
	importCmd.Flags().BoolP("dry-run", "n", false, "list eligible notes without importing")
	importCmd.Flags().BoolP("live", "l", false, "attach the agent to the terminal")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	forceAll, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	live, _ := cmd.Flags().GetBool("live")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if !viper.GetBool("obsidian.enabled") {
		fmt.Println("Obsidian integration is disabled in the config.")
		return nil
	}

	vaultPath := expandHome(viper.GetString("obsidian.vault_path"))
	if vaultPath == "" {
		return fmt.Errorf("missing configuration: obsidian.vault_path")
	}
	if _, err := os.Stat(vaultPath); err != nil {
		return fmt.Errorf("vault not found: %s", vaultPath)
	}

	cfg := types.ImportConfig{
		SourceDir:    outputDir(),
		VaultPath:    vaultPath,
		Instructions: viper.GetString("obsidian.instructions"),
		AgentBin:     viper.GetString("agent.bin"),
		ForceAll:     forceAll,
		DryRun:       dryRun,
		Live:         live,
	}

	fmt.Println("Breakfast Obsidian Import")
	fmt.Println()
	fmt.Printf("Source: %s\n", cfg.SourceDir)
	fmt.Printf("Vault: %s\n", cfg.VaultPath)
	fmt.Println()

	agent := importer.NewAgent(cfg.AgentBin)
	if !cfg.DryRun {
		if err := agent.Check(); err != nil {
			return err
		}
	}

	m, err := manifest.Load(cfg.VaultPath)
	if err != nil {
		return err
	}

	log := logging.New(logFile(), verbose)
	defer log.Sync()

	// Per-note failures are reported in the summary but stay eligible
	// for the next run; only setup failures exit non-zero.
	_, err = importer.Run(cfg, m, agent, os.Stdout, log)
	return err
}
