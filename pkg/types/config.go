package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "breakfast/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// CacheFile is the path to the Granola cache JSON file.
	CacheFile string `json:"cache_file" yaml:"cache_file"`

	// OutputDir is the directory rendered markdown files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Days limits the export to meetings created within the last N days.
	// Zero means no recency window.
	Days int `json:"days" yaml:"days"`

	// Force overwrites markdown files that already exist.
	Force bool `json:"force" yaml:"force"`
}

// TranscriptConfig holds settings for fetching transcripts that are
// missing from the local cache.
type TranscriptConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the transcript service base URL.
	APIBase string `json:"api_base" yaml:"api_base"`

	// TokenFile is the path to the local auth token bundle file. An
	// absent file disables fetching rather than failing.
	TokenFile string `json:"token_file" yaml:"token_file"`
}

// ImportConfig holds settings for the vault import stage.
type ImportConfig struct {
	// SourceDir is the directory of exported markdown notes.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// VaultPath is the destination vault root. The import manifest lives
	// inside it.
	VaultPath string `json:"vault_path" yaml:"vault_path"`

	// Instructions is the fixed instruction text handed to the agent
	// alongside each note.
	Instructions string `json:"instructions" yaml:"instructions"`

	// AgentBin is the agent binary name looked up on PATH (default
	// "claude").
	AgentBin string `json:"agent_bin" yaml:"agent_bin"`

	// ForceAll reimports every note regardless of manifest state.
	ForceAll bool `json:"force_all" yaml:"force_all"`

	// DryRun reports the eligible set without invoking the agent or
	// mutating the manifest.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Live attaches the agent to the terminal instead of capturing its
	// output.
	Live bool `json:"live" yaml:"live"`
}

// IndexConfig holds settings for the note index.
type IndexConfig struct {
	// NotesDir is the directory of exported markdown notes to index.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// IndexDir is the directory holding the sqlite database and export
	// files.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
