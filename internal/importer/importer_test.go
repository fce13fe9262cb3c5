// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kllymx/Breakfast/internal/manifest"
	"github.com/kllymx/Breakfast/pkg/types"
)

// call records one agent invocation seen by the fake executor.
type call struct {
	dir         string
	name        string
	args        []string
	interactive bool
}

type fakeExecutor struct {
	calls       []call
	lookPathErr error
	// failFor marks prompts whose run should fail, keyed by a substring.
	failFor string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) run(dir, name string, interactive bool, args ...string) error {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args, interactive: interactive})
	if f.failFor != "" {
		for _, a := range args {
			if strings.Contains(a, f.failFor) {
				return errors.New("exit status 1")
			}
		}
	}
	return nil
}

func (f *fakeExecutor) RunInteractive(dir, name string, args ...string) error {
	return f.run(dir, name, true, args...)
}

func (f *fakeExecutor) RunCaptured(dir string, stdout io.Writer, name string, args ...string) error {
	fmt.Fprintln(stdout, "agent output")
	return f.run(dir, name, false, args...)
}

func testAgent(exec *fakeExecutor) *Agent {
	return &Agent{bin: DefaultAgentBin, exec: exec}
}

func writeNote(t *testing.T, dir, name, id string) {
	t.Helper()
	body := fmt.Sprintf("---\nid: %s\n---\n\n# %s\n", id, name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testConfig(source, vault string) types.ImportConfig {
	return types.ImportConfig{
		SourceDir:    source,
		VaultPath:    vault,
		Instructions: "File the note.",
	}
}

func TestAgentCheck(t *testing.T) {
	agent := testAgent(&fakeExecutor{})
	assert.NoError(t, agent.Check())

	missing := testAgent(&fakeExecutor{lookPathErr: errors.New("not found")})
	err := missing.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestAgentImportArgs(t *testing.T) {
	exec := &fakeExecutor{}
	agent := testAgent(exec)

	var out bytes.Buffer
	require.NoError(t, agent.Import("do the thing", "/vault", false, &out))
	require.NoError(t, agent.Import("do the thing", "/vault", true, &out))

	require.Len(t, exec.calls, 2)
	captured := exec.calls[0]
	assert.False(t, captured.interactive)
	assert.Equal(t, "/vault", captured.dir)
	assert.Equal(t, []string{"--print", "--dangerously-skip-permissions", "do the thing"}, captured.args)

	live := exec.calls[1]
	assert.True(t, live.interactive)
	assert.Equal(t, []string{"--dangerously-skip-permissions", "do the thing"}, live.args)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("File it.", "a.md", "/notes/a.md", "/vault", "# Meeting\n")
	assert.Contains(t, prompt, "File it.")
	assert.Contains(t, prompt, "MEETING NOTE TO PROCESS:")
	assert.Contains(t, prompt, "Filename: a.md")
	assert.Contains(t, prompt, "Source: /notes/a.md")
	assert.Contains(t, prompt, "Vault: /vault")
	assert.Contains(t, prompt, "# Meeting")
}

func TestRunImportsAndRecords(t *testing.T) {
	source, vault := t.TempDir(), t.TempDir()
	writeNote(t, source, "2024-01-01-standup.md", "granola-1")
	writeNote(t, source, "2024-01-02-retro.md", "granola-2")

	m, err := manifest.Load(vault)
	require.NoError(t, err)

	exec := &fakeExecutor{}
	var out bytes.Buffer
	result, err := Run(testConfig(source, vault), m, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, exec.calls, 2)

	reloaded, err := manifest.Load(vault)
	require.NoError(t, err)
	assert.Contains(t, reloaded.Imported, "granola-1")
	assert.Contains(t, reloaded.Imported, "granola-2")
	require.NotNil(t, reloaded.LastRun)
	assert.Contains(t, out.String(), "Complete: 2 imported, 0 failed")
}

func TestRunSkipsAlreadyImported(t *testing.T) {
	source, vault := t.TempDir(), t.TempDir()
	writeNote(t, source, "2024-01-01-standup.md", "granola-1")

	m, err := manifest.Load(vault)
	require.NoError(t, err)

	exec := &fakeExecutor{}
	var out bytes.Buffer
	_, err = Run(testConfig(source, vault), m, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)

	// Unchanged notes stay imported on the next run.
	m2, err := manifest.Load(vault)
	require.NoError(t, err)
	out.Reset()
	result, err := Run(testConfig(source, vault), m2, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Len(t, exec.calls, 1)
	assert.Contains(t, out.String(), "Nothing to import.")
}

func TestRunFailedNoteStaysEligible(t *testing.T) {
	source, vault := t.TempDir(), t.TempDir()
	writeNote(t, source, "2024-01-01-bad.md", "granola-bad")
	writeNote(t, source, "2024-01-02-good.md", "granola-good")

	m, err := manifest.Load(vault)
	require.NoError(t, err)

	exec := &fakeExecutor{failFor: "granola-bad"}
	var out bytes.Buffer
	result, err := Run(testConfig(source, vault), m, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)

	reloaded, err := manifest.Load(vault)
	require.NoError(t, err)
	assert.NotContains(t, reloaded.Imported, "granola-bad")
	assert.Contains(t, reloaded.Imported, "granola-good")
	assert.Contains(t, out.String(), "Complete: 1 imported, 1 failed")
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	source, vault := t.TempDir(), t.TempDir()
	writeNote(t, source, "2024-01-01-standup.md", "granola-1")

	m, err := manifest.Load(vault)
	require.NoError(t, err)

	cfg := testConfig(source, vault)
	cfg.DryRun = true

	exec := &fakeExecutor{}
	var out bytes.Buffer
	result, err := Run(cfg, m, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Dry run - would import:")
	assert.Contains(t, out.String(), "2024-01-01-standup.md")

	_, err = os.Stat(filepath.Join(vault, manifest.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestRunForceAllReimports(t *testing.T) {
	source, vault := t.TempDir(), t.TempDir()
	writeNote(t, source, "2024-01-01-standup.md", "granola-1")

	m, err := manifest.Load(vault)
	require.NoError(t, err)

	exec := &fakeExecutor{}
	var out bytes.Buffer
	_, err = Run(testConfig(source, vault), m, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)

	cfg := testConfig(source, vault)
	cfg.ForceAll = true
	m2, err := manifest.Load(vault)
	require.NoError(t, err)
	result, err := Run(cfg, m2, testAgent(exec), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, exec.calls, 2)
}
