// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer hands eligible exported notes to the external agent
// that performs the vault-side import. The agent is opaque: breakfast
// builds the prompt, spawns the process scoped to the vault, and records
// success or failure per note.
package importer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultAgentBin is the agent binary looked up on PATH when none is
// configured.
const DefaultAgentBin = "claude"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunInteractive(dir, name string, args ...string) error
	RunCaptured(dir string, stdout io.Writer, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunInteractive(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (o *osExecutor) RunCaptured(dir string, stdout io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// Agent invokes the external import agent, one note at a time.
type Agent struct {
	bin  string
	exec executor
}

// NewAgent builds an agent runner for the given binary name. An empty
// name selects the default.
func NewAgent(bin string) *Agent {
	if bin == "" {
		bin = DefaultAgentBin
	}
	return &Agent{bin: bin, exec: &osExecutor{}}
}

// Check reports whether the agent binary is available on PATH. A missing
// agent is a fatal setup error for the import stage.
func (a *Agent) Check() error {
	if _, err := a.exec.LookPath(a.bin); err != nil {
		return fmt.Errorf("agent binary %q not found in PATH", a.bin)
	}
	return nil
}

// Import runs the agent against one note. In live mode the agent is
// attached to the terminal; otherwise its output streams to stdout. The
// process runs to natural completion; a non-zero exit is a failure for
// this note only.
func (a *Agent) Import(prompt, vaultPath string, live bool, stdout io.Writer) error {
	if live {
		args := []string{"--dangerously-skip-permissions", prompt}
		if err := a.exec.RunInteractive(vaultPath, a.bin, args...); err != nil {
			return fmt.Errorf("agent run: %w", err)
		}
		return nil
	}

	args := []string{"--print", "--dangerously-skip-permissions", prompt}
	if err := a.exec.RunCaptured(vaultPath, stdout, a.bin, args...); err != nil {
		return fmt.Errorf("agent run: %w", err)
	}
	return nil
}

// BuildPrompt assembles the instruction text handed to the agent for one
// note: the fixed instructions, the note's provenance, and its full
// content.
func BuildPrompt(instructions, filename, notePath, vaultPath, content string) string {
	return fmt.Sprintf(`%s

MEETING NOTE TO PROCESS:
Filename: %s
Source: %s
Vault: %s

---
%s
---

Process this meeting note according to the instructions. Create or update files in the vault as needed. Report what you did.`,
		instructions, filename, notePath, vaultPath, content)
}
