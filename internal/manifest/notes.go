// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Note is one exported markdown file considered for import.
type Note struct {
	Filename string
	Path     string
	ModTime  time.Time
}

// ListNotes returns the markdown files in dir, sorted by filename. A
// missing directory yields an empty list.
func ListNotes(dir string) ([]Note, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var notes []Note
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		notes = append(notes, Note{
			Filename: entry.Name(),
			Path:     filepath.Join(dir, entry.Name()),
			ModTime:  info.ModTime(),
		})
	}
	sort.Slice(notes, func(a, b int) bool { return notes[a].Filename < notes[b].Filename })
	return notes, nil
}

// idLine matches the id field of a rendered note's header block.
var idLine = regexp.MustCompile(`(?m)^id:\s*(.+)$`)

// header is the subset of frontmatter fields the tracker cares about.
type header struct {
	ID string `yaml:"id"`
}

// NoteID recovers the canonical note identifier from a file: the id
// field of its frontmatter block, or the filename minus extension when
// the field cannot be found. Hand-edited files therefore still resolve
// to a stable identity.
func NoteID(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallbackID(path)
	}
	if id := HeaderID(string(data)); id != "" {
		return id
	}
	return fallbackID(path)
}

// HeaderID extracts the id field from a note's content. The frontmatter
// block is parsed as YAML when well-formed; a bare id: line anywhere in
// the file is the fallback for hand-edited headers.
func HeaderID(content string) string {
	if block, ok := frontmatterBlock(content); ok {
		var h header
		if err := yaml.Unmarshal([]byte(block), &h); err == nil && h.ID != "" {
			return strings.TrimSpace(h.ID)
		}
	}
	if m := idLine.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// frontmatterBlock returns the text between the leading "---" fence pair.
func frontmatterBlock(content string) (string, bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", false
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func fallbackID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
