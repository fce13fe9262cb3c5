// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// minActionLength is the shortest trimmed action item kept. Shorter
// matches are regex noise, not tasks.
const minActionLength = 4

// Scanner produces candidate action-item strings from raw text. The
// default is a regex heuristic; a stricter parser can be swapped in
// without touching rendering or sync logic.
type Scanner interface {
	Scan(text string) []string
}

// regexScanner matches action items against a fixed pattern list, in
// pattern order, all non-overlapping matches per pattern.
type regexScanner struct {
	patterns []*regexp.Regexp
}

// actionPatterns is the fixed heuristic set, evaluated in order:
// unchecked checkbox bullets, keyword label lines, and keyword bullets.
var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*[-*]\s*\[ ?\]\s*(.+)$`),
	regexp.MustCompile(`(?mi)^\s*(?:TODO|ACTION ITEMS?|ACTION|FOLLOW[- ]UP|NEXT STEPS?)\s*[:\-]\s*(.+)$`),
	regexp.MustCompile(`(?mi)^\s*[-*]\s*(?:\[ ?\]\s*)?(?:TODO|ACTION)\s*[:\-]\s*(.+)$`),
}

// NewScanner returns the default regex-heuristic action-item scanner.
func NewScanner() Scanner {
	return &regexScanner{patterns: actionPatterns}
}

func (s *regexScanner) Scan(text string) []string {
	var items []string
	for _, p := range s.patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			items = append(items, m[1])
		}
	}
	return items
}

// ActionItems extracts deduplicated action items from the notes text and
// the rendered transcript text, in that order. An item is kept when its
// trimmed length exceeds three characters and it is not already present
// verbatim.
func ActionItems(scanner Scanner, notesText, transcriptText string) []string {
	if scanner == nil {
		scanner = NewScanner()
	}

	var items []string
	seen := make(map[string]bool)
	for _, text := range []string{notesText, transcriptText} {
		if text == "" {
			continue
		}
		for _, candidate := range scanner.Scan(text) {
			item := strings.TrimSpace(candidate)
			if len(item) < minActionLength || seen[item] {
				continue
			}
			seen[item] = true
			items = append(items, item)
		}
	}
	return items
}
