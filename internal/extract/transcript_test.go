// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/kllymx/Breakfast/pkg/types"
)

func TestFormatTranscriptEmpty(t *testing.T) {
	if got := FormatTranscript(nil); got != NoTranscript {
		t.Errorf("FormatTranscript(nil) = %q, want placeholder", got)
	}
	if got := FormatTranscript([]types.TranscriptEntry{}); got != NoTranscript {
		t.Errorf("FormatTranscript(empty) = %q, want placeholder", got)
	}
}

func TestFormatTranscriptSpeakers(t *testing.T) {
	tests := []struct {
		name  string
		entry types.TranscriptEntry
		want  string
	}{
		{
			name:  "microphone source renders as Me",
			entry: types.TranscriptEntry{Source: "microphone", Speaker: "Alice", Text: "hello"},
			want:  "**Me** : hello",
		},
		{
			name:  "speaker label kept for other sources",
			entry: types.TranscriptEntry{Source: "system", Speaker: "Alice", Text: "hi"},
			want:  "**Alice** : hi",
		},
		{
			name:  "generic fallback when no label",
			entry: types.TranscriptEntry{Source: "system", Text: "hi"},
			want:  "**Speaker** : hi",
		},
		{
			name: "timestamp rendered in short clock form",
			entry: types.TranscriptEntry{
				Source:         "system",
				Speaker:        "Bob",
				Text:           "on time",
				StartTimestamp: "2024-01-01T14:30:05Z",
			},
			want: "**Bob** [2:30:05 PM]: on time",
		},
		{
			name: "unparseable timestamp omitted",
			entry: types.TranscriptEntry{
				Source:         "system",
				Speaker:        "Bob",
				Text:           "late",
				StartTimestamp: "not-a-time",
			},
			want: "**Bob** : late",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTranscript([]types.TranscriptEntry{tt.entry})
			if got != tt.want {
				t.Errorf("FormatTranscript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTranscriptOrdering(t *testing.T) {
	entries := []types.TranscriptEntry{
		{SequenceNumber: 3, Speaker: "C", Text: "third"},
		{Speaker: "A1", Text: "first unordered"},
		{SequenceNumber: 1, Speaker: "B", Text: "second"},
		{Speaker: "A2", Text: "second unordered"},
	}

	got := FormatTranscript(entries)
	lines := strings.Split(got, "\n\n")
	wantOrder := []string{"A1", "A2", "B", "C"}
	if len(lines) != len(wantOrder) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantOrder))
	}
	for i, speaker := range wantOrder {
		if !strings.HasPrefix(lines[i], "**"+speaker+"**") {
			t.Errorf("line %d = %q, want speaker %s", i, lines[i], speaker)
		}
	}
}
