// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kllymx/Breakfast/pkg/types"
)

// sourceMicrophone marks self-recorded audio; its entries render with the
// literal speaker "Me".
const sourceMicrophone = "microphone"

// clockLayout is the fixed short clock form used for transcript
// timestamps. Rendering is pinned to UTC so output does not depend on
// the host timezone.
const clockLayout = "3:04:05 PM"

// NoTranscript is the placeholder rendered when a meeting has no
// transcript entries.
const NoTranscript = "*No transcript available*"

// FormatTranscript renders transcript entries as markdown lines, one
// blank line between entries. Entries are sorted by sequence number
// ascending with a stable sort, so entries without a sequence number
// keep their original relative order at position 0.
func FormatTranscript(entries []types.TranscriptEntry) string {
	if len(entries) == 0 {
		return NoTranscript
	}

	sorted := make([]types.TranscriptEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].SequenceNumber < sorted[b].SequenceNumber
	})

	lines := make([]string, len(sorted))
	for i, entry := range sorted {
		speaker := entry.Speaker
		if entry.Source == sourceMicrophone {
			speaker = "Me"
		} else if speaker == "" {
			speaker = "Speaker"
		}

		if ts := clockStamp(entry.StartTimestamp); ts != "" {
			lines[i] = fmt.Sprintf("**%s** [%s]: %s", speaker, ts, entry.Text)
		} else {
			lines[i] = fmt.Sprintf("**%s** : %s", speaker, entry.Text)
		}
	}
	return strings.Join(lines, "\n\n")
}

// clockStamp formats an RFC 3339 timestamp as the short clock form in
// UTC. Unparseable or absent input yields "".
func clockStamp(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}
	return t.UTC().Format(clockLayout)
}
