// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a normalized meeting document into its markdown
// form. Rendering is deterministic: the same inputs always produce the
// same bytes, with all timestamps formatted in UTC using fixed layouts.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/kllymx/Breakfast/internal/extract"
	"github.com/kllymx/Breakfast/pkg/types"
)

const (
	// longLayout is the fixed human-readable long form for meeting
	// timestamps.
	longLayout = "Monday, January 2, 2006 at 3:04 PM"

	// fallbackTitle replaces an absent meeting title.
	fallbackTitle = "Untitled Meeting"

	noAttendees = "*No attendees recorded*"
	noNotes     = "*No notes recorded*"
	noSummary   = "*No summary available*"
)

// Markdown renders one meeting with its side metadata and transcript
// entries into the fixed-section markdown layout. scanner may be nil to
// use the default action-item heuristics.
func Markdown(doc *types.Document, meta *types.MeetingMetadata, entries []types.TranscriptEntry, scanner extract.Scanner) string {
	attendees := extract.Attendees(doc, meta)
	transcript := extract.FormatTranscript(entries)

	notes := doc.NotesMarkdown
	if notes == "" {
		notes = doc.NotesPlain
	}
	actionSource := transcript
	if actionSource == extract.NoTranscript {
		actionSource = ""
	}
	items := extract.ActionItems(scanner, notes, actionSource)

	title := doc.Title
	if title == "" {
		title = fallbackTitle
	}

	sections := []string{
		frontmatter(doc, attendees, title),
		"",
		"# " + title,
		"",
		meetingInfo(doc),
		"",
		"---",
		"",
		"## Attendees",
		"",
		attendeeList(attendees),
		"",
		"---",
		"",
		"## Notes",
		"",
		orPlaceholder(notes, noNotes),
		"",
		"---",
		"",
		"## Summary",
		"",
		orPlaceholder(firstNonEmpty(doc.Summary, doc.Overview), noSummary),
	}

	if len(items) > 0 {
		sections = append(sections,
			"",
			"---",
			"",
			"## Action Items",
			"",
			actionList(items),
		)
	}

	sections = append(sections,
		"",
		"---",
		"",
		"## Transcript",
		"",
		transcript,
		"",
	)

	return strings.Join(sections, "\n")
}

// frontmatter builds the structured header block. Source timestamps pass
// through verbatim; only presence decides which lines appear.
func frontmatter(doc *types.Document, attendees []types.Attendee, title string) string {
	lines := []string{
		"---",
		"id: " + doc.ID,
		fmt.Sprintf("title: %q", title),
		"created_at: " + doc.CreatedAt,
		"updated_at: " + doc.Updated(),
	}

	if start := doc.CalendarEvent.StartTime(); start != "" {
		lines = append(lines, "meeting_start: "+start)
	}
	if end := doc.CalendarEvent.EndTime(); end != "" {
		lines = append(lines, "meeting_end: "+end)
	}
	if len(attendees) > 0 {
		quoted := make([]string, len(attendees))
		for i, a := range attendees {
			quoted[i] = fmt.Sprintf("%q", firstNonEmpty(a.Email, a.Name))
		}
		lines = append(lines, "attendees: ["+strings.Join(quoted, ", ")+"]")
	}
	if link := doc.CalendarEvent.Link(); link != "" {
		lines = append(lines, "meeting_link: "+link)
	}

	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}

// meetingInfo renders the start/end/duration block when calendar times
// exist, else a single date line from the creation timestamp.
func meetingInfo(doc *types.Document) string {
	var b strings.Builder

	start := doc.CalendarEvent.StartTime()
	end := doc.CalendarEvent.EndTime()
	if start != "" {
		fmt.Fprintf(&b, "**Start:** %s\n", formatDateTime(start))
		if end != "" {
			fmt.Fprintf(&b, "**End:** %s\n", formatDateTime(end))
			fmt.Fprintf(&b, "**Duration:** %s\n", formatDuration(start, end))
		}
	} else {
		fmt.Fprintf(&b, "**Date:** %s\n", formatDateTime(doc.CreatedAt))
	}

	if platform := doc.CalendarEvent.Platform(); platform != "" {
		fmt.Fprintf(&b, "**Platform:** %s\n", platform)
	}
	if link := doc.CalendarEvent.Link(); link != "" {
		fmt.Fprintf(&b, "**Meeting Link:** %s\n", link)
	}
	return b.String()
}

// attendeeList renders attendees as bullets: name, <email> when present,
// and the organizer marker.
func attendeeList(attendees []types.Attendee) string {
	if len(attendees) == 0 {
		return noAttendees
	}

	lines := make([]string, len(attendees))
	for i, a := range attendees {
		var parts []string
		if a.Name != "" {
			parts = append(parts, a.Name)
		}
		if a.Email != "" {
			parts = append(parts, "<"+a.Email+">")
		}
		if a.Role == types.RoleOrganizer {
			parts = append(parts, "(organizer)")
		}
		lines[i] = "- " + strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

// actionList renders action items as unchecked checkbox bullets.
func actionList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- [ ] " + item
	}
	return strings.Join(lines, "\n")
}

// formatDateTime renders an RFC 3339 timestamp in the long form, UTC.
// Unparseable input passes through unchanged so a malformed record still
// renders.
func formatDateTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(longLayout)
}

// formatDuration renders the meeting length as whole hours and minutes:
// "H hour(s) M minute(s)" when at least an hour, else "M minute(s)".
func formatDuration(startRaw, endRaw string) string {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return ""
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return ""
	}

	ms := end.Sub(start).Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000

	if hours > 0 {
		s := fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
		if minutes > 0 {
			s += fmt.Sprintf(" %d %s", minutes, plural(minutes, "minute"))
		}
		return s
	}
	return fmt.Sprintf("%d %s", minutes, plural(minutes, "minute"))
}

func plural(n int64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
