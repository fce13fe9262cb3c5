// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the breakfast
// pipeline: raw cache records, derived attendees and action items, and
// per-stage configuration.
package types

import "time"

// Document is one meeting record from the Granola cache document table.
// Every field except ID is optional in the source; decoding degrades to
// zero values rather than failing.
type Document struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	ValidMeeting  bool   `json:"valid_meeting"`
	DeletedAt     string `json:"deleted_at"`
	NotesMarkdown string `json:"notes_markdown"`
	NotesPlain    string `json:"notes_plain"`
	Summary       string `json:"summary"`
	Overview      string `json:"overview"`

	// CalendarEvent is present when the meeting was created from a
	// calendar invite.
	CalendarEvent *CalendarEvent `json:"google_calendar_event"`

	// People carries creator and attendees when no side metadata record
	// exists for the meeting.
	People *People `json:"people"`
}

// Created parses the creation timestamp. ok is false when the raw value
// does not parse as RFC 3339.
func (d *Document) Created() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339, d.CreatedAt)
	return t, err == nil
}

// Updated returns the last-update timestamp, falling back to the creation
// timestamp when absent.
func (d *Document) Updated() string {
	if d.UpdatedAt != "" {
		return d.UpdatedAt
	}
	return d.CreatedAt
}

// CalendarEvent is the embedded calendar sub-object of a Document.
type CalendarEvent struct {
	Start          *EventTime         `json:"start"`
	End            *EventTime         `json:"end"`
	Attendees      []CalendarAttendee `json:"attendees"`
	ConferenceData *ConferenceData    `json:"conferenceData"`
}

// StartTime returns the event start timestamp, or "" when absent.
func (e *CalendarEvent) StartTime() string {
	if e == nil || e.Start == nil {
		return ""
	}
	return e.Start.DateTime
}

// EndTime returns the event end timestamp, or "" when absent.
func (e *CalendarEvent) EndTime() string {
	if e == nil || e.End == nil {
		return ""
	}
	return e.End.DateTime
}

// Link returns the first conferencing entry-point URI, or "" when absent.
func (e *CalendarEvent) Link() string {
	if e == nil || e.ConferenceData == nil || len(e.ConferenceData.EntryPoints) == 0 {
		return ""
	}
	return e.ConferenceData.EntryPoints[0].URI
}

// Platform returns the conferencing solution name, or "" when absent.
func (e *CalendarEvent) Platform() string {
	if e == nil || e.ConferenceData == nil || e.ConferenceData.ConferenceSolution == nil {
		return ""
	}
	return e.ConferenceData.ConferenceSolution.Name
}

// EventTime wraps the calendar timestamp shape.
type EventTime struct {
	DateTime string `json:"dateTime"`
}

// CalendarAttendee is one entry of a calendar event's attendee list.
type CalendarAttendee struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ConferenceData holds the conferencing platform and join links.
type ConferenceData struct {
	ConferenceSolution *ConferenceSolution `json:"conferenceSolution"`
	EntryPoints        []EntryPoint        `json:"entryPoints"`
}

// ConferenceSolution names the conferencing platform.
type ConferenceSolution struct {
	Name string `json:"name"`
}

// EntryPoint is one way of joining the conference.
type EntryPoint struct {
	URI string `json:"uri"`
}

// People is the embedded creator/attendees sub-object of a Document.
type People struct {
	Creator   *Person  `json:"creator"`
	Attendees []Person `json:"attendees"`
}

// Person is a creator or attendee in the people sub-object or the
// metadata side table. The display name may live directly on the record
// or nested under the person-details path.
type Person struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Details *PersonDetails `json:"details"`
}

// PersonDetails is the richer nested shape carried by metadata records.
type PersonDetails struct {
	Person *PersonRecord `json:"person"`
}

// PersonRecord holds the nested name record.
type PersonRecord struct {
	Name *PersonName `json:"name"`
}

// PersonName holds the nested full display name.
type PersonName struct {
	FullName string `json:"fullName"`
}

// MeetingMetadata is the optional side record keyed by meeting id. When
// present it takes precedence over the document's own People sub-object.
type MeetingMetadata struct {
	Creator   *Person  `json:"creator"`
	Attendees []Person `json:"attendees"`
}

// TranscriptEntry is one utterance of a meeting transcript.
type TranscriptEntry struct {
	Text           string `json:"text"`
	Source         string `json:"source"`
	Speaker        string `json:"speaker"`
	StartTimestamp string `json:"start_timestamp"`
	SequenceNumber int    `json:"sequence_number"`
}

// AttendeeRole distinguishes the meeting organizer from other attendees.
type AttendeeRole string

const (
	RoleOrganizer AttendeeRole = "organizer"
	RoleAttendee  AttendeeRole = "attendee"
)

// Attendee is a normalized meeting participant. At most one organizer
// appears per document, always first in the list.
type Attendee struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  AttendeeRole `json:"role"`
}
