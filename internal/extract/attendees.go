// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract normalizes raw meeting records into the fields the
// renderer consumes: attendee lists, transcript text, and action items.
// Every function in this package is total: malformed or absent input
// degrades to an empty value, never an error.
package extract

import (
	"github.com/kllymx/Breakfast/pkg/types"
)

// nameResolvers is the ordered fallback chain for a person's display
// name: the direct name field first, then the nested person-details full
// name. The first non-empty result wins.
var nameResolvers = []func(*types.Person) string{
	func(p *types.Person) string { return p.Name },
	func(p *types.Person) string {
		if p.Details == nil || p.Details.Person == nil || p.Details.Person.Name == nil {
			return ""
		}
		return p.Details.Person.Name.FullName
	},
}

// resolveName runs the fallback chain against p. A nil person resolves
// to the empty string.
func resolveName(p *types.Person) string {
	if p == nil {
		return ""
	}
	for _, r := range nameResolvers {
		if name := r(p); name != "" {
			return name
		}
	}
	return ""
}

// Attendees builds the ordered, email-deduplicated attendee list for a
// meeting. Sources are consulted in priority order: the creator (side
// metadata first, then the record's people sub-object) becomes the
// organizer; then the metadata or people attendee list; then the
// calendar event's attendee list.
//
// Deduplication compares exact email strings, empty included. That means
// the first empty-email attendee occupies the "" key and suppresses
// later empty-email entries from other sources.
func Attendees(doc *types.Document, meta *types.MeetingMetadata) []types.Attendee {
	var attendees []types.Attendee

	hasEmail := func(email string) bool {
		for _, a := range attendees {
			if a.Email == email {
				return true
			}
		}
		return false
	}

	creator := creatorOf(doc, meta)
	if creator != nil {
		attendees = append(attendees, types.Attendee{
			Name:  resolveName(creator),
			Email: creator.Email,
			Role:  types.RoleOrganizer,
		})
	}

	listed := attendeesOf(doc, meta)
	for i := range listed {
		p := &listed[i]
		if hasEmail(p.Email) {
			continue
		}
		attendees = append(attendees, types.Attendee{
			Name:  resolveName(p),
			Email: p.Email,
			Role:  types.RoleAttendee,
		})
	}

	if doc.CalendarEvent != nil {
		for _, ca := range doc.CalendarEvent.Attendees {
			if hasEmail(ca.Email) {
				continue
			}
			attendees = append(attendees, types.Attendee{
				Name:  ca.DisplayName,
				Email: ca.Email,
				Role:  types.RoleAttendee,
			})
		}
	}

	return attendees
}

// creatorOf returns the organizer source: metadata creator when present,
// else the record's people creator.
func creatorOf(doc *types.Document, meta *types.MeetingMetadata) *types.Person {
	if meta != nil && meta.Creator != nil {
		return meta.Creator
	}
	if doc.People != nil {
		return doc.People.Creator
	}
	return nil
}

// attendeesOf returns the attendee source list: metadata attendees when
// present, else the record's people attendees.
func attendeesOf(doc *types.Document, meta *types.MeetingMetadata) []types.Person {
	if meta != nil && meta.Attendees != nil {
		return meta.Attendees
	}
	if doc.People != nil {
		return doc.People.Attendees
	}
	return nil
}
