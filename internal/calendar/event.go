// Package calendar holds the event snapshot types and the query resolver
// that turns an intent plus a time-bounded event list into a reply.
package calendar

import "time"

// EventRef is an immutable per-request snapshot of a calendar event. The
// core only reads these; the owning store is never mutated through one.
type EventRef struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end,omitempty"`
	Source      string    `json:"source"` // owning calendar: personal, work
}

// EventTime is either a date-only value (AllDay) or an instant carrying an
// explicit zone.
type EventTime struct {
	Time   time.Time `json:"time"`
	AllDay bool      `json:"all_day,omitempty"`
}

func (t EventTime) IsZero() bool { return t.Time.IsZero() }

// EventDraft is what the core hands to a calendar store to create an event.
type EventDraft struct {
	Summary string
	Start   time.Time
	End     time.Time
	Source  string
}
