package calendar

import (
	"strings"
	"time"
)

// Type categorizes an event.
type Type string

const (
	TypeMeeting      Type = "meeting"
	TypePresentation Type = "presentation"
	TypeDeadline     Type = "deadline"
	TypeTraining     Type = "training"
	TypePersonal     Type = "personal"
	TypeWorkout      Type = "workout"
	TypeDinner       Type = "dinner"
	TypeTravel       Type = "travel"
)

// Types lists every event type in display order.
func Types() []Type {
	return []Type{TypeMeeting, TypePresentation, TypeDeadline, TypeTraining, TypePersonal, TypeWorkout, TypeDinner, TypeTravel}
}

func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Priority ranks an event.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Event is a calendar entry. End equals Start for point-in-time events such
// as deadlines.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Start       time.Time `json:"start" yaml:"start"`
	End         time.Time `json:"end" yaml:"end"`
	AllDay      bool      `json:"all_day,omitempty" yaml:"all_day,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
	Type        Type      `json:"type" yaml:"type"`
	Attendees   []string  `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Recurring   bool      `json:"recurring,omitempty" yaml:"recurring,omitempty"`
}

// Duration returns End minus Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

func (e Event) overlaps(from, to time.Time) bool {
	if !e.Start.Before(to) {
		return false
	}
	return e.End.After(from) || !e.Start.Before(from)
}

func (e Event) clone() Event {
	e.Attendees = append([]string(nil), e.Attendees...)
	return e
}

// EventFields is a partial event used by Add and Update.
type EventFields struct {
	Title       *string    `json:"title,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	AllDay      *bool      `json:"all_day,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Type        *Type      `json:"type,omitempty"`
	Attendees   []string   `json:"attendees,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Recurring   *bool      `json:"recurring,omitempty"`
}

func (f EventFields) merge(e Event) Event {
	if f.Title != nil {
		e.Title = strings.TrimSpace(*f.Title)
	}
	if f.Start != nil {
		e.Start = *f.Start
	}
	if f.End != nil {
		e.End = *f.End
	}
	if f.AllDay != nil {
		e.AllDay = *f.AllDay
	}
	if f.Description != nil {
		e.Description = *f.Description
	}
	if f.Location != nil {
		e.Location = strings.TrimSpace(*f.Location)
	}
	if f.Type != nil {
		e.Type = *f.Type
	}
	if f.Attendees != nil {
		e.Attendees = cleanAttendees(f.Attendees)
	}
	if f.Priority != nil {
		e.Priority = *f.Priority
	}
	if f.Recurring != nil {
		e.Recurring = *f.Recurring
	}
	return e
}

func cleanAttendees(in []string) []string {
	out := make([]string, 0, len(in))
	for _, name := range in {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
