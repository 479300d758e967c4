// Package calendar stores scheduled events and answers range queries for the
// calendar view.
package calendar

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

const entity = "event"

// Store keeps events in insertion order.
type Store struct {
	mu     sync.RWMutex
	events []Event
	newID  func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the event id generator (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefaultStore builds a store holding DefaultEvents.
func NewDefaultStore(opts ...Option) *Store {
	s := NewStore(opts...)
	_ = s.Seed(DefaultEvents()...)
	return s
}

// Seed inserts events that already carry ids. Either every event is stored
// or none is.
func (s *Store) Seed(events ...Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := make(map[string]bool, len(s.events)+len(events))
	for _, e := range s.events {
		taken[e.ID] = true
	}
	prepared := make([]Event, 0, len(events))
	for _, e := range events {
		e = normalize(e)
		if e.ID == "" {
			e.ID = s.newID()
		}
		if taken[e.ID] {
			return storeerr.Invalid(entity, "id", "duplicates event "+e.ID)
		}
		if err := validate(e); err != nil {
			return err
		}
		taken[e.ID] = true
		prepared = append(prepared, e)
	}
	s.events = append(s.events, prepared...)
	return nil
}

// Add validates fields and stores a new event.
func (s *Store) Add(fields EventFields) (Event, error) {
	e := normalize(fields.merge(Event{}))
	if err := validate(e); err != nil {
		return Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.newID()
	for s.indexLocked(e.ID) >= 0 {
		e.ID = s.newID()
	}
	s.events = append(s.events, e)
	return e.clone(), nil
}

// Update merges fields into the stored event.
func (s *Store) Update(id string, fields EventFields) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Event{}, storeerr.NotFound(entity, id)
	}
	e := fields.merge(s.events[i].clone())
	if err := validate(e); err != nil {
		return Event{}, err
	}
	s.events[i] = e
	return e.clone(), nil
}

// Delete removes the event. Unknown ids are a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.events = slices.Delete(s.events, i, i+1)
	return true
}

// Move shifts the event to start at newStart while keeping its duration.
func (s *Store) Move(id string, newStart time.Time) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Event{}, storeerr.NotFound(entity, id)
	}
	e := &s.events[i]
	d := e.Duration()
	e.Start = newStart
	e.End = newStart.Add(d)
	return e.clone(), nil
}

// Resize changes the event end. An end before the start is rejected.
func (s *Store) Resize(id string, newEnd time.Time) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Event{}, storeerr.NotFound(entity, id)
	}
	if newEnd.Before(s.events[i].Start) {
		return Event{}, storeerr.Invalid(entity, "end", "is before start")
	}
	s.events[i].End = newEnd
	return s.events[i].clone(), nil
}

// Range returns the events overlapping [from, to) ordered by start time.
// Events starting at the same instant keep insertion order.
func (s *Store) Range(from, to time.Time) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.overlaps(from, to) {
			out = append(out, e.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Events returns every event in insertion order.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) Event(id string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Event{}, storeerr.NotFound(entity, id)
	}
	return s.events[i].clone(), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.events, func(e Event) bool { return e.ID == id })
}

func normalize(e Event) Event {
	e.Title = strings.TrimSpace(e.Title)
	if e.End.IsZero() {
		e.End = e.Start
	}
	if e.Type == "" {
		e.Type = TypeMeeting
	}
	if e.Priority == "" {
		e.Priority = PriorityMedium
	}
	e.Attendees = cleanAttendees(e.Attendees)
	return e
}

func validate(e Event) error {
	switch {
	case e.Title == "":
		return storeerr.Missing(entity, "title")
	case e.Start.IsZero():
		return storeerr.Missing(entity, "start")
	case e.End.Before(e.Start):
		return storeerr.Invalid(entity, "end", "is before start")
	case !e.Type.Valid():
		return storeerr.Invalid(entity, "type", "unknown type "+string(e.Type))
	case !e.Priority.Valid():
		return storeerr.Invalid(entity, "priority", "unknown priority "+string(e.Priority))
	}
	return nil
}
