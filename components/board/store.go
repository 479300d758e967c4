// Package board implements the kanban board store. Cards live in a flat table
// keyed by id; each column is an ordered sequence of card ids and an owner
// index maps every card to the column holding it, so a card is always in
// exactly one column.
package board

import (
	"slices"
	"strings"
	"sync"

	"github.com/ettle/strcase"
	"github.com/google/uuid"

	"github.com/goliatone/go-admin-dashboard/components/display"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

const (
	cardEntity   = "card"
	columnEntity = "column"
)

type column struct {
	id    string
	title string
	cards []string
}

// Store holds the board. All methods are safe for concurrent use; reads
// return copies.
type Store struct {
	mu      sync.RWMutex
	order   []string
	columns map[string]*column
	cards   map[string]Card
	owner   map[string]string
	newID   func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the card id generator (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore builds an empty board.
func NewStore(opts ...Option) *Store {
	s := &Store{
		columns: make(map[string]*column),
		cards:   make(map[string]Card),
		owner:   make(map[string]string),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefaultStore builds a board seeded with DefaultColumns.
func NewDefaultStore(opts ...Option) *Store {
	s := NewStore(opts...)
	for _, col := range DefaultColumns() {
		if _, err := s.AddColumn(col.ID, col.Title); err != nil {
			continue
		}
		for _, card := range col.Cards {
			_ = s.SeedCard(col.ID, card)
		}
	}
	return s
}

// AddColumn appends a column. An empty id is derived from the title
// ("In Progress" becomes "in-progress").
func (s *Store) AddColumn(id, title string) (ColumnSummary, error) {
	title = strings.TrimSpace(title)
	id = strings.TrimSpace(id)
	if id == "" {
		id = strcase.ToKebab(title)
	}
	if id == "" {
		return ColumnSummary{}, storeerr.Missing(columnEntity, "id")
	}
	if title == "" {
		title = id
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.columns[id]; exists {
		return ColumnSummary{}, storeerr.Invalid(columnEntity, "id", "duplicates column "+id)
	}
	s.columns[id] = &column{id: id, title: title}
	s.order = append(s.order, id)
	return ColumnSummary{ID: id, Title: title}, nil
}

// SeedCard appends a card that already carries an id. A missing id is
// generated.
func (s *Store) SeedCard(columnID string, card Card) error {
	if card.Priority == "" {
		card.Priority = PriorityMedium
	}
	if err := validate(card); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.columns[columnID]
	if !ok {
		return storeerr.NotFound(columnEntity, columnID)
	}
	if card.ID == "" {
		card.ID = s.newID()
	}
	if _, exists := s.cards[card.ID]; exists {
		return storeerr.Invalid(cardEntity, "id", "duplicates card "+card.ID)
	}
	s.insert(col, card)
	return nil
}

// AddCard validates fields, assigns a fresh id and appends the card to the
// end of the column.
func (s *Store) AddCard(columnID string, fields CardFields) (Card, error) {
	card := fields.merge(Card{Priority: PriorityMedium})
	if err := validate(card); err != nil {
		return Card{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.columns[columnID]
	if !ok {
		return Card{}, storeerr.NotFound(columnEntity, columnID)
	}
	card.ID = s.newID()
	for _, taken := s.cards[card.ID]; taken; _, taken = s.cards[card.ID] {
		card.ID = s.newID()
	}
	return s.insert(col, card), nil
}

func (s *Store) insert(col *column, card Card) Card {
	card.Initials = display.Initials(card.Assignee)
	s.cards[card.ID] = card
	s.owner[card.ID] = col.id
	col.cards = append(col.cards, card.ID)
	return card
}

// UpdateCard merges the non-nil fields into the card wherever it lives.
func (s *Store) UpdateCard(cardID string, fields CardFields) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok {
		return Card{}, storeerr.NotFound(cardEntity, cardID)
	}
	updated := fields.merge(card)
	if err := validate(updated); err != nil {
		return Card{}, err
	}
	updated.Initials = display.Initials(updated.Assignee)
	s.cards[cardID] = updated
	return updated, nil
}

// DeleteCard removes the card from whichever column holds it. Unknown ids
// are a no-op; the result reports whether anything was removed.
func (s *Store) DeleteCard(cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	colID, ok := s.owner[cardID]
	if !ok {
		return false
	}
	col := s.columns[colID]
	col.cards = slices.DeleteFunc(slices.Clone(col.cards), func(id string) bool { return id == cardID })
	delete(s.owner, cardID)
	delete(s.cards, cardID)
	return true
}

// MoveCard removes the card from sourceColumnID and inserts it at destIndex
// in destColumnID. destIndex is clamped into [0, len] of the destination
// after removal. Dropping a card back onto its own position leaves the board
// untouched and reports moved=false, as does repeating a move that was
// already applied.
func (s *Store) MoveCard(cardID, sourceColumnID, destColumnID string, destIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.columns[sourceColumnID]
	if !ok {
		return false, storeerr.NotFound(columnEntity, sourceColumnID)
	}
	dst, ok := s.columns[destColumnID]
	if !ok {
		return false, storeerr.NotFound(columnEntity, destColumnID)
	}
	from := slices.Index(src.cards, cardID)
	if from < 0 {
		if s.owner[cardID] == dst.id && slices.Index(dst.cards, cardID) == clamp(destIndex, len(dst.cards)-1) {
			return false, nil
		}
		return false, storeerr.NotFound(cardEntity, cardID)
	}

	remaining := slices.Delete(slices.Clone(src.cards), from, from+1)
	if src == dst {
		to := clamp(destIndex, len(remaining))
		if to == from {
			return false, nil
		}
		src.cards = slices.Insert(remaining, to, cardID)
		return true, nil
	}

	to := clamp(destIndex, len(dst.cards))
	src.cards = remaining
	dst.cards = slices.Insert(slices.Clone(dst.cards), to, cardID)
	s.owner[cardID] = dst.id
	return true, nil
}

func clamp(index, length int) int {
	return max(0, min(index, length))
}

// ColumnSummary returns id, title and card count per column in board order.
func (s *Store) ColumnSummary() []ColumnSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ColumnSummary, 0, len(s.order))
	for _, id := range s.order {
		col := s.columns[id]
		out = append(out, ColumnSummary{ID: col.id, Title: col.title, Count: len(col.cards)})
	}
	return out
}

// Columns returns every column with its cards in board order.
func (s *Store) Columns() []Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Column, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.snapshot(s.columns[id]))
	}
	return out
}

// Column returns a single column snapshot.
func (s *Store) Column(id string) (Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.columns[id]
	if !ok {
		return Column{}, storeerr.NotFound(columnEntity, id)
	}
	return s.snapshot(col), nil
}

func (s *Store) snapshot(col *column) Column {
	cards := make([]Card, len(col.cards))
	for i, id := range col.cards {
		cards[i] = s.cards[id]
	}
	return Column{ID: col.id, Title: col.title, Cards: cards}
}

// Card returns the card and the id of the column holding it.
func (s *Store) Card(id string) (Card, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok {
		return Card{}, "", storeerr.NotFound(cardEntity, id)
	}
	return card, s.owner[id], nil
}

// Len returns the number of cards on the board.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

func validate(c Card) error {
	if strings.TrimSpace(c.Title) == "" {
		return storeerr.Missing(cardEntity, "title")
	}
	if !c.Priority.Valid() {
		return storeerr.Invalid(cardEntity, "priority", "unknown priority "+string(c.Priority))
	}
	return nil
}
