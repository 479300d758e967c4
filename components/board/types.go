package board

import (
	"strings"
	"time"
)

// DateLayout is the due date format used by seed files and transports.
const DateLayout = "2006-01-02"

// Priority ranks how urgent a card is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists the known priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Card is a single task on the board.
type Card struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Assignee    string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	DueDate     time.Time `json:"due_date" yaml:"due_date"`
	Initials    string    `json:"initials,omitempty" yaml:"-"`
}

// CardFields is a partial card used by add and update. Nil fields are left
// untouched on update.
type CardFields struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (f CardFields) merge(c Card) Card {
	if f.Title != nil {
		c.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if f.Priority != nil {
		c.Priority = *f.Priority
	}
	if f.Assignee != nil {
		c.Assignee = strings.TrimSpace(*f.Assignee)
	}
	if f.DueDate != nil {
		c.DueDate = *f.DueDate
	}
	return c
}

// Column is an ordered snapshot of one board column.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// ColumnSummary is the read projection returned by Store.ColumnSummary.
type ColumnSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}
