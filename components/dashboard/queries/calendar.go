package queries

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// EventRangeInput is a half open window [From, To). A zero To means one
// month after From.
type EventRangeInput struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type eventRangeService interface {
	EventRange(ctx context.Context, from, to time.Time) []calendar.Event
}

// EventRangeQuery lists events overlapping a window, ordered by start.
type EventRangeQuery struct {
	service eventRangeService
}

// NewEventRangeQuery builds the query.
func NewEventRangeQuery(service eventRangeService) *EventRangeQuery {
	return &EventRangeQuery{service: service}
}

var _ gocommand.Querier[EventRangeInput, []calendar.Event] = (*EventRangeQuery)(nil)

func (q *EventRangeQuery) Query(ctx context.Context, input EventRangeInput) ([]calendar.Event, error) {
	if input.From.IsZero() {
		return nil, storeerr.Missing("event", "from")
	}
	if input.To.IsZero() {
		input.To = input.From.AddDate(0, 1, 0)
	}
	if input.To.Before(input.From) {
		return nil, storeerr.Invalid("event", "to", "must not be before from")
	}
	return q.service.EventRange(ctx, input.From, input.To), nil
}
