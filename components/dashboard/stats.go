package dashboard

import (
	"context"
	"slices"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// Stats are the headline numbers on the dashboard home.
type Stats struct {
	TotalUsers     int                   `json:"total_users"`
	ActiveUsers    int                   `json:"active_users"`
	InactiveUsers  int                   `json:"inactive_users"`
	UsersByRole    map[string]int        `json:"users_by_role"`
	Columns        []board.ColumnSummary `json:"columns"`
	TotalCards     int                   `json:"total_cards"`
	OpenCards      int                   `json:"open_cards"`
	UpcomingEvents int                   `json:"upcoming_events"`
	NextEvent      *calendar.Event       `json:"next_event,omitempty"`
}

// Stats aggregates the stores. Cards outside the last column count as open;
// events starting at or after the clock count as upcoming.
func (s *Service) Stats(ctx context.Context) Stats {
	all := s.opts.Records.Records()
	out := Stats{
		TotalUsers:  len(all),
		UsersByRole: make(map[string]int, len(records.Roles())),
		Columns:     s.opts.Board.ColumnSummary(),
	}
	for _, role := range records.Roles() {
		out.UsersByRole[string(role)] = 0
	}
	for _, r := range all {
		out.UsersByRole[string(r.Role)]++
		if r.Status == records.StatusActive {
			out.ActiveUsers++
		} else {
			out.InactiveUsers++
		}
	}
	for i, col := range out.Columns {
		out.TotalCards += col.Count
		if i < len(out.Columns)-1 {
			out.OpenCards += col.Count
		}
	}
	now := s.opts.Clock()
	for _, e := range s.opts.Calendar.Events() {
		if e.Start.Before(now) {
			continue
		}
		out.UpcomingEvents++
		if out.NextEvent == nil || e.Start.Before(out.NextEvent.Start) {
			next := e
			out.NextEvent = &next
		}
	}
	s.recordTelemetry(ctx, "dashboard.stats", map[string]any{
		"users": out.TotalUsers,
		"cards": out.TotalCards,
	})
	return out
}

// Chart renders one dataset from the stores.
func (s *Service) Chart(ctx context.Context, req ChartRequest) (ChartResult, error) {
	ds, err := s.dataset(req.Kind)
	if err != nil {
		return ChartResult{}, err
	}
	result, err := s.opts.Charts.Render(req, ds)
	if err != nil {
		return ChartResult{}, err
	}
	s.recordTelemetry(ctx, "dashboard.chart.render", map[string]any{
		"kind": string(req.Kind),
		"type": string(result.Type),
	})
	return result, nil
}

func (s *Service) dataset(kind ChartKind) (ChartDataset, error) {
	switch kind {
	case ChartUsersByRole:
		return countBy("Users by role", "Users", records.Roles(), s.opts.Records.Records(),
			func(r records.Record) records.Role { return r.Role }), nil
	case ChartUsersByStatus:
		return countBy("Users by status", "Users", records.Statuses(), s.opts.Records.Records(),
			func(r records.Record) records.Status { return r.Status }), nil
	case ChartCardsByColumn:
		ds := ChartDataset{Title: "Cards by column", Series: "Cards"}
		for _, col := range s.opts.Board.ColumnSummary() {
			ds.Points = append(ds.Points, ChartPoint{Label: col.Title, Value: float64(col.Count)})
		}
		return ds, nil
	case ChartCardsByPriority:
		var cards []board.Card
		for _, col := range s.opts.Board.Columns() {
			cards = append(cards, col.Cards...)
		}
		return countBy("Cards by priority", "Cards", board.Priorities(), cards,
			func(c board.Card) board.Priority { return c.Priority }), nil
	case ChartEventsByType:
		return countBy("Events by type", "Events", calendar.Types(), s.opts.Calendar.Events(),
			func(e calendar.Event) calendar.Type { return e.Type }), nil
	default:
		return ChartDataset{}, storeerr.Invalid("chart", "kind", "unknown chart kind "+string(kind))
	}
}

// countBy tallies items per key in the order keys are given.
func countBy[K ~string, T any](title, series string, keys []K, items []T, key func(T) K) ChartDataset {
	ds := ChartDataset{Title: title, Series: series, Points: make([]ChartPoint, len(keys))}
	for i, k := range keys {
		ds.Points[i].Label = string(k)
	}
	for _, item := range items {
		if i := slices.Index(keys, key(item)); i >= 0 {
			ds.Points[i].Value++
		}
	}
	return ds
}
