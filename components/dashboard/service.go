package dashboard

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// Options configures the dashboard Service. Nil collaborators get empty
// in-memory defaults.
type Options struct {
	Records     *records.Store
	Board       *board.Store
	Calendar    *calendar.Store
	Settings    *settings.Store
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Charts      *ChartRenderer
	Clock       func() time.Time
}

// Service orchestrates the dashboard stores. Every mutation is forwarded to
// the owning store and, when it changed something, announced through the
// refresh hook and telemetry.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Records == nil {
		opts.Records = records.NewStore()
	}
	if opts.Board == nil {
		opts.Board = board.NewStore()
	}
	if opts.Calendar == nil {
		opts.Calendar = calendar.NewStore()
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewStore()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer(WithChartCache(NewChartCache(5 * time.Minute)))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// NewDefaultService builds a Service over the demo data set.
func NewDefaultService(opts Options) *Service {
	opts.Records = records.NewDefaultStore()
	opts.Board = board.NewDefaultStore()
	opts.Calendar = calendar.NewDefaultStore()
	if opts.Settings == nil {
		opts.Settings = settings.NewStore()
	}
	return NewService(opts)
}

// Records exposes the record store backing the data view.
func (s *Service) Records() *records.Store { return s.opts.Records }

// Board exposes the kanban store.
func (s *Service) Board() *board.Store { return s.opts.Board }

// Calendar exposes the event store.
func (s *Service) Calendar() *calendar.Store { return s.opts.Calendar }

// Settings exposes the per-user settings store.
func (s *Service) Settings() *settings.Store { return s.opts.Settings }

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// changed announces an applied mutation. The mutation stands when the refresh
// hook fails; the failure is recorded as a dashboard.refresh.error event.
func (s *Service) changed(ctx context.Context, area Area, reason string, payload map[string]any, ids ...string) {
	event := ChangeEvent{Area: area, Reason: reason, IDs: ids, At: s.opts.Clock()}
	if err := s.opts.RefreshHook.Changed(ctx, event); err != nil {
		s.recordTelemetry(ctx, "dashboard.refresh.error", map[string]any{
			"area":   string(area),
			"reason": reason,
			"error":  err.Error(),
		})
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if len(ids) > 0 {
		payload["ids"] = ids
	}
	s.recordTelemetry(ctx, "dashboard."+string(area)+"."+reason, payload)
}

// SetRecordFilter replaces the data view filter.
func (s *Service) SetRecordFilter(ctx context.Context, filter records.Filter) error {
	s.opts.Records.SetFilter(filter)
	s.changed(ctx, AreaRecords, "filter", map[string]any{
		"search": filter.Search,
		"role":   filter.Role,
		"status": filter.Status,
	})
	return nil
}

// SortRecords sets the data view ordering.
func (s *Service) SortRecords(ctx context.Context, key records.SortKey, direction records.Direction) error {
	if err := s.opts.Records.SetSort(key, direction); err != nil {
		return err
	}
	s.changed(ctx, AreaRecords, "sort", map[string]any{
		"key":       string(key),
		"direction": string(direction),
	})
	return nil
}

// ToggleRecordSelection flips selection for a visible record.
func (s *Service) ToggleRecordSelection(ctx context.Context, id int) error {
	if err := s.opts.Records.ToggleSelect(id); err != nil {
		return err
	}
	s.changed(ctx, AreaRecords, "select", nil, strconv.Itoa(id))
	return nil
}

// SelectAllRecords selects the whole view or clears the selection.
func (s *Service) SelectAllRecords(ctx context.Context, selected bool) error {
	s.opts.Records.SelectAll(selected)
	s.changed(ctx, AreaRecords, "select_all", map[string]any{"selected": selected})
	return nil
}

// AddRecord creates a record with the next free id.
func (s *Service) AddRecord(ctx context.Context, fields records.RecordFields) (records.Record, error) {
	r, err := s.opts.Records.AddRecord(fields)
	if err != nil {
		return records.Record{}, err
	}
	s.changed(ctx, AreaRecords, "add", nil, strconv.Itoa(r.ID))
	return r, nil
}

// UpdateRecord merges the set fields into record id.
func (s *Service) UpdateRecord(ctx context.Context, id int, fields records.RecordFields) (records.Record, error) {
	r, err := s.opts.Records.UpdateRecord(id, fields)
	if err != nil {
		return records.Record{}, err
	}
	s.changed(ctx, AreaRecords, "update", nil, strconv.Itoa(id))
	return r, nil
}

// DeleteRecords removes ids and reports how many existed.
func (s *Service) DeleteRecords(ctx context.Context, ids ...int) (int, error) {
	removed := s.opts.Records.DeleteRecords(ids...)
	if removed == 0 {
		return 0, nil
	}
	s.changed(ctx, AreaRecords, "delete", nil, intIDs(ids)...)
	return removed, nil
}

// DeleteSelectedRecords removes every selected record.
func (s *Service) DeleteSelectedRecords(ctx context.Context) ([]int, error) {
	removed := s.opts.Records.DeleteSelected()
	if len(removed) == 0 {
		return removed, nil
	}
	s.changed(ctx, AreaRecords, "delete", nil, intIDs(removed)...)
	return removed, nil
}

// RecordPage returns one page of the data view.
func (s *Service) RecordPage(_ context.Context, page, size int) records.PageView {
	return s.opts.Records.Snapshot(page, size)
}

// ExportRecords writes the current view as CSV.
func (s *Service) ExportRecords(ctx context.Context, w io.Writer) (int, error) {
	n, err := records.WriteCSV(w, s.opts.Records.ExportView())
	if err != nil {
		return n, err
	}
	s.recordTelemetry(ctx, "dashboard.records.export", map[string]any{"rows": n})
	return n, nil
}

// MoveCard relocates a card. Drops onto the card's own slot are not
// announced.
func (s *Service) MoveCard(ctx context.Context, cardID, from, to string, index int) (bool, error) {
	moved, err := s.opts.Board.MoveCard(cardID, from, to, index)
	if err != nil || !moved {
		return moved, err
	}
	s.changed(ctx, AreaBoard, "move", map[string]any{
		"from":  from,
		"to":    to,
		"index": index,
	}, cardID)
	return true, nil
}

// AddCard appends a new card to columnID.
func (s *Service) AddCard(ctx context.Context, columnID string, fields board.CardFields) (board.Card, error) {
	card, err := s.opts.Board.AddCard(columnID, fields)
	if err != nil {
		return board.Card{}, err
	}
	s.changed(ctx, AreaBoard, "add", map[string]any{"column": columnID}, card.ID)
	return card, nil
}

// UpdateCard merges the set fields into the card wherever it lives.
func (s *Service) UpdateCard(ctx context.Context, cardID string, fields board.CardFields) (board.Card, error) {
	card, err := s.opts.Board.UpdateCard(cardID, fields)
	if err != nil {
		return board.Card{}, err
	}
	s.changed(ctx, AreaBoard, "update", nil, cardID)
	return card, nil
}

// DeleteCard removes a card. Missing cards report false without error.
func (s *Service) DeleteCard(ctx context.Context, cardID string) (bool, error) {
	if !s.opts.Board.DeleteCard(cardID) {
		return false, nil
	}
	s.changed(ctx, AreaBoard, "delete", nil, cardID)
	return true, nil
}

// BoardColumns returns every column with its cards.
func (s *Service) BoardColumns(context.Context) []board.Column {
	return s.opts.Board.Columns()
}

// ColumnSummary returns per-column card counts.
func (s *Service) ColumnSummary(context.Context) []board.ColumnSummary {
	return s.opts.Board.ColumnSummary()
}

// AddEvent schedules a calendar event.
func (s *Service) AddEvent(ctx context.Context, fields calendar.EventFields) (calendar.Event, error) {
	e, err := s.opts.Calendar.Add(fields)
	if err != nil {
		return calendar.Event{}, err
	}
	s.changed(ctx, AreaCalendar, "add", map[string]any{"type": string(e.Type)}, e.ID)
	return e, nil
}

// UpdateEvent merges the set fields into event id.
func (s *Service) UpdateEvent(ctx context.Context, id string, fields calendar.EventFields) (calendar.Event, error) {
	e, err := s.opts.Calendar.Update(id, fields)
	if err != nil {
		return calendar.Event{}, err
	}
	s.changed(ctx, AreaCalendar, "update", nil, id)
	return e, nil
}

// DeleteEvent removes an event. Missing events report false without error.
func (s *Service) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if !s.opts.Calendar.Delete(id) {
		return false, nil
	}
	s.changed(ctx, AreaCalendar, "delete", nil, id)
	return true, nil
}

// MoveEvent shifts an event to start, keeping its duration.
func (s *Service) MoveEvent(ctx context.Context, id string, start time.Time) (calendar.Event, error) {
	e, err := s.opts.Calendar.Move(id, start)
	if err != nil {
		return calendar.Event{}, err
	}
	s.changed(ctx, AreaCalendar, "move", nil, id)
	return e, nil
}

// ResizeEvent changes where an event ends.
func (s *Service) ResizeEvent(ctx context.Context, id string, end time.Time) (calendar.Event, error) {
	e, err := s.opts.Calendar.Resize(id, end)
	if err != nil {
		return calendar.Event{}, err
	}
	s.changed(ctx, AreaCalendar, "resize", nil, id)
	return e, nil
}

// EventRange lists events overlapping [from, to).
func (s *Service) EventRange(_ context.Context, from, to time.Time) []calendar.Event {
	return s.opts.Calendar.Range(from, to)
}

// UserSettings bundles stored settings with the resolved theme.
type UserSettings struct {
	settings.Settings
	Theme *settings.ThemeSelection `json:"theme"`
}

// UserSettings returns a user's settings together with the resolved theme.
func (s *Service) UserSettings(_ context.Context, userID string) (UserSettings, error) {
	if userID == "" {
		return UserSettings{}, storeerr.Missing("settings", "user_id")
	}
	st := s.opts.Settings.Get(userID)
	return UserSettings{Settings: st, Theme: settings.ThemeFor(st.Appearance.Mode)}, nil
}

// UpdateProfile merges profile fields for userID.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fields settings.ProfileFields) (settings.Profile, error) {
	p, err := s.opts.Settings.UpdateProfile(userID, fields)
	if err != nil {
		return settings.Profile{}, err
	}
	s.changed(ctx, AreaSettings, "profile", nil, userID)
	return p, nil
}

// SetNotification turns a notification channel on or off for userID.
func (s *Service) SetNotification(ctx context.Context, userID string, channel settings.Channel, enabled bool) (settings.Notifications, error) {
	n, err := s.opts.Settings.SetNotification(userID, channel, enabled)
	if err != nil {
		return settings.Notifications{}, err
	}
	s.changed(ctx, AreaSettings, "notification", map[string]any{
		"channel": string(channel),
		"enabled": enabled,
	}, userID)
	return n, nil
}

// ToggleTheme flips userID between light and dark mode.
func (s *Service) ToggleTheme(ctx context.Context, userID string) (settings.Mode, error) {
	mode, err := s.opts.Settings.ToggleTheme(userID)
	if err != nil {
		return "", err
	}
	s.changed(ctx, AreaSettings, "theme", map[string]any{"mode": string(mode)}, userID)
	return mode, nil
}

func intIDs(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}
