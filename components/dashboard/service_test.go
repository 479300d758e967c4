package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

type collectingHook struct {
	mu     sync.Mutex
	events []ChangeEvent
	err    error
}

func (h *collectingHook) Changed(_ context.Context, event ChangeEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *collectingHook) reasons() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = string(e.Area) + "." + e.Reason
	}
	return out
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

func newTestService(hook RefreshHook, telemetry Telemetry) *Service {
	return NewDefaultService(Options{
		RefreshHook: hook,
		Telemetry:   telemetry,
		Clock:       func() time.Time { return fixedNow },
	})
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(Options{})
	require.NotNil(t, svc.Records())
	require.NotNil(t, svc.Board())
	require.NotNil(t, svc.Calendar())
	require.NotNil(t, svc.Settings())
	assert.Zero(t, svc.Stats(context.Background()).TotalUsers)
}

func TestRecordMutationsEmitEvents(t *testing.T) {
	hook := &collectingHook{}
	telemetry := &recordingTelemetry{}
	svc := newTestService(hook, telemetry)
	ctx := context.Background()

	require.NoError(t, svc.SetRecordFilter(ctx, records.Filter{Role: string(records.RoleAdmin)}))
	require.NoError(t, svc.SelectAllRecords(ctx, true))
	removed, err := svc.DeleteSelectedRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, removed)

	r, err := svc.AddRecord(ctx, records.RecordFields{Name: ptr("New Admin"), Email: ptr("na@example.com"), Role: ptr(records.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, 7, r.ID)

	n, err := svc.DeleteRecords(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"records.filter", "records.select_all", "records.delete", "records.add"}, hook.reasons())
	assert.Equal(t, []string{"1", "5"}, hook.events[2].IDs)
	assert.Equal(t, fixedNow, hook.events[0].At)
	assert.Contains(t, telemetry.events, "dashboard.records.add")
}

func TestFailedMutationsDoNotEmit(t *testing.T) {
	hook := &collectingHook{}
	svc := newTestService(hook, nil)
	ctx := context.Background()

	_, err := svc.UpdateRecord(ctx, 99, records.RecordFields{Name: ptr("x")})
	assert.True(t, storeerr.IsNotFound(err))
	assert.True(t, storeerr.IsValidation(svc.SortRecords(ctx, "avatar", records.Asc)))
	_, err = svc.MoveCard(ctx, "1", "todo", "nowhere", 0)
	assert.True(t, storeerr.IsNotFound(err))
	_, err = svc.AddEvent(ctx, calendar.EventFields{Title: ptr("no start")})
	assert.True(t, storeerr.IsValidation(err))

	assert.Empty(t, hook.reasons())
}

func TestMoveCardSkipsNoOpDrops(t *testing.T) {
	hook := &collectingHook{}
	svc := newTestService(hook, nil)
	ctx := context.Background()

	moved, err := svc.MoveCard(ctx, "1", "todo", "todo", 0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, hook.reasons())

	moved, err = svc.MoveCard(ctx, "1", "todo", "done", 0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"board.move"}, hook.reasons())
	assert.Equal(t, []string{"1"}, hook.events[0].IDs)
}

func TestHookErrorDoesNotFailAppliedMutation(t *testing.T) {
	hook := &collectingHook{err: errors.New("hook down")}
	telemetry := &recordingTelemetry{}
	svc := newTestService(hook, telemetry)

	card, err := svc.AddCard(context.Background(), "todo", board.CardFields{Title: ptr("Ship it")})
	require.NoError(t, err)
	assert.Equal(t, "Ship it", card.Title)
	assert.Equal(t, 7, svc.Board().Len())
	assert.Equal(t, []string{"board.add"}, hook.reasons())
	assert.Equal(t, []string{"dashboard.refresh.error", "dashboard.board.add"}, telemetry.events)
}

func TestCalendarAndSettingsFlow(t *testing.T) {
	hook := &collectingHook{}
	svc := newTestService(hook, nil)
	ctx := context.Background()

	e, err := svc.MoveEvent(ctx, "2", time.Date(2024, 1, 19, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, e.Duration())
	deleted, err := svc.DeleteEvent(ctx, "5")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, svc.EventRange(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), 4)

	mode, err := svc.ToggleTheme(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, settings.ModeDark, mode)
	us, err := svc.UserSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, settings.ModeDark, us.Theme.Mode)

	_, err = svc.UserSettings(ctx, "")
	require.Error(t, err)

	assert.Equal(t, []string{"calendar.move", "calendar.delete", "settings.theme"}, hook.reasons())
}

func TestStats(t *testing.T) {
	svc := newTestService(nil, nil)
	stats := svc.Stats(context.Background())

	assert.Equal(t, 6, stats.TotalUsers)
	assert.Equal(t, 4, stats.ActiveUsers)
	assert.Equal(t, 2, stats.InactiveUsers)
	assert.Equal(t, map[string]int{"Admin": 2, "Editor": 2, "User": 2}, stats.UsersByRole)
	assert.Equal(t, 6, stats.TotalCards)
	assert.Equal(t, 5, stats.OpenCards)
	assert.Equal(t, 3, stats.UpcomingEvents)
	require.NotNil(t, stats.NextEvent)
	assert.Equal(t, "3", stats.NextEvent.ID)
}

func TestChart(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	for _, kind := range ChartKinds() {
		for _, chartType := range []ChartType{ChartBar, ChartLine, ChartPie, ChartGauge} {
			result, err := svc.Chart(ctx, ChartRequest{Kind: kind, Type: chartType})
			require.NoError(t, err, "%s/%s", kind, chartType)
			assert.Contains(t, result.HTML, "echarts")
			assert.Equal(t, chartType, result.Type)
		}
	}

	result, err := svc.Chart(ctx, ChartRequest{Kind: ChartCardsByPriority})
	require.NoError(t, err)
	assert.Equal(t, ChartBar, result.Type)
	assert.Equal(t, []ChartPoint{
		{Label: "low", Value: 1},
		{Label: "medium", Value: 2},
		{Label: "high", Value: 3},
		{Label: "critical", Value: 0},
	}, result.Points)

	_, err = svc.Chart(ctx, ChartRequest{Kind: "revenue"})
	assert.True(t, storeerr.IsValidation(err))
	_, err = svc.Chart(ctx, ChartRequest{Kind: ChartUsersByRole, Type: "radar"})
	assert.True(t, storeerr.IsValidation(err))
}

func TestChartCacheFollowsData(t *testing.T) {
	cache := NewChartCache(time.Minute)
	svc := NewDefaultService(Options{Charts: NewChartRenderer(WithChartCache(cache))})
	ctx := context.Background()
	req := ChartRequest{Kind: ChartUsersByStatus, Type: ChartPie}

	_, err := svc.Chart(ctx, req)
	require.NoError(t, err)
	_, err = svc.Chart(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = svc.DeleteRecords(ctx, 3)
	require.NoError(t, err)
	result, err := svc.Chart(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, float64(1), result.Points[1].Value)
}

func TestExportRecords(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newTestService(nil, telemetry)
	ctx := context.Background()
	require.NoError(t, svc.SetRecordFilter(ctx, records.Filter{Status: string(records.StatusInactive)}))

	var buf bytes.Buffer
	n, err := svc.ExportRecords(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
	assert.Contains(t, telemetry.events, "dashboard.records.export")
}
