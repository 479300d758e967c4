package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// Request carries the transport neutral parts of an HTTP request.
type Request struct {
	Body   []byte
	Params map[string]string
	Query  func(name string) string
}

func (r Request) param(name string) string {
	return strings.TrimSpace(r.Params[name])
}

func (r Request) query(name string) string {
	if r.Query == nil {
		return ""
	}
	return strings.TrimSpace(r.Query(name))
}

func (r Request) decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return storeerr.Invalid("request", "body", err.Error())
	}
	return nil
}

// Response is what an Endpoint produces. Raw bodies are sent verbatim with
// ContentType; everything else is encoded as JSON.
type Response struct {
	Status      int
	Payload     any
	ContentType string
	Raw         []byte
}

// Endpoint handles one route.
type Endpoint func(ctx context.Context, req Request) (Response, error)

// Route binds an Endpoint to a method and a path relative to the mount
// point. Path parameters use the :name form.
type Route struct {
	Method   string
	Path     string
	Name     string
	Endpoint Endpoint
}

type exporter interface {
	ExportRecords(ctx context.Context, w io.Writer) (int, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	SetFilter     gocommand.Commander[commands.SetRecordFilterInput]
	Sort          gocommand.Commander[commands.SortRecordsInput]
	ToggleSelect  gocommand.Commander[commands.ToggleRecordSelectionInput]
	SelectAll     gocommand.Commander[commands.SelectAllRecordsInput]
	AddRecord     gocommand.Commander[commands.AddRecordInput]
	UpdateRecord  gocommand.Commander[commands.UpdateRecordInput]
	DeleteRecords gocommand.Commander[commands.DeleteRecordsInput]

	MoveCard   gocommand.Commander[commands.MoveCardInput]
	AddCard    gocommand.Commander[commands.AddCardInput]
	UpdateCard gocommand.Commander[commands.UpdateCardInput]
	DeleteCard gocommand.Commander[commands.DeleteCardInput]

	AddEvent    gocommand.Commander[commands.AddEventInput]
	UpdateEvent gocommand.Commander[commands.UpdateEventInput]
	DeleteEvent gocommand.Commander[commands.DeleteEventInput]
	MoveEvent   gocommand.Commander[commands.MoveEventInput]
	ResizeEvent gocommand.Commander[commands.ResizeEventInput]

	UpdateProfile   gocommand.Commander[commands.UpdateProfileInput]
	SetNotification gocommand.Commander[commands.SetNotificationInput]
	ToggleTheme     gocommand.Commander[commands.ToggleThemeInput]

	RecordPage    gocommand.Querier[queries.RecordPageInput, records.PageView]
	Board         gocommand.Querier[queries.BoardInput, []board.Column]
	ColumnSummary gocommand.Querier[queries.BoardInput, []board.ColumnSummary]
	Events        gocommand.Querier[queries.EventRangeInput, []calendar.Event]
	Stats         gocommand.Querier[queries.StatsInput, dashboard.Stats]
	Chart         gocommand.Querier[dashboard.ChartRequest, dashboard.ChartResult]
	Settings      gocommand.Querier[queries.SettingsInput, dashboard.UserSettings]

	Exporter exporter
}

// NewHandlers wires every command and query to svc.
func NewHandlers(svc *dashboard.Service, telemetry commands.Telemetry) *Handlers {
	return &Handlers{
		SetFilter:     commands.NewSetRecordFilterCommand(svc, telemetry),
		Sort:          commands.NewSortRecordsCommand(svc, telemetry),
		ToggleSelect:  commands.NewToggleRecordSelectionCommand(svc, telemetry),
		SelectAll:     commands.NewSelectAllRecordsCommand(svc, telemetry),
		AddRecord:     commands.NewAddRecordCommand(svc, telemetry),
		UpdateRecord:  commands.NewUpdateRecordCommand(svc, telemetry),
		DeleteRecords: commands.NewDeleteRecordsCommand(svc, telemetry),

		MoveCard:   commands.NewMoveCardCommand(svc, telemetry),
		AddCard:    commands.NewAddCardCommand(svc, telemetry),
		UpdateCard: commands.NewUpdateCardCommand(svc, telemetry),
		DeleteCard: commands.NewDeleteCardCommand(svc, telemetry),

		AddEvent:    commands.NewAddEventCommand(svc, telemetry),
		UpdateEvent: commands.NewUpdateEventCommand(svc, telemetry),
		DeleteEvent: commands.NewDeleteEventCommand(svc, telemetry),
		MoveEvent:   commands.NewMoveEventCommand(svc, telemetry),
		ResizeEvent: commands.NewResizeEventCommand(svc, telemetry),

		UpdateProfile:   commands.NewUpdateProfileCommand(svc, telemetry),
		SetNotification: commands.NewSetNotificationCommand(svc, telemetry),
		ToggleTheme:     commands.NewToggleThemeCommand(svc, telemetry),

		RecordPage:    queries.NewRecordPageQuery(svc),
		Board:         queries.NewBoardQuery(svc),
		ColumnSummary: queries.NewColumnSummaryQuery(svc),
		Events:        queries.NewEventRangeQuery(svc),
		Stats:         queries.NewStatsQuery(svc),
		Chart:         queries.NewChartQuery(svc),
		Settings:      queries.NewSettingsQuery(svc),

		Exporter: svc,
	}
}

// StatusFor maps store errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case storeerr.IsValidation(err):
		return http.StatusBadRequest
	case storeerr.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Routes lists the endpoints backed by configured commands and queries.
// Fixed paths come before parameterized siblings.
func (h *Handlers) Routes() []Route {
	var routes []Route
	add := func(enabled bool, method, path, name string, endpoint Endpoint) {
		if enabled {
			routes = append(routes, Route{Method: method, Path: path, Name: name, Endpoint: endpoint})
		}
	}

	add(h.RecordPage != nil, http.MethodGet, "/records", "records.page", h.recordPage)
	add(h.Exporter != nil, http.MethodGet, "/records/export", "records.export", h.exportCSV)
	add(h.SetFilter != nil, http.MethodPost, "/records/filter", "records.filter", h.setFilter)
	add(h.Sort != nil, http.MethodPost, "/records/sort", "records.sort", h.sort)
	add(h.SelectAll != nil, http.MethodPost, "/records/select-all", "records.select_all", h.selectAll)
	add(h.DeleteRecords != nil, http.MethodPost, "/records/delete", "records.delete", h.deleteRecords)
	add(h.AddRecord != nil, http.MethodPost, "/records", "records.add", h.addRecord)
	add(h.ToggleSelect != nil, http.MethodPost, "/records/:id/select", "records.select", h.toggleSelect)
	add(h.UpdateRecord != nil, http.MethodPost, "/records/:id", "records.update", h.updateRecord)

	add(h.Board != nil, http.MethodGet, "/board", "board.columns", h.board)
	add(h.ColumnSummary != nil, http.MethodGet, "/board/summary", "board.summary", h.columnSummary)
	add(h.MoveCard != nil, http.MethodPost, "/board/move", "board.move", h.moveCard)
	add(h.AddCard != nil, http.MethodPost, "/board/columns/:column/cards", "board.add", h.addCard)
	add(h.UpdateCard != nil, http.MethodPost, "/board/cards/:id", "board.update", h.updateCard)
	add(h.DeleteCard != nil, http.MethodDelete, "/board/cards/:id", "board.delete", h.deleteCard)

	add(h.Events != nil, http.MethodGet, "/calendar/events", "calendar.range", h.events)
	add(h.AddEvent != nil, http.MethodPost, "/calendar/events", "calendar.add", h.addEvent)
	add(h.MoveEvent != nil, http.MethodPost, "/calendar/events/:id/move", "calendar.move", h.moveEvent)
	add(h.ResizeEvent != nil, http.MethodPost, "/calendar/events/:id/resize", "calendar.resize", h.resizeEvent)
	add(h.UpdateEvent != nil, http.MethodPost, "/calendar/events/:id", "calendar.update", h.updateEvent)
	add(h.DeleteEvent != nil, http.MethodDelete, "/calendar/events/:id", "calendar.delete", h.deleteEvent)

	add(h.Stats != nil, http.MethodGet, "/stats", "stats", h.stats)
	add(h.Chart != nil, http.MethodGet, "/charts/:kind", "charts", h.chart)

	add(h.Settings != nil, http.MethodGet, "/settings/:user", "settings.get", h.settings)
	add(h.UpdateProfile != nil, http.MethodPost, "/settings/:user/profile", "settings.profile", h.updateProfile)
	add(h.SetNotification != nil, http.MethodPost, "/settings/:user/notifications", "settings.notification", h.setNotification)
	add(h.ToggleTheme != nil, http.MethodPost, "/settings/:user/theme", "settings.theme", h.toggleTheme)
	return routes
}

func ok(payload any) (Response, error) {
	return Response{Status: http.StatusOK, Payload: payload}, nil
}

func created(payload any) (Response, error) {
	return Response{Status: http.StatusCreated, Payload: payload}, nil
}

func intParam(req Request, name string) (int, error) {
	raw := req.param(name)
	if raw == "" {
		return 0, storeerr.Missing("request", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, storeerr.Invalid("request", name, "must be an integer")
	}
	return v, nil
}

func intQuery(req Request, name string) (int, error) {
	raw := req.query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, storeerr.Invalid("request", name, "must be an integer")
	}
	return v, nil
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, board.DateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, storeerr.Invalid("request", name, "must be RFC 3339 or "+board.DateLayout)
}

func (h *Handlers) recordPage(ctx context.Context, req Request) (Response, error) {
	page, err := intQuery(req, "page")
	if err != nil {
		return Response{}, err
	}
	size, err := intQuery(req, "size")
	if err != nil {
		return Response{}, err
	}
	view, err := h.RecordPage.Query(ctx, queries.RecordPageInput{Page: page, Size: size})
	if err != nil {
		return Response{}, err
	}
	return ok(view)
}

func (h *Handlers) exportCSV(ctx context.Context, _ Request) (Response, error) {
	var buf bytes.Buffer
	if _, err := h.Exporter.ExportRecords(ctx, &buf); err != nil {
		return Response{}, err
	}
	return Response{Status: http.StatusOK, ContentType: "text/csv; charset=utf-8", Raw: buf.Bytes()}, nil
}

func (h *Handlers) setFilter(ctx context.Context, req Request) (Response, error) {
	var input commands.SetRecordFilterInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	if err := h.SetFilter.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]string{"status": "filtered"})
}

func (h *Handlers) sort(ctx context.Context, req Request) (Response, error) {
	var input commands.SortRecordsInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	if err := h.Sort.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]string{"status": "sorted"})
}

func (h *Handlers) toggleSelect(ctx context.Context, req Request) (Response, error) {
	id, err := intParam(req, "id")
	if err != nil {
		return Response{}, err
	}
	if err := h.ToggleSelect.Execute(ctx, commands.ToggleRecordSelectionInput{ID: id}); err != nil {
		return Response{}, err
	}
	return ok(map[string]string{"status": "toggled"})
}

func (h *Handlers) selectAll(ctx context.Context, req Request) (Response, error) {
	var input commands.SelectAllRecordsInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	if err := h.SelectAll.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]bool{"selected": input.Selected})
}

func (h *Handlers) addRecord(ctx context.Context, req Request) (Response, error) {
	var input commands.AddRecordInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out records.Record
	input.Output = &out
	if err := h.AddRecord.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return created(out)
}

func (h *Handlers) updateRecord(ctx context.Context, req Request) (Response, error) {
	id, err := intParam(req, "id")
	if err != nil {
		return Response{}, err
	}
	var input commands.UpdateRecordInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out records.Record
	input.ID = id
	input.Output = &out
	if err := h.UpdateRecord.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) deleteRecords(ctx context.Context, req Request) (Response, error) {
	var input commands.DeleteRecordsInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var removed int
	input.Output = &removed
	if err := h.DeleteRecords.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]int{"removed": removed})
}

func (h *Handlers) board(ctx context.Context, _ Request) (Response, error) {
	columns, err := h.Board.Query(ctx, queries.BoardInput{})
	if err != nil {
		return Response{}, err
	}
	return ok(columns)
}

func (h *Handlers) columnSummary(ctx context.Context, _ Request) (Response, error) {
	summary, err := h.ColumnSummary.Query(ctx, queries.BoardInput{})
	if err != nil {
		return Response{}, err
	}
	return ok(summary)
}

func (h *Handlers) moveCard(ctx context.Context, req Request) (Response, error) {
	var input commands.MoveCardInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var moved bool
	input.Output = &moved
	if err := h.MoveCard.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]bool{"moved": moved})
}

func (h *Handlers) addCard(ctx context.Context, req Request) (Response, error) {
	var input commands.AddCardInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out board.Card
	input.ColumnID = req.param("column")
	input.Output = &out
	if err := h.AddCard.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return created(out)
}

func (h *Handlers) updateCard(ctx context.Context, req Request) (Response, error) {
	var input commands.UpdateCardInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out board.Card
	input.CardID = req.param("id")
	input.Output = &out
	if err := h.UpdateCard.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) deleteCard(ctx context.Context, req Request) (Response, error) {
	var deleted bool
	input := commands.DeleteCardInput{CardID: req.param("id"), Output: &deleted}
	if err := h.DeleteCard.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]bool{"deleted": deleted})
}

func (h *Handlers) events(ctx context.Context, req Request) (Response, error) {
	from, err := parseTime("from", req.query("from"))
	if err != nil {
		return Response{}, err
	}
	to, err := parseTime("to", req.query("to"))
	if err != nil {
		return Response{}, err
	}
	events, err := h.Events.Query(ctx, queries.EventRangeInput{From: from, To: to})
	if err != nil {
		return Response{}, err
	}
	return ok(events)
}

func (h *Handlers) addEvent(ctx context.Context, req Request) (Response, error) {
	var input commands.AddEventInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out calendar.Event
	input.Output = &out
	if err := h.AddEvent.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return created(out)
}

func (h *Handlers) updateEvent(ctx context.Context, req Request) (Response, error) {
	var input commands.UpdateEventInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out calendar.Event
	input.ID = req.param("id")
	input.Output = &out
	if err := h.UpdateEvent.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) deleteEvent(ctx context.Context, req Request) (Response, error) {
	var deleted bool
	input := commands.DeleteEventInput{ID: req.param("id"), Output: &deleted}
	if err := h.DeleteEvent.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(map[string]bool{"deleted": deleted})
}

func (h *Handlers) moveEvent(ctx context.Context, req Request) (Response, error) {
	var input commands.MoveEventInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out calendar.Event
	input.ID = req.param("id")
	input.Output = &out
	if err := h.MoveEvent.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) resizeEvent(ctx context.Context, req Request) (Response, error) {
	var input commands.ResizeEventInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out calendar.Event
	input.ID = req.param("id")
	input.Output = &out
	if err := h.ResizeEvent.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) stats(ctx context.Context, _ Request) (Response, error) {
	stats, err := h.Stats.Query(ctx, queries.StatsInput{})
	if err != nil {
		return Response{}, err
	}
	return ok(stats)
}

func (h *Handlers) chart(ctx context.Context, req Request) (Response, error) {
	result, err := h.Chart.Query(ctx, dashboard.ChartRequest{
		Kind:  dashboard.ChartKind(req.param("kind")),
		Type:  dashboard.ChartType(req.query("type")),
		Theme: req.query("theme"),
	})
	if err != nil {
		return Response{}, err
	}
	if strings.EqualFold(req.query("format"), "html") {
		return Response{Status: http.StatusOK, ContentType: "text/html; charset=utf-8", Raw: []byte(result.HTML)}, nil
	}
	return ok(result)
}

func (h *Handlers) settings(ctx context.Context, req Request) (Response, error) {
	us, err := h.Settings.Query(ctx, queries.SettingsInput{UserID: req.param("user")})
	if err != nil {
		return Response{}, err
	}
	return ok(us)
}

func (h *Handlers) updateProfile(ctx context.Context, req Request) (Response, error) {
	var input commands.UpdateProfileInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out settings.Profile
	input.UserID = req.param("user")
	input.Output = &out
	if err := h.UpdateProfile.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) setNotification(ctx context.Context, req Request) (Response, error) {
	var input commands.SetNotificationInput
	if err := req.decode(&input); err != nil {
		return Response{}, err
	}
	var out settings.Notifications
	input.UserID = req.param("user")
	input.Output = &out
	if err := h.SetNotification.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(out)
}

func (h *Handlers) toggleTheme(ctx context.Context, req Request) (Response, error) {
	var mode settings.Mode
	input := commands.ToggleThemeInput{UserID: req.param("user"), Output: &mode}
	if err := h.ToggleTheme.Execute(ctx, input); err != nil {
		return Response{}, err
	}
	return ok(settings.ThemeFor(mode))
}
