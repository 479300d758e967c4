package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

type failingBoard struct {
	err   error
	calls int
}

func (f *failingBoard) MoveCard(context.Context, string, string, string, int) (bool, error) {
	f.calls++
	return false, f.err
}

func ptr[T any](v T) *T { return &v }

func newService() *dashboard.Service {
	return dashboard.NewDefaultService(dashboard.Options{})
}

func TestRecordCommands(t *testing.T) {
	svc := newService()
	telemetry := &stubTelemetry{}
	ctx := context.Background()

	if err := NewSetRecordFilterCommand(svc, telemetry).Execute(ctx, SetRecordFilterInput{Status: "Active"}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if err := NewSortRecordsCommand(svc, telemetry).Execute(ctx, SortRecordsInput{Key: records.SortName}); err != nil {
		t.Fatalf("sort returned error: %v", err)
	}
	if got := svc.Records().Sort().Direction; got != records.Asc {
		t.Fatalf("expected default asc direction, got %s", got)
	}
	if err := NewToggleRecordSelectionCommand(svc, telemetry).Execute(ctx, ToggleRecordSelectionInput{ID: 2}); err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	var removed int
	if err := NewDeleteRecordsCommand(svc, telemetry).Execute(ctx, DeleteRecordsInput{Selected: true, Output: &removed}); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	var added records.Record
	input := AddRecordInput{Output: &added}
	input.Name = ptr("Grace Hopper")
	input.Email = ptr("grace@example.com")
	if err := NewAddRecordCommand(svc, telemetry).Execute(ctx, input); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if added.ID != 7 || added.Role != records.RoleUser {
		t.Fatalf("unexpected record %+v", added)
	}

	var updated records.Record
	update := UpdateRecordInput{ID: added.ID, Output: &updated}
	update.Status = ptr(records.StatusInactive)
	if err := NewUpdateRecordCommand(svc, telemetry).Execute(ctx, update); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Status != records.StatusInactive {
		t.Fatalf("expected inactive status, got %s", updated.Status)
	}
	if len(telemetry.events) != 6 {
		t.Fatalf("expected 6 telemetry events, got %v", telemetry.events)
	}
}

func TestRecordCommandsRejectMissingIDs(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := NewToggleRecordSelectionCommand(svc, nil).Execute(ctx, ToggleRecordSelectionInput{}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := NewDeleteRecordsCommand(svc, nil).Execute(ctx, DeleteRecordsInput{}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := NewUpdateRecordCommand(svc, nil).Execute(ctx, UpdateRecordInput{ID: 42}); !storeerr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := NewSortRecordsCommand(nil, nil).Execute(ctx, SortRecordsInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestBoardCommands(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var moved bool
	if err := NewMoveCardCommand(svc, nil).Execute(ctx, MoveCardInput{CardID: "2", From: "todo", To: "review", Index: 0, Output: &moved}); err != nil {
		t.Fatalf("move returned error: %v", err)
	}
	if !moved {
		t.Fatalf("expected card to move")
	}
	col, err := svc.Board().Column("review")
	if err != nil || col.Cards[0].ID != "2" {
		t.Fatalf("expected card 2 at top of review, got %+v (%v)", col, err)
	}

	var card board.Card
	add := AddCardInput{ColumnID: "done", Output: &card}
	add.Title = ptr("Retro notes")
	if err := NewAddCardCommand(svc, nil).Execute(ctx, add); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if card.ID == "" || card.Priority != board.PriorityMedium {
		t.Fatalf("unexpected card %+v", card)
	}

	update := UpdateCardInput{CardID: card.ID, Output: &card}
	update.Priority = ptr(board.PriorityCritical)
	if err := NewUpdateCardCommand(svc, nil).Execute(ctx, update); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if card.Priority != board.PriorityCritical {
		t.Fatalf("expected critical, got %s", card.Priority)
	}

	var deleted bool
	if err := NewDeleteCardCommand(svc, nil).Execute(ctx, DeleteCardInput{CardID: card.ID, Output: &deleted}); err != nil || !deleted {
		t.Fatalf("expected delete, got %v (%v)", deleted, err)
	}
}

func TestMoveCardCommandValidatesInput(t *testing.T) {
	stub := &failingBoard{err: errors.New("boom")}
	cmd := NewMoveCardCommand(stub, nil)
	if err := cmd.Execute(context.Background(), MoveCardInput{From: "a", To: "b"}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := cmd.Execute(context.Background(), MoveCardInput{CardID: "1", From: "a", To: "b"}); err == nil || err.Error() != "boom" {
		t.Fatalf("expected service error, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one service call, got %d", stub.calls)
	}
}

func TestCalendarCommands(t *testing.T) {
	svc := newService()
	telemetry := &stubTelemetry{}
	ctx := context.Background()

	var event calendar.Event
	add := AddEventInput{Output: &event}
	add.Title = ptr("Sprint review")
	add.Start = ptr(time.Date(2024, 1, 26, 15, 0, 0, 0, time.UTC))
	add.End = ptr(time.Date(2024, 1, 26, 16, 0, 0, 0, time.UTC))
	if err := NewAddEventCommand(svc, telemetry).Execute(ctx, add); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	moveTo := time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)
	if err := NewMoveEventCommand(svc, telemetry).Execute(ctx, MoveEventInput{ID: event.ID, Start: moveTo, Output: &event}); err != nil {
		t.Fatalf("move returned error: %v", err)
	}
	if !event.End.Equal(moveTo.Add(time.Hour)) {
		t.Fatalf("expected duration kept, got end %s", event.End)
	}

	err := NewResizeEventCommand(svc, telemetry).Execute(ctx, ResizeEventInput{ID: event.ID, End: moveTo.Add(-time.Hour)})
	if !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	update := UpdateEventInput{ID: event.ID, Output: &event}
	update.Location = ptr("Room 4")
	if err := NewUpdateEventCommand(svc, telemetry).Execute(ctx, update); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if event.Location != "Room 4" {
		t.Fatalf("expected location update, got %q", event.Location)
	}

	var deleted bool
	if err := NewDeleteEventCommand(svc, telemetry).Execute(ctx, DeleteEventInput{ID: event.ID, Output: &deleted}); err != nil || !deleted {
		t.Fatalf("expected delete, got %v (%v)", deleted, err)
	}
	want := []string{
		"dashboard.command.calendar.add",
		"dashboard.command.calendar.move",
		"dashboard.command.calendar.update",
		"dashboard.command.calendar.delete",
	}
	if len(telemetry.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, telemetry.events)
	}
	for i := range want {
		if telemetry.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, telemetry.events)
		}
	}
}

func TestSettingsCommands(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var profile settings.Profile
	input := UpdateProfileInput{UserID: "u1", Output: &profile}
	input.Name = ptr("Ada Lovelace")
	if err := NewUpdateProfileCommand(svc, nil).Execute(ctx, input); err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.Avatar != "AL" {
		t.Fatalf("expected avatar AL, got %q", profile.Avatar)
	}

	var notifications settings.Notifications
	if err := NewSetNotificationCommand(svc, nil).Execute(ctx, SetNotificationInput{UserID: "u1", Channel: settings.ChannelSMS, Enabled: true, Output: &notifications}); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}
	if !notifications.SMS {
		t.Fatalf("expected sms enabled")
	}

	var mode settings.Mode
	if err := NewToggleThemeCommand(svc, nil).Execute(ctx, ToggleThemeInput{UserID: "u1", Output: &mode}); err != nil {
		t.Fatalf("theme returned error: %v", err)
	}
	if mode != settings.ModeDark {
		t.Fatalf("expected dark, got %s", mode)
	}
	if err := NewToggleThemeCommand(svc, nil).Execute(ctx, ToggleThemeInput{}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedStoresCommand(t *testing.T) {
	telemetry := &stubTelemetry{}
	stores := dashboard.NewStores()
	cmd := NewSeedStoresCommand(stores, telemetry)
	if err := cmd.Execute(context.Background(), SeedStoresInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if stores.Records.Len() != len(records.DefaultRecords()) {
		t.Fatalf("expected default records, got %d", stores.Records.Len())
	}
	if stores.Board.Len() != 6 {
		t.Fatalf("expected 6 cards, got %d", stores.Board.Len())
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "dashboard.seed" {
		t.Fatalf("expected seed telemetry, got %v", telemetry.events)
	}

	path := filepath.Join(t.TempDir(), "seed.yaml")
	payload := "records:\n  - id: 1\n    name: Only One\n    email: one@example.com\n"
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	fresh := dashboard.NewStores()
	if err := NewSeedStoresCommand(fresh, nil).Execute(context.Background(), SeedStoresInput{Path: path}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if fresh.Records.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", fresh.Records.Len())
	}

	if err := NewSeedStoresCommand(dashboard.Stores{}, nil).Execute(context.Background(), SeedStoresInput{}); err == nil {
		t.Fatalf("expected error without stores")
	}
}
