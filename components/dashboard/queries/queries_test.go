package queries

import (
	"context"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

type stubPageService struct {
	page, size int
	calls      int
}

func (s *stubPageService) RecordPage(_ context.Context, page, size int) records.PageView {
	s.calls++
	s.page, s.size = page, size
	return records.PageView{Page: page, Size: size}
}

func TestRecordPageQueryDefaultsSize(t *testing.T) {
	service := &stubPageService{}
	query := NewRecordPageQuery(service)
	if _, err := query.Query(context.Background(), RecordPageInput{Page: 2}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.size != DefaultPageSize || service.page != 2 {
		t.Fatalf("expected page 2 size %d, got %d/%d", DefaultPageSize, service.page, service.size)
	}
	if _, err := query.Query(context.Background(), RecordPageInput{Page: -1}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
}

func TestRecordPageQueryWithDefaultSize(t *testing.T) {
	service := &stubPageService{}
	query := NewRecordPageQuery(service).WithDefaultSize(25).WithDefaultSize(0)
	if _, err := query.Query(context.Background(), RecordPageInput{}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.size != 25 {
		t.Fatalf("expected size 25, got %d", service.size)
	}
}

func TestRecordPageQueryAgainstService(t *testing.T) {
	svc := dashboard.NewDefaultService(dashboard.Options{})
	view, err := NewRecordPageQuery(svc).Query(context.Background(), RecordPageInput{Page: 1, Size: 4})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if view.Total != 6 || view.Pages != 2 || len(view.Records) != 2 {
		t.Fatalf("unexpected page %+v", view)
	}
}

func TestBoardQueries(t *testing.T) {
	svc := dashboard.NewDefaultService(dashboard.Options{})
	columns, err := NewBoardQuery(svc).Query(context.Background(), BoardInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(columns) != 4 || columns[0].ID != "todo" {
		t.Fatalf("unexpected columns %+v", columns)
	}
	summary, err := NewColumnSummaryQuery(svc).Query(context.Background(), BoardInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if summary[1].ID != "in-progress" || summary[1].Count != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestEventRangeQuery(t *testing.T) {
	svc := dashboard.NewDefaultService(dashboard.Options{})
	query := NewEventRangeQuery(svc)
	from := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	events, err := query.Query(context.Background(), EventRangeInput{From: from, To: from.AddDate(0, 0, 3)})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(events) != 2 || events[0].ID != "2" || events[1].ID != "3" {
		t.Fatalf("unexpected events %+v", events)
	}

	events, err = query.Query(context.Background(), EventRangeInput{From: from})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events in the month after from, got %d", len(events))
	}

	if _, err := query.Query(context.Background(), EventRangeInput{}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := query.Query(context.Background(), EventRangeInput{From: from, To: from.Add(-time.Hour)}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOverviewQueries(t *testing.T) {
	svc := dashboard.NewDefaultService(dashboard.Options{})
	ctx := context.Background()

	stats, err := NewStatsQuery(svc).Query(ctx, StatsInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if stats.TotalUsers != 6 || stats.TotalCards != 6 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	chart, err := NewChartQuery(svc).Query(ctx, dashboard.ChartRequest{Kind: dashboard.ChartEventsByType, Type: dashboard.ChartPie})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if chart.HTML == "" || len(chart.Points) == 0 {
		t.Fatalf("expected rendered chart, got %+v", chart)
	}

	us, err := NewSettingsQuery(svc).Query(ctx, SettingsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if us.Theme == nil || us.Profile.Avatar != "JD" {
		t.Fatalf("unexpected settings %+v", us)
	}
	if _, err := NewSettingsQuery(svc).Query(ctx, SettingsInput{}); !storeerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
