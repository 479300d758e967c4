package goadmin_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-admin-dashboard/components/dashboard/httpapi"
	dashboardpkg "github.com/goliatone/go-admin-dashboard/pkg/dashboard"
	"github.com/goliatone/go-admin-dashboard/pkg/goadmin"
)

type stubMenuBuilder struct {
	calls []goadmin.MenuItem
	menu  string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	s.menu = menuCode
	s.calls = append(s.calls, item)
	return s.err
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := dashboardpkg.NewDefaultService(dashboardpkg.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         service,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.calls) != len(goadmin.DefaultMenuItems()) {
		t.Fatalf("expected %d calls, got %d", len(goadmin.DefaultMenuItems()), len(builder.calls))
	}
	if builder.menu != "admin.main" {
		t.Fatalf("expected default menu code, got %q", builder.menu)
	}
	if admin.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestDefaultMenuItemsPointAtRegisteredRoutes(t *testing.T) {
	names := map[string]bool{}
	for _, route := range httpapi.NewHandlers(dashboardpkg.NewDefaultService(dashboardpkg.Options{}), nil).Routes() {
		names["dashboard."+route.Name] = true
	}
	for _, item := range goadmin.DefaultMenuItems() {
		if !names[item.Route] {
			t.Fatalf("menu item %s points at unknown route %s", item.Label, item.Route)
		}
	}
}

func TestAdminBootstrapStopsOnError(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu offline")}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(dashboardpkg.Options{}),
		MenuBuilder:     builder,
		MenuItems:       []goadmin.MenuItem{{Label: "Kanban", Route: "dashboard.board.columns"}, {Label: "Tables", Route: "dashboard.records.page"}},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = admin.Bootstrap(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Kanban") {
		t.Fatalf("expected wrapped builder error, got %v", err)
	}
	if len(builder.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(builder.calls))
	}
}

func TestAdminRejectsInvalidConfig(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableDashboard: true}); err == nil {
		t.Fatalf("expected error without service")
	}
	if _, err := goadmin.New(goadmin.Config{MenuItems: []goadmin.MenuItem{{Label: "Nowhere"}}}); err == nil {
		t.Fatalf("expected error for item without route")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.calls) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.calls))
	}
	if admin.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
	if len(admin.MenuItems()) != 6 {
		t.Fatalf("expected default menu items, got %d", len(admin.MenuItems()))
	}
}
