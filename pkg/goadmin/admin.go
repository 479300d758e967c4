package goadmin

import (
	"context"
	"errors"
	"fmt"

	dashboardpkg "github.com/goliatone/go-admin-dashboard/pkg/dashboard"
)

// MenuBuilder ensures dashboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// DefaultMenuItems lists one entry per dashboard section. Routes are the
// names registered by gorouter.Register.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Dashboard", Route: "dashboard.stats", Icon: "home", Position: 10},
		{Label: "Tables", Route: "dashboard.records.page", Icon: "table", Position: 20},
		{Label: "Charts", Route: "dashboard.charts", Icon: "chart-bar", Position: 30},
		{Label: "Calendar", Route: "dashboard.calendar.range", Icon: "calendar", Position: 40},
		{Label: "Kanban", Route: "dashboard.board.columns", Icon: "columns", Position: 50},
		{Label: "Settings", Route: "dashboard.settings.get", Icon: "settings", Position: 60},
	}
}

// Config wires dashboard service + feature flags into an admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	// MenuItems replaces DefaultMenuItems when set.
	MenuItems []MenuItem
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed dashboard menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if len(cfg.MenuItems) == 0 {
		cfg.MenuItems = DefaultMenuItems()
	}
	for i, item := range cfg.MenuItems {
		if item.Label == "" || item.Route == "" {
			return nil, fmt.Errorf("goadmin: menu item %d needs a label and route", i)
		}
	}
	return &Admin{cfg: cfg}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems returns the entries Bootstrap ensures.
func (a *Admin) MenuItems() []MenuItem {
	return append([]MenuItem(nil), a.cfg.MenuItems...)
}

// Bootstrap seeds menu entries when dashboard support is enabled. It stops at
// the first builder error.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.cfg.MenuItems {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %s: %w", item.Label, err)
		}
	}
	return nil
}
