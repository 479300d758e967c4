package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// Area names the part of the dashboard a change belongs to.
type Area string

const (
	AreaRecords  Area = "records"
	AreaBoard    Area = "board"
	AreaCalendar Area = "calendar"
	AreaSettings Area = "settings"
)

// Areas lists every dashboard area.
func Areas() []Area {
	return []Area{AreaRecords, AreaBoard, AreaCalendar, AreaSettings}
}

func (a Area) Valid() bool {
	switch a {
	case AreaRecords, AreaBoard, AreaCalendar, AreaSettings:
		return true
	}
	return false
}

// ParseAreas reads a comma separated area list such as "board,records".
// An empty string selects every area and yields nil.
func ParseAreas(raw string) ([]Area, error) {
	var areas []Area
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		area := Area(strings.ToLower(part))
		if !area.Valid() {
			return nil, storeerr.Invalid("subscription", "area", "unknown area "+part)
		}
		areas = append(areas, area)
	}
	return areas, nil
}

// ChangeEvent is published after every successful mutation so connected
// views can refresh.
type ChangeEvent struct {
	Area   Area      `json:"area"`
	Reason string    `json:"reason"`
	IDs    []string  `json:"ids,omitempty"`
	At     time.Time `json:"at"`
}

// RefreshHook is notified after mutations.
type RefreshHook interface {
	Changed(ctx context.Context, event ChangeEvent) error
}

// RefreshHookFunc adapts a function into a RefreshHook.
type RefreshHookFunc func(ctx context.Context, event ChangeEvent) error

func (fn RefreshHookFunc) Changed(ctx context.Context, event ChangeEvent) error {
	return fn(ctx, event)
}

type noopRefreshHook struct{}

func (noopRefreshHook) Changed(context.Context, ChangeEvent) error { return nil }
