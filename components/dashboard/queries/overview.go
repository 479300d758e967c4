package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-admin-dashboard/components/dashboard"
)

// StatsInput requests the headline numbers.
type StatsInput struct{}

type statsService interface {
	Stats(ctx context.Context) dashboard.Stats
}

// StatsQuery aggregates the stores into dashboard.Stats.
type StatsQuery struct {
	service statsService
}

// NewStatsQuery builds the query.
func NewStatsQuery(service statsService) *StatsQuery {
	return &StatsQuery{service: service}
}

var _ gocommand.Querier[StatsInput, dashboard.Stats] = (*StatsQuery)(nil)

func (q *StatsQuery) Query(ctx context.Context, _ StatsInput) (dashboard.Stats, error) {
	return q.service.Stats(ctx), nil
}

type chartService interface {
	Chart(ctx context.Context, req dashboard.ChartRequest) (dashboard.ChartResult, error)
}

// ChartQuery renders a dataset as an ECharts snippet.
type ChartQuery struct {
	service chartService
}

// NewChartQuery builds the query.
func NewChartQuery(service chartService) *ChartQuery {
	return &ChartQuery{service: service}
}

var _ gocommand.Querier[dashboard.ChartRequest, dashboard.ChartResult] = (*ChartQuery)(nil)

func (q *ChartQuery) Query(ctx context.Context, req dashboard.ChartRequest) (dashboard.ChartResult, error) {
	return q.service.Chart(ctx, req)
}

// SettingsInput names the user whose settings are read.
type SettingsInput struct {
	UserID string `json:"user_id"`
}

type settingsService interface {
	UserSettings(ctx context.Context, userID string) (dashboard.UserSettings, error)
}

// SettingsQuery reads a user's settings with the resolved theme.
type SettingsQuery struct {
	service settingsService
}

// NewSettingsQuery builds the query.
func NewSettingsQuery(service settingsService) *SettingsQuery {
	return &SettingsQuery{service: service}
}

var _ gocommand.Querier[SettingsInput, dashboard.UserSettings] = (*SettingsQuery)(nil)

func (q *SettingsQuery) Query(ctx context.Context, input SettingsInput) (dashboard.UserSettings, error) {
	return q.service.UserSettings(ctx, input.UserID)
}
