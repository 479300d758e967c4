package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
)

type statsCmd struct {
	Format string `default:"table" enum:"table,json" help:"Output format (${enum})."`
}

func (cmd *statsCmd) Run(rc *runContext) error {
	svc, _, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	stats, err := queries.NewStatsQuery(svc).Query(rc.ctx, queries.StatsInput{})
	if err != nil {
		return err
	}
	if cmd.Format == "json" {
		return writeJSON(rc.out, stats)
	}
	tw := tabwriter.NewWriter(rc.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "users\t%d\t(%d active, %d inactive)\n", stats.TotalUsers, stats.ActiveUsers, stats.InactiveUsers)
	roles := make([]string, 0, len(stats.UsersByRole))
	for role := range stats.UsersByRole {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	for _, role := range roles {
		fmt.Fprintf(tw, "  %s\t%d\t\n", role, stats.UsersByRole[role])
	}
	fmt.Fprintf(tw, "cards\t%d\t(%d open)\n", stats.TotalCards, stats.OpenCards)
	for _, col := range stats.Columns {
		fmt.Fprintf(tw, "  %s\t%d\t\n", col.Title, col.Count)
	}
	fmt.Fprintf(tw, "upcoming events\t%d\t\n", stats.UpcomingEvents)
	if stats.NextEvent != nil {
		fmt.Fprintf(tw, "next event\t%s\t%s\n", stats.NextEvent.Title, stats.NextEvent.Start.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

type chartCmd struct {
	Kind  string `arg:"" enum:"users_by_role,users_by_status,cards_by_column,cards_by_priority,events_by_type" help:"Dataset to plot (${enum})."`
	Type  string `default:"bar" enum:"bar,line,pie,gauge" help:"Chart type (${enum})."`
	Theme string `help:"ECharts theme; defaults to the renderer theme."`
	Out   string `type:"path" help:"Write the chart HTML to this file; prints the data points when omitted."`
}

func (cmd *chartCmd) Run(rc *runContext) error {
	svc, _, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	chart, err := queries.NewChartQuery(svc).Query(rc.ctx, dashboard.ChartRequest{
		Kind:  dashboard.ChartKind(cmd.Kind),
		Type:  dashboard.ChartType(cmd.Type),
		Theme: cmd.Theme,
	})
	if err != nil {
		return err
	}
	if cmd.Out != "" {
		if err := os.WriteFile(cmd.Out, []byte(chart.HTML), 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("dashctl: write %s: %w", cmd.Out, err)
		}
		rc.logger.WithField("path", cmd.Out).Info("chart written")
		return nil
	}
	tw := tabwriter.NewWriter(rc.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t\n", chart.Title)
	for _, point := range chart.Points {
		fmt.Fprintf(tw, "  %s\t%g\n", point.Label, point.Value)
	}
	return tw.Flush()
}
