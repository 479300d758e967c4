package commands

import (
	"context"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
)

// Telemetry is the dashboard event sink. Commands record one
// dashboard.command.<area>.<action> event after each successful execute.
type Telemetry = dashboard.Telemetry

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}

func commandEvent(area, action string) string {
	return "dashboard.command." + area + "." + action
}
