package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-admin-dashboard/components/dashboard"
)

// SeedStoresInput names the seed source. Document wins over Path; with
// neither set the demo data is loaded.
type SeedStoresInput struct {
	Path     string                  `json:"path"`
	Document *dashboard.SeedDocument `json:"-"`
}

// SeedStoresCommand fills the dashboard stores from a seed document.
type SeedStoresCommand struct {
	stores    dashboard.Stores
	telemetry Telemetry
}

// NewSeedStoresCommand wires the stores to fill.
func NewSeedStoresCommand(stores dashboard.Stores, telemetry Telemetry) *SeedStoresCommand {
	return &SeedStoresCommand{stores: stores, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedStoresInput] = (*SeedStoresCommand)(nil)

// Execute loads and applies the document.
func (c *SeedStoresCommand) Execute(ctx context.Context, msg SeedStoresInput) error {
	if c.stores.Records == nil && c.stores.Board == nil && c.stores.Calendar == nil && c.stores.Settings == nil {
		return errors.New("seed command requires stores")
	}
	doc := msg.Document
	if doc == nil && msg.Path != "" {
		loaded, err := dashboard.ReadSeed(msg.Path)
		if err != nil {
			return err
		}
		doc = loaded
	}
	if doc == nil {
		doc = dashboard.DefaultSeedDocument()
	}
	if err := doc.Apply(c.stores); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.seed", map[string]any{
		"source":  doc.Source,
		"records": len(doc.Records),
		"columns": len(doc.Columns),
		"events":  len(doc.Events),
	})
	return nil
}
