package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/commands"
)

type seedCmd struct {
	Validate seedValidateCmd `cmd:"" help:"Check a seed file against the schema and load it into empty stores."`
	Dump     seedDumpCmd     `cmd:"" help:"Write the loaded stores as a seed document."`
}

type seedValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Seed file to validate."`
}

func (cmd *seedValidateCmd) Run(rc *runContext) error {
	doc, err := dashboard.ReadSeed(cmd.File)
	if err != nil {
		return err
	}
	stores := dashboard.NewStores()
	seed := commands.NewSeedStoresCommand(stores, dashboard.NewLogrusTelemetry(rc.logger))
	if err := seed.Execute(rc.ctx, commands.SeedStoresInput{Document: doc}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(rc.out, "%s: ok (%d records, %d columns, %d cards, %d events, %d settings)\n",
		cmd.File,
		stores.Records.Len(),
		len(stores.Board.ColumnSummary()),
		stores.Board.Len(),
		stores.Calendar.Len(),
		len(doc.Settings),
	)
	return err
}

type seedDumpCmd struct {
	Out string `type:"path" help:"Destination file; stdout when omitted."`
}

func (cmd *seedDumpCmd) Run(rc *runContext) error {
	_, stores, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	doc := stores.Document()
	if cmd.Out == "" {
		return dashboard.EncodeSeed(rc.out, doc)
	}
	if _, err := os.Stat(cmd.Out); err == nil {
		rc.logger.WithField("path", cmd.Out).Warn("overwriting seed file")
	}
	return writeSeedFile(cmd.Out, doc)
}
