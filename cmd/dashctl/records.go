package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-admin-dashboard/components/records"
)

type recordsCmd struct {
	List   recordsListCmd   `cmd:"" help:"Print one page of the filtered, sorted records."`
	Export recordsExportCmd `cmd:"" help:"Write the filtered, sorted records as CSV."`
}

// viewFlags shape the records view shared by list and export.
type viewFlags struct {
	Search string `help:"Case-insensitive match on name or email."`
	Role   string `help:"Only records with this role (Admin, Editor, User)."`
	Status string `help:"Only records with this status (Active, Inactive)."`
	Sort   string `help:"Sort key (id, name, email, role, status, last_login; any casing)."`
	Desc   bool   `help:"Sort descending."`
}

func (f viewFlags) apply(rc *runContext, svc *dashboard.Service) error {
	telemetry := dashboard.NewLogrusTelemetry(rc.logger)
	filter := commands.NewSetRecordFilterCommand(svc, telemetry)
	if err := filter.Execute(rc.ctx, commands.SetRecordFilterInput{Search: f.Search, Role: f.Role, Status: f.Status}); err != nil {
		return err
	}
	if f.Sort == "" {
		return nil
	}
	key, err := records.ParseSortKey(f.Sort)
	if err != nil {
		return err
	}
	direction := records.Asc
	if f.Desc {
		direction = records.Desc
	}
	sort := commands.NewSortRecordsCommand(svc, telemetry)
	return sort.Execute(rc.ctx, commands.SortRecordsInput{Key: key, Direction: direction})
}

type recordsListCmd struct {
	viewFlags `embed:""`
	Page   int    `default:"0" help:"Zero-based page index."`
	Size   int    `default:"10" help:"Page size."`
	Format string `default:"table" enum:"table,json" help:"Output format (${enum})."`
}

func (cmd *recordsListCmd) Run(rc *runContext) error {
	svc, _, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	if err := cmd.apply(rc, svc); err != nil {
		return err
	}
	view, err := queries.NewRecordPageQuery(svc).Query(rc.ctx, queries.RecordPageInput{Page: cmd.Page, Size: cmd.Size})
	if err != nil {
		return err
	}
	if cmd.Format == "json" {
		return writeJSON(rc.out, view)
	}
	return writeRecordTable(rc.out, view)
}

func writeRecordTable(out io.Writer, view records.PageView) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(records.ExportHeader, "\t"))
	for _, rec := range view.Records {
		fmt.Fprintln(tw, strings.Join(rec.Row().Values(), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	pages := max(view.Pages, 1)
	_, err := fmt.Fprintf(out, "page %d/%d, %d matching\n", view.Page+1, pages, view.Total)
	return err
}

type recordsExportCmd struct {
	viewFlags `embed:""`
	Out string `type:"path" help:"Destination file; stdout when omitted."`
}

func (cmd *recordsExportCmd) Run(rc *runContext) error {
	svc, _, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	if err := cmd.apply(rc, svc); err != nil {
		return err
	}
	out := rc.out
	if cmd.Out != "" {
		f, err := os.Create(cmd.Out) //nolint:gosec
		if err != nil {
			return fmt.Errorf("dashctl: create %s: %w", cmd.Out, err)
		}
		defer f.Close()
		out = f
	}
	n, err := svc.ExportRecords(rc.ctx, out)
	if err != nil {
		return err
	}
	rc.logger.WithField("rows", n).Info("records exported")
	return nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
