package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
)

type cli struct {
	Seed     string `type:"path" help:"Seed file to load instead of the demo data." env:"DASHBOARD_SEED_FILE"`
	LogLevel string `name:"log-level" default:"warn" enum:"trace,debug,info,warn,error" help:"Log level (${enum})."`

	Records recordsCmd `cmd:"" help:"List and export user records."`
	Board   boardCmd   `cmd:"" help:"Show and rearrange the task board."`
	Seeds   seedCmd    `cmd:"" name:"seed" help:"Validate and dump seed documents."`
	Stats   statsCmd   `cmd:"" help:"Print aggregate dashboard statistics."`
	Chart   chartCmd   `cmd:"" help:"Render a dashboard chart."`
	Serve   serveCmd   `cmd:"" help:"Serve the dashboard API over HTTP."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	ctx      context.Context
	out      io.Writer
	logger   *log.Logger
	seedPath string
}

// load returns a service over the seed file, or the demo data when no seed
// was given.
func (rc *runContext) load(opts dashboard.Options) (*dashboard.Service, dashboard.Stores, error) {
	doc := dashboard.DefaultSeedDocument()
	if rc.seedPath != "" {
		loaded, err := dashboard.ReadSeed(rc.seedPath)
		if err != nil {
			return nil, dashboard.Stores{}, err
		}
		doc = loaded
	}
	stores, err := doc.Stores()
	if err != nil {
		return nil, dashboard.Stores{}, err
	}
	if opts.Telemetry == nil {
		opts.Telemetry = dashboard.NewLogrusTelemetry(rc.logger)
	}
	rc.logger.WithFields(log.Fields{
		"records": stores.Records.Len(),
		"cards":   stores.Board.Len(),
		"events":  stores.Calendar.Len(),
		"seed":    doc.Source,
	}).Debug("stores loaded")
	return dashboard.NewService(stores.Options(opts)), stores, nil
}

func newLogger(level string, out io.Writer) (*log.Logger, error) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("dashctl: %w", err)
	}
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return logger, nil
}

func newParser(app *cli, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(app,
		kong.Name("dashctl"),
		kong.Description("Admin dashboard data tooling: records, board, seeds and the HTTP API."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var app cli
	parser, err := newParser(&app, stdout, stderr)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	logger, err := newLogger(app.LogLevel, stderr)
	if err != nil {
		return err
	}
	return kctx.Run(&runContext{ctx: ctx, out: stdout, logger: logger, seedPath: app.Seed})
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("dashctl"),
		kong.Description("Admin dashboard data tooling: records, board, seeds and the HTTP API."),
		kong.UsageOnError(),
	)
	logger, err := newLogger(app.LogLevel, os.Stderr)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(&runContext{ctx: context.Background(), out: os.Stdout, logger: logger, seedPath: app.Seed})
	ctx.FatalIfErrorf(err)
}
