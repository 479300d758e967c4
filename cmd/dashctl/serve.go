package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	log "github.com/sirupsen/logrus"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr string `help:"Listen address; overrides DASHBOARD_ADDR."`
}

func (cmd *serveCmd) Run(rc *runContext) error {
	cfg, err := loadServeConfig(nil)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	if rc.seedPath == "" {
		rc.seedPath = cfg.SeedFile
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	rc.logger.SetLevel(level)

	app, err := newApp(rc, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(rc.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:    server.Router(),
		API:       app.api,
		Broadcast: app.broadcast,
		BasePath:  cfg.BasePath,
		Routes:    gorouter.RouteConfig{WebSocket: cfg.WebSocketPath},
	}); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		rc.logger.WithFields(log.Fields{
			"addr":      cfg.Addr,
			"base_path": cfg.BasePath,
			"routes":    len(app.api.Routes()),
		}).Info("dashboard api listening")
		errCh <- server.Serve(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	rc.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// app is the wired service graph behind the HTTP server.
type app struct {
	service   *dashboard.Service
	api       *httpapi.Handlers
	broadcast *dashboard.BroadcastHook
}

func newApp(rc *runContext, cfg *serveConfig) (*app, error) {
	broadcast := dashboard.NewBroadcastHook()
	telemetry := dashboard.NewLogrusTelemetry(rc.logger)
	opts := dashboard.Options{
		RefreshHook: broadcast,
		Telemetry:   telemetry,
	}
	if cfg.ChartTheme != "" {
		opts.Charts = dashboard.NewChartRenderer(
			dashboard.WithChartCache(dashboard.NewChartCache(5*time.Minute)),
			dashboard.WithChartTheme(cfg.ChartTheme),
		)
	}
	svc, _, err := rc.load(opts)
	if err != nil {
		return nil, err
	}
	api := httpapi.NewHandlers(svc, telemetry)
	api.RecordPage = queries.NewRecordPageQuery(svc).WithDefaultSize(cfg.PageSize)
	return &app{service: svc, api: api, broadcast: broadcast}, nil
}
