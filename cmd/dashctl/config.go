package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// serveConfig holds the server settings loaded from environment variables.
type serveConfig struct {
	Addr          string `env:"DASHBOARD_ADDR" envDefault:":8080"`
	BasePath      string `env:"DASHBOARD_BASE_PATH" envDefault:"/admin"`
	WebSocketPath string `env:"DASHBOARD_WS_PATH" envDefault:"/ws"`
	SeedFile      string `env:"DASHBOARD_SEED_FILE"`
	PageSize      int    `env:"DASHBOARD_PAGE_SIZE" envDefault:"10"`
	LogLevel      string `env:"DASHBOARD_LOG_LEVEL" envDefault:"info"`
	ChartTheme    string `env:"DASHBOARD_CHART_THEME"`
}

// loadServeConfig parses the DASHBOARD_* variables. A nil environment reads
// the process environment.
func loadServeConfig(environment map[string]string) (*serveConfig, error) {
	cfg := &serveConfig{}
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *serveConfig) validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("DASHBOARD_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("DASHBOARD_BASE_PATH must start with /, got %q", c.BasePath)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("DASHBOARD_LOG_LEVEL: %w", err)
	}
	return nil
}
