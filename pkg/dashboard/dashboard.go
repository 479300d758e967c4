// Package dashboard is the public entry point for embedding the admin
// dashboard stores and API in another application.
package dashboard

import (
	"net/http"
	"strings"

	core "github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/httpapi"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Stores re-export for convenience.
type Stores = core.Stores

// SeedDocument re-export for convenience.
type SeedDocument = core.SeedDocument

// ChangeEvent re-export for convenience.
type ChangeEvent = core.ChangeEvent

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewDefaultService builds a service over the demo data.
func NewDefaultService(opts Options) *Service {
	return core.NewDefaultService(opts)
}

// ReadSeed proxies to the seed loader.
func ReadSeed(path string) (*SeedDocument, error) {
	return core.ReadSeed(path)
}

// HandlerConfig configures NewHTTPHandler.
type HandlerConfig struct {
	Service   *Service
	Telemetry commands.Telemetry
	// Broadcast, when set, is exposed at <prefix>/events (SSE) and
	// <prefix>/ws (WebSocket). It should also be the service's RefreshHook.
	Broadcast *core.BroadcastHook
	Prefix    string
}

// NewHTTPHandler serves the JSON API on a standard library mux.
func NewHTTPHandler(cfg HandlerConfig) http.Handler {
	svc := cfg.Service
	if svc == nil {
		svc = core.NewService(Options{RefreshHook: refreshHook(cfg.Broadcast)})
	}
	prefix := strings.TrimRight(cfg.Prefix, "/")
	mux := http.NewServeMux()
	httpapi.NewHandlers(svc, cfg.Telemetry).Mount(mux, prefix)
	if cfg.Broadcast != nil {
		mux.HandleFunc("GET "+prefix+"/events", cfg.Broadcast.ServeSSE)
		mux.HandleFunc("GET "+prefix+"/ws", cfg.Broadcast.ServeWebSocket)
	}
	return mux
}

func refreshHook(hook *core.BroadcastHook) core.RefreshHook {
	if hook == nil {
		return nil
	}
	return hook
}
