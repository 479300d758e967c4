package gorouter

import (
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/httpapi"
)

// Config wires go-router with the dashboard JSON API and change stream.
type Config[T any] struct {
	Router    router.Router[T]
	API       *httpapi.Handlers
	Broadcast *dashboard.BroadcastHook
	BasePath  string
	Routes    RouteConfig
}

// RouteConfig customizes the relative paths used for non API endpoints.
type RouteConfig struct {
	WebSocket string
}

// Register mounts the dashboard API and WebSocket change stream on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil && cfg.Broadcast == nil {
		return errors.New("gorouter: api or broadcast hook is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	group := cfg.Router.Group(basePath(cfg.BasePath))

	if cfg.API != nil {
		for _, route := range cfg.API.Routes() {
			if err := registerRoute(group, route); err != nil {
				return err
			}
		}
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerRoute[T any](r router.Router[T], route httpapi.Route) error {
	handler := wrapEndpoint(route)
	var info router.RouteInfo
	switch route.Method {
	case http.MethodGet:
		info = r.Get(route.Path, handler)
	case http.MethodPost:
		info = r.Post(route.Path, handler)
	case http.MethodDelete:
		info = r.Delete(route.Path, handler)
	default:
		return errors.New("gorouter: unsupported method " + route.Method + " for " + route.Path)
	}
	if info != nil && route.Name != "" {
		info.SetName("dashboard." + route.Name)
	}
	return nil
}

func wrapEndpoint(route httpapi.Route) router.HandlerFunc {
	names := route.ParamNames()
	return router.WrapHandler(func(ctx router.Context) error {
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = ctx.Param(name)
		}
		resp, err := route.Endpoint(ctx.Context(), httpapi.Request{
			Body:   ctx.Body(),
			Params: params,
			Query:  func(name string) string { return ctx.Query(name) },
		})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		if resp.Raw != nil {
			ctx.SetHeader("Content-Type", resp.ContentType)
			return ctx.Send(resp.Raw)
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		return ctx.JSON(status, resp.Payload)
	})
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		areas, err := dashboard.ParseAreas(ws.Query("area"))
		if err != nil {
			return ws.WriteJSON(map[string]string{"error": err.Error()})
		}
		events, cancel := hook.Subscribe(areas...)
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func basePath(base string) string {
	if base == "" {
		return "/admin"
	}
	return base
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
