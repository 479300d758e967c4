package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Handler adapts an Endpoint to net/http. Path parameters are read with
// Request.PathValue, so the handler must be mounted with a pattern that
// names them.
func Handler(route Route) http.Handler {
	names := paramNames(route.Path)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = r.PathValue(name)
		}
		query := r.URL.Query()
		resp, err := route.Endpoint(r.Context(), Request{Body: body, Params: params, Query: query.Get})
		if err != nil {
			writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
			return
		}
		writeResponse(w, resp)
	})
}

// Mount registers every route on mux under prefix.
func (h *Handlers) Mount(mux *http.ServeMux, prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	for _, route := range h.Routes() {
		mux.Handle(route.Method+" "+prefix+MuxPattern(route.Path), Handler(route))
	}
}

// MuxPattern rewrites :name segments into ServeMux {name} wildcards.
func MuxPattern(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func paramNames(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ":") {
			names = append(names, segment[1:])
		}
	}
	return names
}

// ParamNames lists the :name parameters of a route path.
func (r Route) ParamNames() []string {
	return paramNames(r.Path)
}

func writeResponse(w http.ResponseWriter, resp Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Raw != nil {
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
		return
	}
	writeJSON(w, status, resp.Payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// HandleExportCSV streams the current data view as CSV.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if h.Exporter == nil {
		http.Error(w, "export is not configured", http.StatusNotImplemented)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	if _, err := h.Exporter.ExportRecords(r.Context(), w); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
	}
}
