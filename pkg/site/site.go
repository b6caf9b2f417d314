package site

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchmarny/treemenu/pkg/menu"
	"github.com/mchmarny/treemenu/pkg/render"
	"github.com/mchmarny/treemenu/pkg/route"
)

// Renderer builds menu trees for a request path.
type Renderer interface {
	Render(ctx context.Context, menuName, currentPath string) (*menu.Result, error)
}

// Site serves the pages of a route table, each drawing the same navigation menu.
type Site struct {
	builder  Renderer
	pages    *render.Renderer
	routes   *route.Table
	menuName string
}

// New creates a Site drawing menuName on every page of routes.
func New(b Renderer, pages *render.Renderer, routes *route.Table, menuName string) *Site {
	return &Site{
		builder:  b,
		pages:    pages,
		routes:   routes,
		menuName: menuName,
	}
}

// RegisterHandlers registers one page handler per route, the menu API and
// the menu fragment handler.
func (s *Site) RegisterHandlers(register func(pattern string, handler http.Handler)) {
	for _, r := range s.routes.Routes() {
		register(pagePattern(r.Path), s.PageHandler(r))
	}

	register("GET /api/menus/{name}", s.APIHandler())
	register("GET /fragments/menus/{name}", s.FragmentHandler())
}

// pagePattern matches exactly path, trailing slash paths included.
func pagePattern(path string) string {
	if strings.HasSuffix(path, "/") {
		return "GET " + path + "{$}"
	}

	return "GET " + path
}

// PageHandler renders the HTML page of the route with the menu for the request path.
// A menu that fails to load is logged and the page is drawn without it.
func (s *Site) PageHandler(rt route.Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("handling page",
			"route", rt.Name,
			"url", r.URL.Path,
		)

		res, err := s.builder.Render(r.Context(), s.menuName, r.URL.Path)
		if err != nil {
			slog.Error("failed to build menu", "menu", s.menuName, "error", err)
		}

		var buf bytes.Buffer
		if err := s.pages.Page(&buf, render.Page{Title: rt.Name, Menu: res}); err != nil {
			slog.Error("failed to render page", "route", rt.Name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Error("failed to write page", "error", err)
		}
	})
}

// APIHandler returns the menu tree as JSON for the path given in the "path" query parameter.
// Responds 404 with the empty result when the menu does not exist.
func (s *Site) APIHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		path := queryPath(r)

		res, err := s.builder.Render(r.Context(), name, path)
		if err != nil {
			slog.Error("failed to build menu", "menu", name, "error", err)
			writeError(w, http.StatusInternalServerError, "error, see logs for details")
			return
		}

		status := http.StatusOK
		if res.Empty() {
			status = http.StatusNotFound
		}

		writeJSON(w, status, res)
	})
}

// FragmentHandler returns only the menu markup for the path given in the "path" query parameter,
// for pages that swap the navigation in place. A missing menu yields an empty 404 body.
func (s *Site) FragmentHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		path := queryPath(r)

		res, err := s.builder.Render(r.Context(), name, path)
		if err != nil {
			slog.Error("failed to build menu", "menu", name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := s.pages.Menu(&buf, res); err != nil {
			slog.Error("failed to render menu fragment", "menu", name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if res.Empty() {
			status = http.StatusNotFound
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Error("failed to write menu fragment", "error", err)
		}
	})
}

// queryPath returns the "path" query parameter, "/" when absent.
func queryPath(r *http.Request) string {
	if p := r.URL.Query().Get("path"); p != "" {
		return p
	}

	return "/"
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
