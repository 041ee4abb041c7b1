package handlers

import (
	"bytes"
	"database/sql"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// Renderer renders pages into the shared layout and is the single funnel for
// error responses.
type Renderer struct {
	// MapTilerKey is exposed to templates so the show page can draw a map.
	MapTilerKey string
}

// Render writes a page. The layout's view-locals (current user and the
// one-shot flash messages) are populated here; reading the flashes is
// destructive, so a template renders each message exactly once.
func (rnd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["CurrentUser"] = middleware.UserFromContext(r.Context())
	data["MapTilerKey"] = rnd.MapTilerKey
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		data["Success"] = s.PopFlashes(session.FlashSuccess)
		data["Error"] = s.PopFlashes(session.FlashError)
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		slog.Error("template parse", "page", page, "err", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure cannot leave a
	// half-written page behind a 200.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute", "page", page, "err", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// RenderError writes the single error page with a status and message.
func (rnd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rnd.Render(w, r, status, "error.html", map[string]interface{}{
		"Status":  status,
		"Message": message,
	})
}

// Wrap adapts an error-returning handler to http.HandlerFunc and funnels
// every returned error into the error page. Recognized statuses pass their
// message through; everything else is logged and shown as a generic 500.
func (rnd *Renderer) Wrap(h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status < http.StatusInternalServerError {
			rnd.RenderError(w, r, httpErr.Status, httpErr.Message)
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			rnd.RenderError(w, r, http.StatusNotFound, "Page Not Found")
			return
		}

		slog.Error("handler error",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err)
		rnd.RenderError(w, r, http.StatusInternalServerError, ErrMessageInternal)
	}
}

// NotFound is the fallback for requests no router matched.
func (rnd *Renderer) NotFound() http.HandlerFunc {
	return rnd.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return E(http.StatusNotFound, "Page Not Found")
	})
}
