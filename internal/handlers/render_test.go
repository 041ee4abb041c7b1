package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/session"
)

func testRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return middleware.WithSession(r, session.New())
}

func TestWrap_ClientErrorMessagePassesThrough(t *testing.T) {
	rnd := &Renderer{}
	h := rnd.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return E(http.StatusForbidden, "You do not have permission to do that")
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, testRequest("GET", "/campgrounds/3/edit"))

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "You do not have permission to do that") {
		t.Errorf("message missing from page: %s", rr.Body.String())
	}
}

func TestWrap_InternalErrorsAreGeneric(t *testing.T) {
	rnd := &Renderer{}
	h := rnd.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("pq: connection refused to 10.0.0.5")
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, testRequest("GET", "/campgrounds"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "10.0.0.5") || strings.Contains(body, "pq:") {
		t.Errorf("raw error leaked to the page: %s", body)
	}
	if !strings.Contains(body, ErrMessageInternal) {
		t.Errorf("generic message missing: %s", body)
	}
}

func TestWrap_NoRowsBecomes404(t *testing.T) {
	rnd := &Renderer{}
	h := rnd.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return sql.ErrNoRows
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, testRequest("GET", "/campgrounds/999"))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Page Not Found") {
		t.Errorf("404 page missing message: %s", rr.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	rnd := &Renderer{}

	rr := httptest.NewRecorder()
	rnd.NotFound().ServeHTTP(rr, testRequest("GET", "/no/such/route"))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Page Not Found") {
		t.Errorf("fallback page missing message: %s", rr.Body.String())
	}
}

func TestRender_FlashShownExactlyOnce(t *testing.T) {
	rnd := &Renderer{}
	s := session.New()
	s.AddFlash(session.FlashSuccess, "Successfully made a new campground!")

	req := middleware.WithSession(httptest.NewRequest("GET", "/campgrounds", nil), s)

	rr := httptest.NewRecorder()
	rnd.Render(rr, req, http.StatusOK, "home.html", nil)
	if !strings.Contains(rr.Body.String(), "Successfully made a new campground!") {
		t.Errorf("flash not rendered: %s", rr.Body.String())
	}

	// The same session renders nothing the second time.
	rr = httptest.NewRecorder()
	rnd.Render(rr, req, http.StatusOK, "home.html", nil)
	if strings.Contains(rr.Body.String(), "Successfully made a new campground!") {
		t.Error("flash rendered twice")
	}
}

func TestRender_BuffersTemplateFailure(t *testing.T) {
	rnd := &Renderer{}

	rr := httptest.NewRecorder()
	rnd.Render(rr, testRequest("GET", "/"), http.StatusOK, "does_not_exist.html", nil)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "<html") {
		t.Error("partial page written despite template failure")
	}
}
