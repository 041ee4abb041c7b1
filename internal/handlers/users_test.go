package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/session"
)

func newTestSessions(t *testing.T) *middleware.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	return &middleware.SessionManager{
		Store: session.NewRedisStore(mr.Addr(), ""),
		Codec: session.NewCodec("test-secret"),
	}
}

func formRequest(target string, form url.Values, s *session.Session) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return middleware.WithSession(req, s)
}

func TestUserHandler_Register(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\)`).
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "hashed", now))

	h := &UserHandler{Users: repo.NewUserRepo(db), Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	form := url.Values{"username": {"alice"}, "email": {"alice@example.com"}, "password": {"hunter2"}}
	rr := httptest.NewRecorder()
	if err := h.Register(rr, formRequest("/register", form, s)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if rr.Code != http.StatusFound {
		t.Errorf("status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/campgrounds" {
		t.Errorf("redirect: %q", loc)
	}
	if s.UserID != 1 {
		t.Errorf("user not signed in: %d", s.UserID)
	}
	if msgs := s.Flash[session.FlashSuccess]; len(msgs) != 1 || msgs[0] != "Welcome to Campsite!" {
		t.Errorf("unexpected flash: %v", s.Flash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_Register_DuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\)`).
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	h := &UserHandler{Users: repo.NewUserRepo(db), Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	form := url.Values{"username": {"alice"}, "email": {"alice@example.com"}, "password": {"hunter2"}}
	rr := httptest.NewRecorder()
	if err := h.Register(rr, formRequest("/register", form, s)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if loc := rr.Header().Get("Location"); loc != "/register" {
		t.Errorf("redirect: %q", loc)
	}
	if s.UserID != 0 {
		t.Errorf("duplicate registration signed someone in: %d", s.UserID)
	}
	if msgs := s.Flash[session.FlashError]; len(msgs) != 1 || msgs[0] != "Username or email is already taken" {
		t.Errorf("unexpected flash: %v", s.Flash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	h := &UserHandler{Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	rr := httptest.NewRecorder()
	if err := h.Register(rr, formRequest("/register", url.Values{"username": {"alice"}}, s)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if loc := rr.Header().Get("Location"); loc != "/register" {
		t.Errorf("redirect: %q", loc)
	}
	if len(s.Flash[session.FlashError]) != 1 {
		t.Errorf("expected one error flash: %v", s.Flash)
	}
}

func TestUserHandler_Login(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", string(hash), now))

	h := &UserHandler{Users: repo.NewUserRepo(db), Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	s.SetReturnTo("/campgrounds/3")
	oldID := s.ID
	form := url.Values{"username": {"alice"}, "password": {"hunter2"}}
	rr := httptest.NewRecorder()
	if err := h.Login(rr, formRequest("/login", form, s)); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if loc := rr.Header().Get("Location"); loc != "/campgrounds/3" {
		t.Errorf("login did not honor the remembered destination: %q", loc)
	}
	if s.UserID != 1 {
		t.Errorf("user not signed in: %d", s.UserID)
	}
	if s.ID == oldID {
		t.Error("session ID not rotated on login")
	}
	if msgs := s.Flash[session.FlashSuccess]; len(msgs) != 1 || msgs[0] != "Welcome back!" {
		t.Errorf("unexpected flash: %v", s.Flash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", string(hash), now))

	h := &UserHandler{Users: repo.NewUserRepo(db), Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	rr := httptest.NewRecorder()
	if err := h.Login(rr, formRequest("/login", form, s)); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect: %q", loc)
	}
	if s.UserID != 0 {
		t.Errorf("wrong password signed someone in: %d", s.UserID)
	}
	if msgs := s.Flash[session.FlashError]; len(msgs) != 1 || msgs[0] != "Invalid username or password" {
		t.Errorf("unexpected flash: %v", s.Flash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_Logout(t *testing.T) {
	h := &UserHandler{Sessions: newTestSessions(t), R: &Renderer{}}

	s := session.New()
	s.SetUserID(7)
	rr := httptest.NewRecorder()
	req := middleware.WithSession(httptest.NewRequest("POST", "/logout", nil), s)
	if err := h.Logout(rr, req); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if loc := rr.Header().Get("Location"); loc != "/campgrounds" {
		t.Errorf("redirect: %q", loc)
	}
	if s.UserID != 0 {
		t.Errorf("identity survived logout: %d", s.UserID)
	}
	if msgs := s.Flash[session.FlashSuccess]; len(msgs) != 1 || msgs[0] != "Goodbye!" {
		t.Errorf("unexpected flash: %v", s.Flash)
	}
}
