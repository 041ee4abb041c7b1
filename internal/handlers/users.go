package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/session"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

type UserHandler struct {
	Users    *repo.UserRepo
	Sessions *middleware.SessionManager
	R        *Renderer
}

// Home renders the landing page.
func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) error {
	h.R.Render(w, r, http.StatusOK, "home.html", nil)
	return nil
}

// RegisterForm renders the signup form.
func (h *UserHandler) RegisterForm(w http.ResponseWriter, r *http.Request) error {
	h.R.Render(w, r, http.StatusOK, "register.html", nil)
	return nil
}

// Register creates an account and signs the new user in.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) error {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	s := middleware.SessionFromContext(r.Context())

	if username == "" || email == "" || password == "" {
		s.AddFlash(session.FlashError, "Username, email, and password are required")
		http.Redirect(w, r, "/register", http.StatusFound)
		return nil
	}
	if !strings.Contains(email, "@") {
		s.AddFlash(session.FlashError, "That email address does not look right")
		http.Redirect(w, r, "/register", http.StatusFound)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := h.Users.Create(r.Context(), username, email, string(hash))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.AddFlash(session.FlashError, "Username or email is already taken")
			http.Redirect(w, r, "/register", http.StatusFound)
			return nil
		}
		return err
	}

	// Fresh session ID on privilege change.
	h.Sessions.Renew(w, r)
	s.SetUserID(user.ID)
	s.AddFlash(session.FlashSuccess, "Welcome to Campsite!")
	http.Redirect(w, r, "/campgrounds", http.StatusFound)
	return nil
}

// LoginForm renders the login form.
func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) error {
	h.R.Render(w, r, http.StatusOK, "login.html", nil)
	return nil
}

// Login verifies credentials and binds the user to the session.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) error {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	s := middleware.SessionFromContext(r.Context())

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.AddFlash(session.FlashError, "Invalid username or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return nil
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.AddFlash(session.FlashError, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}

	h.Sessions.Renew(w, r)
	s.SetUserID(user.ID)
	s.AddFlash(session.FlashSuccess, "Welcome back!")

	redirect := s.PopReturnTo()
	if redirect == "" {
		redirect = "/campgrounds"
	}
	http.Redirect(w, r, redirect, http.StatusFound)
	return nil
}

// Logout ends the session.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	h.Sessions.Destroy(w, r)
	s := middleware.SessionFromContext(r.Context())
	s.AddFlash(session.FlashSuccess, "Goodbye!")
	http.Redirect(w, r, "/campgrounds", http.StatusFound)
	return nil
}
