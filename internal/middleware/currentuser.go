package middleware

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/session"
)

// CurrentUser deserializes the session's stored identity into a request-scoped
// user. A dangling user ID (account deleted) silently logs the session out.
func CurrentUser(users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := SessionFromContext(r.Context())
			if s == nil || s.UserID == 0 {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetByID(r.Context(), s.UserID)
			if err != nil {
				if err != sql.ErrNoRows {
					slog.Error("current user lookup", "err", err, "user_id", s.UserID)
				}
				s.SetUserID(0)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, WithUser(r, user))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, remembering
// where they were headed so login can send them back.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			s := SessionFromContext(r.Context())
			if s != nil {
				s.AddFlash(session.FlashError, "You must be signed in first")
				if r.Method == http.MethodGet {
					s.SetReturnTo(r.URL.RequestURI())
				}
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
