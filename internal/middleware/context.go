package middleware

import (
	"context"
	"net/http"

	"github.com/crucial707/campsite/internal/models"
	"github.com/crucial707/campsite/internal/session"
)

type key string

const (
	sessionKey     key = "session"
	currentUserKey key = "current_user"
)

// SessionFromContext returns the request's session. The session middleware
// guarantees a non-nil session on every route behind it.
func SessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

// UserFromContext returns the logged-in user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(currentUserKey).(*models.User)
	return u
}

// WithSession returns a request carrying the session in its context.
func WithSession(r *http.Request, s *session.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey, s))
}

// WithUser returns a request carrying the logged-in user in its context.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
