package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/crucial707/campsite/internal/session"
)

// SessionManager loads the server-side session for every request behind it
// and saves it once the handler is done.
type SessionManager struct {
	Store  session.Store
	Codec  session.Codec
	Secure bool
}

// Handler attaches a session to the request: an existing one when the signed
// cookie resolves, a fresh one otherwise. The save after the handler honors
// the store's touch-after contract, so pure reads are cheap.
func (m *SessionManager) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.load(r)
		if s.Dirty() {
			// Fresh session: hand the cookie out immediately.
			if err := session.SetCookie(w, m.Codec, s, m.Secure); err != nil {
				slog.Error("session cookie", "err", err)
			}
		}

		next.ServeHTTP(w, WithSession(r, s))

		// The response may already be on the wire; the save must not die
		// with the request context.
		ctx := context.WithoutCancel(r.Context())
		if err := m.Store.Save(ctx, s); err != nil {
			slog.Error("session save", "err", err, "session_id", s.ID)
		}
	})
}

func (m *SessionManager) load(r *http.Request) *session.Session {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return session.New()
	}
	id, err := m.Codec.Decode(cookie.Value)
	if err != nil {
		return session.New()
	}
	s, err := m.Store.Get(r.Context(), id)
	if err != nil {
		if err != session.ErrNotFound {
			slog.Error("session load", "err", err)
		}
		return session.New()
	}
	return s
}

// Renew gives the session a fresh ID, drops the old record, and reissues the
// cookie. Call on login so a pre-authentication cookie cannot be replayed.
func (m *SessionManager) Renew(w http.ResponseWriter, r *http.Request) {
	s := SessionFromContext(r.Context())
	oldID := s.Regenerate()
	if err := m.Store.Delete(context.WithoutCancel(r.Context()), oldID); err != nil {
		slog.Error("session delete", "err", err, "session_id", oldID)
	}
	if err := session.SetCookie(w, m.Codec, s, m.Secure); err != nil {
		slog.Error("session cookie", "err", err)
	}
}

// Destroy ends the session: record deleted, cookie cleared, identity gone.
// The request continues with a fresh anonymous session so a post-logout
// flash still has somewhere to live.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	s := SessionFromContext(r.Context())
	if err := m.Store.Delete(context.WithoutCancel(r.Context()), s.ID); err != nil {
		slog.Error("session delete", "err", err, "session_id", s.ID)
	}
	s.Regenerate()
	s.SetUserID(0)
	s.Flash = map[string][]string{}
	if err := session.SetCookie(w, m.Codec, s, m.Secure); err != nil {
		slog.Error("session cookie", "err", err)
	}
}
