// Package session implements server-side sessions keyed by a signed cookie.
// Session state (logged-in user, one-shot flash messages) lives in a store
// backend; the cookie carries only a signed session ID.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lifetime is how long a session lives from its last write.
const Lifetime = 7 * 24 * time.Hour

// TouchAfter is the minimum idle time before an unchanged session is
// rewritten to the store. Reads within this window do not touch the store.
const TouchAfter = 24 * time.Hour

// Flash kinds used by the handlers.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// ErrNotFound is returned by a Store when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Session is one server-side session record. Mutations go through the
// methods so the store can tell dirty sessions from mere reads.
type Session struct {
	ID        string
	UserID    int // 0 when nobody is logged in
	Flash     map[string][]string
	ReturnTo  string // where to send the user after login
	ExpiresAt time.Time

	updatedAt time.Time
	dirty     bool
	fresh     bool
}

// New creates an unpersisted session with a random ID.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Flash:     map[string][]string{},
		ExpiresAt: time.Now().Add(Lifetime),
		fresh:     true,
	}
}

// SetUserID binds a user to the session (0 clears it).
func (s *Session) SetUserID(id int) {
	s.UserID = id
	s.dirty = true
}

// AddFlash appends a one-shot message of the given kind.
func (s *Session) AddFlash(kind, message string) {
	if s.Flash == nil {
		s.Flash = map[string][]string{}
	}
	s.Flash[kind] = append(s.Flash[kind], message)
	s.dirty = true
}

// PopFlashes returns and clears all messages of the given kind. The read is
// destructive: a second call in the same request sees nothing.
func (s *Session) PopFlashes(kind string) []string {
	msgs := s.Flash[kind]
	if len(msgs) == 0 {
		return nil
	}
	delete(s.Flash, kind)
	s.dirty = true
	return msgs
}

// SetReturnTo remembers the URL to land on after the next login.
func (s *Session) SetReturnTo(url string) {
	s.ReturnTo = url
	s.dirty = true
}

// PopReturnTo returns and clears the post-login destination.
func (s *Session) PopReturnTo() string {
	url := s.ReturnTo
	if url != "" {
		s.ReturnTo = ""
		s.dirty = true
	}
	return url
}

// Regenerate swaps in a fresh session ID, keeping user and flash state.
// Call on privilege changes (login) so a pre-login cookie cannot be replayed.
func (s *Session) Regenerate() (oldID string) {
	oldID = s.ID
	s.ID = uuid.NewString()
	s.ExpiresAt = time.Now().Add(Lifetime)
	s.dirty = true
	s.fresh = true
	return oldID
}

// Dirty reports whether the session has unsaved mutations.
func (s *Session) Dirty() bool { return s.dirty || s.fresh }

// Stale reports whether the record is due for a touch write even without
// mutations, per the TouchAfter contract.
func (s *Session) Stale(now time.Time) bool {
	return now.Sub(s.updatedAt) >= TouchAfter
}

func (s *Session) markSaved(now time.Time) {
	s.dirty = false
	s.fresh = false
	s.updatedAt = now
}

// Store persists sessions server-side.
type Store interface {
	// Get loads a session by ID. Expired or missing sessions yield ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Save writes the session if it is dirty, fresh, or stale; otherwise it
	// is a no-op (the touch-after contract).
	Save(ctx context.Context, s *Session) error
	// Delete removes a session.
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes expired sessions and returns how many went away.
	PurgeExpired(ctx context.Context) (int64, error)
}
