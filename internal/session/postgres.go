package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresStore keeps sessions in the sessions table. updated_at implements
// the touch-after contract: unchanged sessions are only rewritten once per
// TouchAfter interval, so ordinary page views do not churn the table.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var (
		s         Session
		userID    sql.NullInt64
		flashJSON []byte
	)
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, user_id, flash, return_to, expires_at, updated_at
		 FROM sessions
		 WHERE id = $1 AND expires_at > now()`,
		id,
	).Scan(&s.ID, &userID, &flashJSON, &s.ReturnTo, &s.ExpiresAt, &s.updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		s.UserID = int(userID.Int64)
	}
	if err := json.Unmarshal(flashJSON, &s.Flash); err != nil {
		return nil, err
	}
	if s.Flash == nil {
		s.Flash = map[string][]string{}
	}
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	now := time.Now()
	if !s.Dirty() {
		if !s.Stale(now) {
			return nil
		}
		// Touch only: extend the lease without rewriting state.
		_, err := p.DB.ExecContext(ctx,
			`UPDATE sessions SET updated_at = now(), expires_at = $2 WHERE id = $1`,
			s.ID, now.Add(Lifetime))
		if err == nil {
			s.markSaved(now)
		}
		return err
	}

	flashJSON, err := json.Marshal(s.Flash)
	if err != nil {
		return err
	}
	var userID sql.NullInt64
	if s.UserID != 0 {
		userID = sql.NullInt64{Int64: int64(s.UserID), Valid: true}
	}
	s.ExpiresAt = now.Add(Lifetime)
	_, err = p.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, flash, return_to, expires_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (id) DO UPDATE
		 SET user_id = EXCLUDED.user_id, flash = EXCLUDED.flash,
		     return_to = EXCLUDED.return_to,
		     expires_at = EXCLUDED.expires_at, updated_at = now()`,
		s.ID, userID, flashJSON, s.ReturnTo, s.ExpiresAt)
	if err == nil {
		s.markSaved(now)
	}
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
