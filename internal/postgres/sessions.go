package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/sessions"
)

var _ sessions.Repo = (*SessionRepo)(nil)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{pool: store.Pool}
}

func (sr *SessionRepo) Upsert(ctx context.Context, session *sessions.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	_, err := sr.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)
	return errors.Wrapf(err, "upsert session %s", session.ID)
}

func (sr *SessionRepo) Get(ctx context.Context, id string) (*sessions.Session, error) {
	var session sessions.Session
	err := sr.pool.QueryRow(ctx, `
		SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`, id).
		Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get session")
	}
	return &session, nil
}

func (sr *SessionRepo) GetActiveForUser(ctx context.Context, userID string, now time.Time) (*sessions.Session, error) {
	var session sessions.Session
	err := sr.pool.QueryRow(ctx, `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY expires_at DESC
		LIMIT 1`, userID, now).
		Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get active session for user %s", userID)
	}
	return &session, nil
}

func (sr *SessionRepo) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	tag, err := sr.pool.Exec(ctx, `UPDATE sessions SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return errors.Wrapf(err, "extend session %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrSessionNotFound
	}
	return nil
}

func (sr *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := sr.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return errors.Wrapf(err, "delete session %s", id)
}

func (sr *SessionRepo) DeleteForUser(ctx context.Context, userID string) error {
	_, err := sr.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return errors.Wrapf(err, "delete sessions for user %s", userID)
}

func (sr *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := sr.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	return errors.Wrapf(err, "delete expired sessions")
}
