package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seedvault/seedvault/csrf"
	"github.com/seedvault/seedvault/internal/errors"
)

var _ csrf.TokenRepo = (*CsrfTokenRepo)(nil)

type CsrfTokenRepo struct {
	pool *pgxpool.Pool
}

func NewCsrfTokenRepo(store *Store) *CsrfTokenRepo {
	return &CsrfTokenRepo{pool: store.Pool}
}

func (tr *CsrfTokenRepo) Insert(ctx context.Context, token *csrf.Token) error {
	_, err := tr.pool.Exec(ctx, `
		INSERT INTO csrf_tokens (token, session_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		token.Token, token.SessionID, token.CreatedAt, token.ExpiresAt)
	return errors.Wrapf(err, "insert csrf token")
}

func (tr *CsrfTokenRepo) Get(ctx context.Context, token string) (*csrf.Token, error) {
	var stored csrf.Token
	err := tr.pool.QueryRow(ctx, `
		SELECT token, session_id, created_at, expires_at
		FROM csrf_tokens WHERE token = $1`, token).
		Scan(&stored.Token, &stored.SessionID, &stored.CreatedAt, &stored.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get csrf token")
	}
	return &stored, nil
}

func (tr *CsrfTokenRepo) ActiveForSession(ctx context.Context, sessionID string, now time.Time) (*csrf.Token, error) {
	var stored csrf.Token
	err := tr.pool.QueryRow(ctx, `
		SELECT token, session_id, created_at, expires_at
		FROM csrf_tokens
		WHERE session_id = $1 AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`, sessionID, now).
		Scan(&stored.Token, &stored.SessionID, &stored.CreatedAt, &stored.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get active csrf token for session")
	}
	return &stored, nil
}

func (tr *CsrfTokenRepo) DeleteForSession(ctx context.Context, sessionID string) error {
	_, err := tr.pool.Exec(ctx, `DELETE FROM csrf_tokens WHERE session_id = $1`, sessionID)
	return errors.Wrapf(err, "delete csrf tokens for session")
}

// DeleteExpired only removes rows already past expiry, a condition that is
// monotonic, so running it concurrently with validation is safe.
func (tr *CsrfTokenRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := tr.pool.Exec(ctx, `DELETE FROM csrf_tokens WHERE expires_at <= $1`, now)
	return errors.Wrapf(err, "delete expired csrf tokens")
}
