// Package postgres implements every repository interface over pgx. One pool
// is shared by all repos; queries are single-row reads and writes, relying
// on the store's own atomicity rather than explicit transactions.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// EnsureSchema creates the tables if they do not exist. Schema migration
// tooling is out of scope; idempotent DDL on startup is enough here.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    paid          BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS sessions_user_id_idx ON sessions (user_id);

CREATE TABLE IF NOT EXISTS csrf_tokens (
    token      TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS csrf_tokens_session_id_idx ON csrf_tokens (session_id);
CREATE INDEX IF NOT EXISTS csrf_tokens_expires_at_idx ON csrf_tokens (expires_at);

CREATE TABLE IF NOT EXISTS admin_audit_logs (
    id             TEXT PRIMARY KEY,
    admin_id       TEXT NOT NULL,
    admin_email    TEXT NOT NULL,
    action         TEXT NOT NULL,
    target_type    TEXT NOT NULL,
    target_id      TEXT NOT NULL DEFAULT '',
    target_email   TEXT NOT NULL DEFAULT '',
    reason         TEXT NOT NULL DEFAULT '',
    details        JSONB,
    previous_state JSONB,
    new_state      JSONB,
    ip_address     TEXT NOT NULL DEFAULT '',
    user_agent     TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS admin_audit_logs_created_at_idx ON admin_audit_logs (created_at DESC);
CREATE INDEX IF NOT EXISTS admin_audit_logs_target_id_idx ON admin_audit_logs (target_id);

CREATE TABLE IF NOT EXISTS plants (
    id              TEXT PRIMARY KEY,
    common_name     TEXT NOT NULL,
    species         TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    sun_requirement TEXT NOT NULL DEFAULT '',
    days_to_harvest INTEGER NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS plant_submissions (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    user_email      TEXT NOT NULL DEFAULT '',
    common_name     TEXT NOT NULL,
    species         TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    sun_requirement TEXT NOT NULL DEFAULT '',
    days_to_harvest INTEGER NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'pending',
    reason          TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS plant_submissions_status_idx ON plant_submissions (status);

CREATE TABLE IF NOT EXISTS seeds (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    plant_id    TEXT NOT NULL DEFAULT '',
    name        TEXT NOT NULL,
    variety     TEXT NOT NULL DEFAULT '',
    quantity    INTEGER NOT NULL DEFAULT 0,
    acquired_at TIMESTAMPTZ,
    notes       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS seeds_user_id_idx ON seeds (user_id);

CREATE TABLE IF NOT EXISTS plantings (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    seed_id    TEXT NOT NULL,
    planted_at TIMESTAMPTZ NOT NULL,
    location   TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT 'active'
);
CREATE INDEX IF NOT EXISTS plantings_user_id_idx ON plantings (user_id);

CREATE TABLE IF NOT EXISTS wishlist_items (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    plant_id   TEXT NOT NULL DEFAULT '',
    name       TEXT NOT NULL,
    note       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS wishlist_items_user_id_idx ON wishlist_items (user_id);
`
