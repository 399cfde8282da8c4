package sessions

import (
	"context"
	"time"
)

// Repo defines the interface for session storage operations.
type Repo interface {
	// Upsert creates or updates a session
	Upsert(ctx context.Context, session *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// GetActiveForUser returns the canonical unexpired session for a user.
	// When several exist, the one with the latest expiry wins.
	GetActiveForUser(ctx context.Context, userID string, now time.Time) (*Session, error)

	// Extend moves a session's expiry forward (remember-me)
	Extend(ctx context.Context, id string, expiresAt time.Time) error

	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error

	// DeleteForUser removes all of a user's sessions
	DeleteForUser(ctx context.Context, userID string) error

	// DeleteExpired removes sessions whose expiry is at or before the given time
	DeleteExpired(ctx context.Context, now time.Time) error
}
