package csrf

import (
	"context"
	"time"
)

// TokenRepo defines the interface for CSRF token storage. Expired rows are
// swept lazily; see Manager.Issue.
type TokenRepo interface {
	// Insert stores a new token
	Insert(ctx context.Context, token *Token) error

	// Get retrieves a token by its exact value
	Get(ctx context.Context, token string) (*Token, error)

	// ActiveForSession returns an unexpired token for the session, if any
	ActiveForSession(ctx context.Context, sessionID string, now time.Time) (*Token, error)

	// DeleteForSession removes all tokens for a session
	DeleteForSession(ctx context.Context, sessionID string) error

	// DeleteExpired removes tokens whose expiry is at or before the given time
	DeleteExpired(ctx context.Context, now time.Time) error
}
