// Package csrf issues and validates the per-session anti-forgery tokens
// required on state-changing API calls.
package csrf

import "time"

// Token is a stored anti-forgery token. A token is valid only while
// unexpired and only for the session it was issued to.
type Token struct {
	Token     string // Opaque random value, unique
	SessionID string // Session the token is bound to
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
