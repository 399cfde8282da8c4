// Package sessions holds the server-side persisted login sessions. Every
// request that needs an identity resolves its session cookie here.
package sessions

import "time"

type Session struct {
	ID        string    // Opaque session identifier (UUID), carried in the session cookie
	UserID    string    // Owning user
	ExpiresAt time.Time // Hard expiry; extended for remember-me logins
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
