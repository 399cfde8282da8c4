package config

import (
	"os"
	"time"
)

type SecurityConfig interface {
	GetSessionMaxAge() time.Duration
	GetRememberMeMaxAge() time.Duration
	GetCsrfTokenExpiry() time.Duration
	GetCsrfSweepProbability() float64
	GetImpersonationMaxAge() time.Duration
	GetAuditDefaultPageSize() int
	GetAuditMaxPageSize() int
	GetCookieSigningSecret() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionMaxAge() time.Duration {
	return 24 * time.Hour
}

func (Security) GetRememberMeMaxAge() time.Duration {
	return 30 * 24 * time.Hour
}

func (Security) GetCsrfTokenExpiry() time.Duration {
	return 24 * time.Hour
}

// GetCsrfSweepProbability is the chance that a token issuance also deletes
// all globally expired tokens. Keeps the table bounded without a scheduler.
func (Security) GetCsrfSweepProbability() float64 {
	return 0.01
}

// GetImpersonationMaxAge bounds the impersonation window. Both cookies
// carry this as their max-age and signed expiry.
func (Security) GetImpersonationMaxAge() time.Duration {
	return 1 * time.Hour
}

func (Security) GetAuditDefaultPageSize() int {
	return 50
}

// GetAuditMaxPageSize is the server-enforced cap; larger requested page
// sizes are clamped, never honoured.
func (Security) GetAuditMaxPageSize() int {
	return 100
}

// GetCookieSigningSecret returns the HS256 key for the impersonation
// cookies. A fixed development key is used when the env var is unset.
func (Security) GetCookieSigningSecret() string {
	secret := os.Getenv("COOKIE_SIGNING_SECRET")
	if secret == "" {
		return "dev-only-cookie-signing-secret"
	}
	return secret
}
