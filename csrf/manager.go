package csrf

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/internal/secure"
)

const tokenByteLength = 32 // 256 bits of entropy

// Manager issues and validates per-session CSRF tokens.
type Manager struct {
	repo             TokenRepo
	tokenExpiry      time.Duration
	sweepProbability float64
	nowTime          func() time.Time
}

// Option defines a function type to modify the Manager instance.
type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(repo TokenRepo, tokenExpiry time.Duration, sweepProbability float64, options ...Option) *Manager {
	m := &Manager{
		repo:             repo,
		tokenExpiry:      tokenExpiry,
		sweepProbability: sweepProbability,
		nowTime:          time.Now,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Issue returns the session's existing unexpired token, or mints and stores
// a new one. Each call may also sweep globally expired tokens with a small
// probability, which bounds table growth without a scheduler. The sweep is
// best effort; its failures are logged and ignored.
func (m *Manager) Issue(ctx context.Context, sessionID string) (*Token, error) {
	if sessionID == "" {
		return nil, errors.Wrapf(errors.ErrValidationFailed, "sessionID is required")
	}

	now := m.nowTime()

	m.maybeSweep(ctx, now)

	if existing, err := m.repo.ActiveForSession(ctx, sessionID, now); err == nil && existing != nil {
		return existing, nil
	}

	token := &Token{
		Token:     generateToken(),
		SessionID: sessionID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.tokenExpiry),
	}
	if err := m.repo.Insert(ctx, token); err != nil {
		return nil, errors.Wrapf(err, "store csrf token")
	}
	return token, nil
}

// Validate succeeds only when a stored record matches exactly this token,
// exactly this session, with an expiry strictly in the future. A missing
// token and a mismatched or expired token fail with distinct errors.
func (m *Manager) Validate(ctx context.Context, token, sessionID string) error {
	if token == "" {
		return errors.ErrCsrfTokenMissing
	}

	stored, err := m.repo.Get(ctx, token)
	if err != nil || stored == nil {
		return errors.ErrCsrfTokenInvalid
	}
	if !secure.ConstantTimeEquals(stored.SessionID, sessionID) {
		return errors.ErrCsrfTokenInvalid
	}
	if stored.Expired(m.nowTime()) {
		return errors.ErrCsrfTokenInvalid
	}
	return nil
}

// InvalidateAll deletes all tokens for a session. Called on logout.
func (m *Manager) InvalidateAll(ctx context.Context, sessionID string) error {
	return m.repo.DeleteForSession(ctx, sessionID)
}

func (m *Manager) maybeSweep(ctx context.Context, now time.Time) {
	if m.sweepProbability <= 0 || randomFloat() >= m.sweepProbability {
		return
	}
	if err := m.repo.DeleteExpired(ctx, now); err != nil {
		log.Debug().Err(err).Msg("csrf token sweep failed")
	}
}

// generateToken creates a random base64url token string
func generateToken() string {
	b := make([]byte, tokenByteLength)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// randomFloat returns a crypto-random value in [0, 1)
func randomFloat() float64 {
	const precision = 1 << 53
	n, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return 1 // disables the sweep for this call
	}
	return float64(n.Int64()) / precision
}
