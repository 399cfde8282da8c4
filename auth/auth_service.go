// Package auth issues and resolves the first-party login sessions that the
// rest of the server treats as the base identity.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/sessions"
	"github.com/seedvault/seedvault/users"
)

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users    users.Repo
	Sessions sessions.Repo
}

// Service provides signup, login, logout and session resolution.
type Service struct {
	repos         Repos
	sessionMaxAge time.Duration
	rememberMeAge time.Duration
	nowTime       func() time.Time // nowTime function (injectable for testing)
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repos Repos, sessionMaxAge, rememberMeAge time.Duration, options ...Option) *Service {
	s := &Service{
		repos:         repos,
		sessionMaxAge: sessionMaxAge,
		rememberMeAge: rememberMeAge,
		nowTime:       time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Signup creates a new account with the user role and no subscription.
func (s *Service) Signup(ctx context.Context, email, name, password string) (*users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.Wrapf(errors.ErrValidationFailed, "invalid email %q", email)
	}
	if err := users.ValidatePasswordStrength(password); err != nil {
		return nil, errors.Wrapf(errors.ErrValidationFailed, "%s", err.Error())
	}

	if existing, err := s.repos.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrapf(err, "hash password")
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         users.RoleUser,
		CreatedAt:    s.nowTime(),
	}
	if err := s.repos.Users.Upsert(ctx, user); err != nil {
		return nil, errors.Wrapf(err, "create user")
	}
	return user, nil
}

// Login verifies credentials and issues a session. With rememberMe the
// session expiry is extended to the remember-me window.
func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (*sessions.Session, *users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, nil, errors.ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, errors.ErrInvalidCredentials
	}

	maxAge := s.sessionMaxAge
	if rememberMe {
		maxAge = s.rememberMeAge
	}

	now := s.nowTime()

	// One canonical session per user: a repeat login reuses the active
	// session, extending it if the new window reaches further. Expiry is
	// never shortened.
	if existing, err := s.repos.Sessions.GetActiveForUser(ctx, user.ID, now); err == nil && existing != nil {
		expiresAt := now.Add(maxAge)
		if expiresAt.After(existing.ExpiresAt) {
			if err := s.repos.Sessions.Extend(ctx, existing.ID, expiresAt); err != nil {
				return nil, nil, errors.Wrapf(err, "extend session")
			}
			existing.ExpiresAt = expiresAt
		}
		return existing, user, nil
	}

	session := &sessions.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(maxAge),
		CreatedAt: now,
	}
	if err := s.repos.Sessions.Upsert(ctx, session); err != nil {
		return nil, nil, errors.Wrapf(err, "create session")
	}
	return session, user, nil
}

// Logout removes the session. The caller is responsible for also
// invalidating the session's CSRF tokens.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repos.Sessions.Delete(ctx, sessionID)
}

// Resolve loads the session and its user, rejecting expired sessions.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*sessions.Session, *users.User, error) {
	session, err := s.repos.Sessions.Get(ctx, sessionID)
	if err != nil || session == nil {
		return nil, nil, errors.ErrSessionNotFound
	}
	if session.Expired(s.nowTime()) {
		_ = s.repos.Sessions.Delete(ctx, sessionID)
		return nil, nil, errors.ErrSessionExpired
	}
	user, err := s.repos.Users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, nil, errors.ErrSessionNotFound
	}
	return session, user, nil
}
