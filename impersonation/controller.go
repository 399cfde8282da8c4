// Package impersonation lets an admin assume a non-admin user's identity
// for a bounded window. The state lives entirely in two signed, short-lived
// cookies; there is no server-side table to clean up.
package impersonation

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seedvault/seedvault/audit"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/users"
)

const tokenByteLength = 32

// RequestMeta carries request attribution into audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Identity is the authenticated identity of the current request, if any.
type Identity struct {
	UserID string
	Email  string
}

// StartResult holds everything the handler needs to finish a successful
// start: the signed cookie values and the response payload.
type StartResult struct {
	Token               string
	Target              users.Snapshot
	AdminSessionCookie  string
	ImpersonationCookie string
	ExpiresAt           time.Time
}

// Status is what the status endpoint reports.
type Status struct {
	Impersonating bool            `json:"impersonating"`
	User          *users.Snapshot `json:"user,omitempty"`
	AdminID       string          `json:"adminId,omitempty"`
}

// EndResult reports the outcome of a stop.
type EndResult struct {
	Duration time.Duration
}

// Controller implements the start/status/stop state machine.
type Controller struct {
	users    users.Repo
	auditLog *audit.Log
	codec    *Codec
	maxAge   time.Duration
	nowTime  func() time.Time
}

// Option defines a function type to modify the Controller instance.
type Option func(*Controller)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Controller) {
		c.nowTime = nowFunc
	}
}

func NewController(userRepo users.Repo, auditLog *audit.Log, codec *Codec, maxAge time.Duration, options ...Option) *Controller {
	c := &Controller{
		users:    userRepo,
		auditLog: auditLog,
		codec:    codec,
		maxAge:   maxAge,
		nowTime:  time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// MaxAge is the absolute lifetime of an impersonation window.
func (c *Controller) MaxAge() time.Duration {
	return c.maxAge
}

// Start begins impersonating the target user. The caller must already hold
// an authenticated admin identity; that is enforced by the route middleware
// before this runs. Nothing is written on any failure path.
func (c *Controller) Start(ctx context.Context, admin Identity, targetUserID string, meta RequestMeta) (*StartResult, error) {
	target, err := c.users.GetByID(ctx, targetUserID)
	if err != nil || target == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %s", targetUserID)
	}
	if target.IsAdmin() {
		return nil, errors.Wrapf(errors.ErrInvalidOperation, "cannot impersonate an admin user")
	}

	now := c.nowTime()
	token := generateToken()
	snapshot := target.Snapshot()

	adminCookie, err := c.codec.EncodeAdminSession(&AdminSessionClaims{
		AdminID:          admin.UserID,
		AdminEmail:       admin.Email,
		RegisteredClaims: registeredClaims(now, c.maxAge),
	})
	if err != nil {
		return nil, err
	}

	impersonationCookie, err := c.codec.EncodeImpersonation(&ImpersonationClaims{
		AdminID:          admin.UserID,
		AdminEmail:       admin.Email,
		User:             snapshot,
		Token:            token,
		StartedAt:        now.Unix(),
		RegisteredClaims: registeredClaims(now, c.maxAge),
	})
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]string{
		"tokenFragment": redactToken(token),
	})
	if _, err := c.auditLog.Record(ctx, &audit.Entry{
		AdminID:     admin.UserID,
		AdminEmail:  admin.Email,
		Action:      audit.ActionImpersonateStart,
		TargetType:  audit.TargetUser,
		TargetID:    target.ID,
		TargetEmail: target.Email,
		Details:     details,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}); err != nil {
		return nil, errors.Wrapf(err, "record impersonation start")
	}

	return &StartResult{
		Token:               token,
		Target:              snapshot,
		AdminSessionCookie:  adminCookie,
		ImpersonationCookie: impersonationCookie,
		ExpiresAt:           now.Add(c.maxAge),
	}, nil
}

// CurrentStatus reports whether the request is inside an active
// impersonation window. It answers false on a missing cookie, a cookie that
// fails to verify, or an identity that matches neither the acting admin nor
// the impersonated user. It never errors observably.
func (c *Controller) CurrentStatus(identity Identity, cookieValue string) Status {
	if cookieValue == "" {
		return Status{Impersonating: false}
	}

	claims, err := c.codec.DecodeImpersonation(cookieValue)
	if err != nil {
		return Status{Impersonating: false}
	}

	if identity.UserID == "" ||
		(identity.UserID != claims.AdminID && identity.UserID != claims.User.ID) {
		return Status{Impersonating: false}
	}

	user := claims.User
	return Status{
		Impersonating: true,
		User:          &user,
		AdminID:       claims.AdminID,
	}
}

// Stop ends the impersonation window and records how long it lasted.
// A missing cookie is an invalid operation; a cookie that fails to verify
// is corrupted data, and the handler clears it so the state self-heals.
func (c *Controller) Stop(ctx context.Context, cookieValue string, meta RequestMeta) (*EndResult, error) {
	if cookieValue == "" {
		return nil, errors.Wrapf(errors.ErrNotImpersonating, "no impersonation cookie present")
	}

	claims, err := c.codec.DecodeImpersonation(cookieValue)
	if err != nil {
		return nil, err
	}

	elapsed := c.nowTime().Sub(time.Unix(claims.StartedAt, 0))

	details, _ := json.Marshal(map[string]string{
		"tokenFragment": redactToken(claims.Token),
		"duration":      elapsed.Round(time.Second).String(),
	})
	if _, err := c.auditLog.Record(ctx, &audit.Entry{
		AdminID:     claims.AdminID,
		AdminEmail:  claims.AdminEmail,
		Action:      audit.ActionImpersonateEnd,
		TargetType:  audit.TargetUser,
		TargetID:    claims.User.ID,
		TargetEmail: claims.User.Email,
		Details:     details,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}); err != nil {
		return nil, errors.Wrapf(err, "record impersonation end")
	}

	return &EndResult{Duration: elapsed}, nil
}

// generateToken creates a random base64url token string
func generateToken() string {
	b := make([]byte, tokenByteLength)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// redactToken keeps only a short prefix, enough to correlate entries
// without ever storing the full value.
func redactToken(token string) string {
	const keep = 8
	if len(token) <= keep {
		return token
	}
	return fmt.Sprintf("%s...", token[:keep])
}
