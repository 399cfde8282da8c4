package impersonation

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/users"
)

// Cookie names written during an impersonation window. Both are httpOnly,
// SameSite=Lax, and expire with the window.
const (
	AdminSessionCookieName  = "admin_session"
	ImpersonationCookieName = "impersonation"
)

// AdminSessionClaims preserves the acting admin's identity while requests
// present the impersonated user.
type AdminSessionClaims struct {
	AdminID    string `json:"adminId"`
	AdminEmail string `json:"adminEmail"`
	jwtlib.RegisteredClaims
}

// ImpersonationClaims is the full impersonation state. The payload is signed
// rather than plain JSON so a tampered cookie fails to parse.
type ImpersonationClaims struct {
	AdminID    string         `json:"adminId"`
	AdminEmail string         `json:"adminEmail"`
	User       users.Snapshot `json:"user"`
	Token      string         `json:"token"`
	StartedAt  int64          `json:"startedAt"` // Unix seconds
	jwtlib.RegisteredClaims
}

// Codec signs and verifies the impersonation cookie payloads (HS256).
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) EncodeAdminSession(claims *AdminSessionClaims) (string, error) {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrapf(err, "sign admin session cookie")
	}
	return signed, nil
}

func (c *Codec) EncodeImpersonation(claims *ImpersonationClaims) (string, error) {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrapf(err, "sign impersonation cookie")
	}
	return signed, nil
}

// DecodeImpersonation verifies the signature and expiry of an impersonation
// cookie value. Any failure means the cookie is unusable, not merely stale.
func (c *Codec) DecodeImpersonation(value string) (*ImpersonationClaims, error) {
	claims := &ImpersonationClaims{}
	token, err := jwtlib.ParseWithClaims(value, claims, c.keyFunc,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.Wrapf(errors.ErrDataCorruption, "impersonation cookie did not verify")
	}
	return claims, nil
}

func (c *Codec) keyFunc(_ *jwtlib.Token) (interface{}, error) {
	return c.secret, nil
}

func registeredClaims(now time.Time, maxAge time.Duration) jwtlib.RegisteredClaims {
	return jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(maxAge)),
	}
}
