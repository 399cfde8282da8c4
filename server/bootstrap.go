package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/users"
)

const defaultAdminName = "Administrator"

// InitialiseSystem makes sure an administrator account exists so the admin
// surfaces are reachable on a fresh database. Returns the generated password
// on first creation, empty when an admin already exists.
func (s *Server) InitialiseSystem(ctx context.Context) (generatedPassword string, err error) {
	adminEmail := s.config.GetAdminEmail()
	if adminEmail == "" {
		adminEmail = generateEmailFromBaseURL("admin", s.config.GetBaseURL())
	}

	existing, err := s.repos.Users.GetByEmail(ctx, adminEmail)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return "", errors.Wrapf(err, "check for existing admin")
	}
	if existing != nil {
		if !existing.IsAdmin() {
			if err := s.repos.Users.SetRole(ctx, existing.ID, users.RoleAdmin); err != nil {
				return "", errors.Wrapf(err, "promote bootstrap admin")
			}
			log.Info().Str("email", adminEmail).Msg("promoted existing account to admin")
		}
		return "", nil
	}

	// Generate a random password, shown once in the startup log
	passwordBytes := make([]byte, 16)
	if _, err := rand.Read(passwordBytes); err != nil {
		return "", errors.Wrapf(err, "generate admin password")
	}
	generatedPassword = base64.URLEncoding.EncodeToString(passwordBytes)

	passwordHash, err := users.HashPassword(generatedPassword)
	if err != nil {
		return "", errors.Wrapf(err, "hash admin password")
	}

	admin := &users.User{
		Email:        adminEmail,
		Name:         defaultAdminName,
		PasswordHash: passwordHash,
		Role:         users.RoleAdmin,
		Paid:         true,
		CreatedAt:    time.Now(),
	}
	if err := s.repos.Users.Upsert(ctx, admin); err != nil {
		return "", errors.Wrapf(err, "create bootstrap admin")
	}

	log.Info().Msg("bootstrap complete, administrator account created")
	log.Info().Str("email", adminEmail).Msg("admin email")
	log.Info().Str("password", generatedPassword).Msg("admin password, save it now, it is not shown again")

	return generatedPassword, nil
}

// generateEmailFromBaseURL creates an email address from a username and base URL
// Example: ("admin", "https://seeds.example.com/path") -> "admin@seeds.example.com"
func generateEmailFromBaseURL(user, baseURL string) string {
	domain := strings.ReplaceAll(strings.ReplaceAll(baseURL, "https://", ""), "http://", "")
	domain = strings.SplitN(domain, "/", 2)[0] // Remove any path - safe because SplitN always returns at least 1 element
	domain = strings.SplitN(domain, ":", 2)[0] // Remove port if present
	return fmt.Sprintf("%s@%s", user, domain)
}
