package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seedvault/seedvault/internal/errors"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// SignupHandler creates an account. The new user still has to log in.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		user, err := s.auth.Signup(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"user":    user.Snapshot(),
		})
	}
}

// LoginHandler verifies credentials and sets the session cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		session, user, err := s.auth.Login(r.Context(), req.Email, req.Password, req.RememberMe)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}

		s.setSessionCookie(w, r, session.ID, time.Until(session.ExpiresAt))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    user.Snapshot(),
		})
	}
}

// LogoutHandler deletes the session, its CSRF tokens, and the cookie.
// Logging out with no session is not an error.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.currentSessionID(r)
		if sessionID == "" {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID != "" {
			if err := s.auth.Logout(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("Failed to delete session on logout")
			}
			if err := s.csrf.InvalidateAll(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("Failed to invalidate csrf tokens on logout")
			}
		}

		s.clearSessionCookie(w, r)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// CsrfTokenHandler issues (or re-serves) the session's anti-forgery token.
func (s *Server) CsrfTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.currentSessionID(r)
		if sessionID == "" {
			writeErrorFromErr(w, errors.ErrAuthenticationRequired)
			return
		}

		token, err := s.csrf.Issue(r.Context(), sessionID)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"csrfToken": token.Token,
			"expiresIn": int(time.Until(token.ExpiresAt).Seconds()),
		})
	}
}
