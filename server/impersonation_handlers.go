package server

import (
	"net"
	"net/http"

	"github.com/seedvault/seedvault/impersonation"
	"github.com/seedvault/seedvault/internal/errors"
)

type impersonateStartRequest struct {
	UserID string `json:"userId"`
}

// ImpersonateStartHandler begins impersonating a target user. The admin
// requirement is enforced by the route policy before this runs.
func (s *Server) ImpersonateStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := s.currentUser(r)

		var req impersonateStartRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, "userId is required")
			return
		}

		result, err := s.impersonation.Start(r.Context(),
			impersonation.Identity{UserID: admin.ID, Email: admin.Email},
			req.UserID, requestMeta(r))
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}

		s.setImpersonationCookies(w, r, result)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   result.Token,
			"user":    result.Target,
		})
	}
}

// ImpersonateStatusHandler reports whether an impersonation window is
// active for the requesting identity. It never errors observably: every
// failure mode is just "not impersonating".
func (s *Server) ImpersonateStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var identity impersonation.Identity
		if user := s.currentUser(r); user != nil {
			identity = impersonation.Identity{UserID: user.ID, Email: user.Email}
		}

		cookieValue := ""
		if cookie, err := r.Cookie(impersonation.ImpersonationCookieName); err == nil {
			cookieValue = cookie.Value
		}

		writeJSON(w, http.StatusOK, s.impersonation.CurrentStatus(identity, cookieValue))
	}
}

// ImpersonateStopHandler ends the window and clears both cookies. A cookie
// that fails to verify is cleared too, so the broken state self-heals.
func (s *Server) ImpersonateStopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookieValue := ""
		if cookie, err := r.Cookie(impersonation.ImpersonationCookieName); err == nil {
			cookieValue = cookie.Value
		}

		result, err := s.impersonation.Stop(r.Context(), cookieValue, requestMeta(r))
		if err != nil {
			if errors.Is(err, errors.ErrDataCorruption) {
				s.clearImpersonationCookies(w, r)
			}
			writeErrorFromErr(w, err)
			return
		}

		s.clearImpersonationCookies(w, r)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"duration": result.Duration.String(),
		})
	}
}

// requestMeta extracts the attribution fields stored with audit entries.
func requestMeta(r *http.Request) impersonation.RequestMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}
	return impersonation.RequestMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}
