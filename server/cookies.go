package server

import (
	"net/http"
	"time"

	"github.com/seedvault/seedvault/impersonation"
)

const (
	// SessionCookieName carries the opaque session ID
	SessionCookieName = "session_id"
	// CsrfTokenHeader is expected on state-changing API calls
	CsrfTokenHeader = "x-csrf-token"
)

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge time.Duration) {
	s.setCookie(w, r, SessionCookieName, sessionID, int(maxAge.Seconds()))
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, r, SessionCookieName, "", -1)
}

func (s *Server) setImpersonationCookies(w http.ResponseWriter, r *http.Request, result *impersonation.StartResult) {
	maxAge := int(s.impersonation.MaxAge().Seconds())
	s.setCookie(w, r, impersonation.AdminSessionCookieName, result.AdminSessionCookie, maxAge)
	s.setCookie(w, r, impersonation.ImpersonationCookieName, result.ImpersonationCookie, maxAge)
}

func (s *Server) clearImpersonationCookies(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, r, impersonation.AdminSessionCookieName, "", -1)
	s.setCookie(w, r, impersonation.ImpersonationCookieName, "", -1)
}

func (s *Server) setCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
