package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/seedvault/seedvault/sessions"
	"github.com/seedvault/seedvault/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeySessionID stores the session ID backing the identity
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeyUser stores the resolved user
	ContextKeyUser ContextKey = "user"
)

// Gatekeeper evaluates the combined route policy before any handler runs:
// authentication, admin role, and paid-subscription gating, in that order.
// It also injects the resolved identity into the request context so
// handlers never re-resolve the session.
func (s *Server) Gatekeeper(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		session, user := s.resolveIdentity(r)
		if user != nil {
			ctx := context.WithValue(r.Context(), ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, ContextKeySessionID, session.ID)
			ctx = context.WithValue(ctx, ContextKeyUser, user)
			r = r.WithContext(ctx)
		}

		if matchesPath(path, openPaths) {
			next(w, r)
			return
		}

		isAPI := isAPIPath(path)

		if user == nil {
			if matchesPrefix(path, protectedAPIPrefixes) && isAPI {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if matchesPrefix(path, protectedPagePrefixes) {
				http.Redirect(w, r, RouteAuthLogin, http.StatusSeeOther)
				return
			}
			next(w, r)
			return
		}

		if matchesPrefix(path, adminAPIPrefixes) && !matchesPath(path, adminExemptPaths) {
			if !user.IsAdmin() {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
		}

		if !isAPI && matchesPrefix(path, paidPagePrefixes) && !user.Paid && !user.IsAdmin() {
			redirect := RouteUpgradePage + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}

// RequireCsrf validates the x-csrf-token header against the request's
// session. Chain it on state-changing routes after Gatekeeper.
func (s *Server) RequireCsrf() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID, _ := r.Context().Value(ContextKeySessionID).(string)
			token := r.Header.Get(CsrfTokenHeader)

			if err := s.csrf.Validate(r.Context(), token, sessionID); err != nil {
				writeErrorFromErr(w, err)
				return
			}
			next(w, r)
		}
	}
}

// resolveIdentity loads the session cookie's user, tolerating absence.
// Expired or dangling sessions resolve to anonymous.
func (s *Server) resolveIdentity(r *http.Request) (*sessions.Session, *users.User) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	session, user, err := s.auth.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil, nil
	}
	return session, user
}

func (s *Server) currentUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(ContextKeyUser).(*users.User)
	return user
}

func (s *Server) currentSessionID(r *http.Request) string {
	sessionID, _ := r.Context().Value(ContextKeySessionID).(string)
	return sessionID
}
