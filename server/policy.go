package server

import "strings"

// Route access policy. Matching is prefix-based over fixed, explicit lists:
// the set of protected prefixes is small and enumerable, and prefix matching
// keeps the policy auditable. No glob or regex engine.

// Pages that require a logged-in user. Pages redirect to login; they are
// rendered elsewhere, the server only enforces access.
var protectedPagePrefixes = []string{
	"/garden",
	"/seeds",
	"/wishlist",
	"/account",
	"/admin",
}

// APIs that require a logged-in user. APIs answer 401, never redirect.
var protectedAPIPrefixes = []string{
	"/api/",
	"/auth/csrf-token",
	"/admin/",
}

// APIs that additionally require the admin role.
var adminAPIPrefixes = []string{
	"/admin/",
}

// Paid-subscriber pages. Unpaid users are redirected to the upgrade page;
// APIs are never subject to this redirect.
var paidPagePrefixes = []string{
	"/garden/insights",
	"/garden/calendar",
}

// Paths exempt from the admin requirement even though they sit under
// /admin/: status must answer for any identity (or none) and stop must work
// for the impersonated user, who is not an admin.
var adminExemptPaths = []string{
	RouteAdminImpersonateStatus,
	RouteAdminImpersonateStop,
}

// Paths exempt from all authentication gating.
var openPaths = []string{
	RouteAdminImpersonateStatus,
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func matchesPath(path string, paths []string) bool {
	for _, p := range paths {
		if path == p {
			return true
		}
	}
	return false
}

// isAPIPath distinguishes JSON routes from page routes for the purpose of
// error shape (401 body vs redirect).
func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/auth/") ||
		strings.HasPrefix(path, "/admin/")
}
