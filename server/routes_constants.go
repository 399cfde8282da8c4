package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthSignup    = "/auth/signup"
	RouteAuthLogin     = "/auth/login"
	RouteAuthLogout    = "/auth/logout"
	RouteAuthCsrfToken = "/auth/csrf-token"

	// Admin Routes - Impersonation
	RouteAdminImpersonateStart  = "/admin/impersonate/start"
	RouteAdminImpersonateStatus = "/admin/impersonate/status"
	RouteAdminImpersonateStop   = "/admin/impersonate/stop"

	// Admin Routes - Audit & Management
	RouteAdminAuditLogs         = "/admin/audit-logs"
	RouteAdminUser              = "/admin/users/{id}"
	RouteAdminUserRole          = "/admin/users/{id}/role"
	RouteAdminPlants            = "/admin/plants"
	RouteAdminPlant             = "/admin/plants/{id}"
	RouteAdminSubmissions       = "/admin/submissions"
	RouteAdminSubmissionApprove = "/admin/submissions/{id}/approve"
	RouteAdminSubmissionReject  = "/admin/submissions/{id}/reject"

	// API Routes - Plant encyclopedia
	RouteAPIPlants           = "/api/plants"
	RouteAPIPlant            = "/api/plants/{id}"
	RouteAPIPlantSubmissions = "/api/plants/submissions"

	// API Routes - Garden
	RouteAPISeeds        = "/api/seeds"
	RouteAPIPlantings    = "/api/plantings"
	RouteAPIWishlist     = "/api/wishlist"
	RouteAPIWishlistItem = "/api/wishlist/{id}"

	// Page Routes (served by the rendering layer; the server only enforces
	// their access policy)
	RouteUpgradePage = "/upgrade"
)
