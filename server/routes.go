package server

import "net/http"

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	csrfGuarded := append([]func(http.HandlerFunc) http.HandlerFunc{}, api...)
	csrfGuarded = append(csrfGuarded, s.RequireCsrf())

	// Auth. Login and signup establish the session a CSRF token binds to,
	// so they cannot require one.
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignupHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthCsrfToken, ChainMiddleware(s.CsrfTokenHandler(), api...))

	// Impersonation
	s.RegisterRouteHandler("POST "+RouteAdminImpersonateStart, ChainMiddleware(s.ImpersonateStartHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAdminImpersonateStatus, ChainMiddleware(s.ImpersonateStatusHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAdminImpersonateStop, ChainMiddleware(s.ImpersonateStopHandler(), api...))

	// Admin reads
	s.RegisterRouteHandler("GET "+RouteAdminAuditLogs, ChainMiddleware(s.AuditLogsHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAdminSubmissions, ChainMiddleware(s.PendingSubmissionsHandler(), api...))

	// Admin mutations, all state-changing and all CSRF guarded
	s.RegisterRouteHandler("DELETE "+RouteAdminUser, ChainMiddleware(s.AdminDeleteUserHandler(), csrfGuarded...))
	s.RegisterRouteHandler("PUT "+RouteAdminUserRole, ChainMiddleware(s.AdminChangeRoleHandler(), csrfGuarded...))
	s.RegisterRouteHandler("POST "+RouteAdminPlants, ChainMiddleware(s.AdminCreatePlantHandler(), csrfGuarded...))
	s.RegisterRouteHandler("PUT "+RouteAdminPlant, ChainMiddleware(s.AdminUpdatePlantHandler(), csrfGuarded...))
	s.RegisterRouteHandler("DELETE "+RouteAdminPlant, ChainMiddleware(s.AdminDeletePlantHandler(), csrfGuarded...))
	s.RegisterRouteHandler("POST "+RouteAdminSubmissionApprove, ChainMiddleware(s.AdminApproveSubmissionHandler(), csrfGuarded...))
	s.RegisterRouteHandler("POST "+RouteAdminSubmissionReject, ChainMiddleware(s.AdminRejectSubmissionHandler(), csrfGuarded...))

	// Encyclopedia
	s.RegisterRouteHandler("GET "+RouteAPIPlants, ChainMiddleware(s.PlantsHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAPIPlant, ChainMiddleware(s.PlantHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAPIPlantSubmissions, ChainMiddleware(s.SubmitPlantHandler(), csrfGuarded...))

	// Garden
	s.RegisterRouteHandler("GET "+RouteAPISeeds, ChainMiddleware(s.SeedsHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAPISeeds, ChainMiddleware(s.AddSeedHandler(), csrfGuarded...))
	s.RegisterRouteHandler("GET "+RouteAPIPlantings, ChainMiddleware(s.PlantingsHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAPIPlantings, ChainMiddleware(s.AddPlantingHandler(), csrfGuarded...))
	s.RegisterRouteHandler("GET "+RouteAPIWishlist, ChainMiddleware(s.WishlistHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAPIWishlist, ChainMiddleware(s.AddWishlistItemHandler(), csrfGuarded...))
	s.RegisterRouteHandler("DELETE "+RouteAPIWishlistItem, ChainMiddleware(s.RemoveWishlistItemHandler(), csrfGuarded...))

	// Pages. The handler serves the application shell; the policy in the
	// middleware decides who may reach which page.
	s.RegisterRouteHandler("GET /", ChainMiddleware(s.PageHandler(), api...))
}
