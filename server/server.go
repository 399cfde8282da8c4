package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/seedvault/seedvault/audit"
	"github.com/seedvault/seedvault/auth"
	"github.com/seedvault/seedvault/csrf"
	"github.com/seedvault/seedvault/garden"
	"github.com/seedvault/seedvault/impersonation"
	"github.com/seedvault/seedvault/internal/config"
	"github.com/seedvault/seedvault/plants"
	"github.com/seedvault/seedvault/sessions"
	"github.com/seedvault/seedvault/users"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users       users.Repo
	Sessions    sessions.Repo
	Plants      plants.Repo
	Submissions plants.SubmissionRepo
	Seeds       garden.SeedRepo
	Plantings   garden.PlantingRepo
	Wishlist    garden.WishlistRepo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repos  Repos

	auth          *auth.Service
	csrf          *csrf.Manager
	auditLog      *audit.Log
	impersonation *impersonation.Controller

	nowTime func() time.Time
}

// Option configures optional Server behaviour.
type Option func(*Server)

// WithNowTime overrides the clock, used by tests for deterministic
// timestamps.
func WithNowTime(nowTime func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowTime
	}
}

func New(cfg config.Config, repos Repos, authService *auth.Service, csrfManager *csrf.Manager, auditLog *audit.Log, impersonationController *impersonation.Controller, options ...Option) (*Server, error) {
	s := &Server{
		mux:           http.NewServeMux(),
		config:        cfg,
		repos:         repos,
		auth:          authService,
		csrf:          csrfManager,
		auditLog:      auditLog,
		impersonation: impersonationController,
		nowTime:       time.Now,
	}
	s.env = cfg.GetEnv()

	for _, option := range options {
		option(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
