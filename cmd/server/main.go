package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seedvault/seedvault/audit"
	auditfake "github.com/seedvault/seedvault/audit/repofake"
	"github.com/seedvault/seedvault/auth"
	"github.com/seedvault/seedvault/csrf"
	csrffake "github.com/seedvault/seedvault/csrf/repofake"
	gardenfake "github.com/seedvault/seedvault/garden/repofake"
	"github.com/seedvault/seedvault/impersonation"
	"github.com/seedvault/seedvault/internal/config"
	"github.com/seedvault/seedvault/internal/postgres"
	plantsfake "github.com/seedvault/seedvault/plants/repofake"
	"github.com/seedvault/seedvault/server"
	sessionsfake "github.com/seedvault/seedvault/sessions/repofake"
	usersfake "github.com/seedvault/seedvault/users/repofake"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()

	repos, store, err := buildRepos(ctx, c)
	if err != nil {
		return fmt.Errorf("buildRepos: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	authService := auth.NewService(auth.Repos{
		Users:    repos.Users,
		Sessions: repos.Sessions,
	}, c.GetSessionMaxAge(), c.GetRememberMeMaxAge())

	csrfRepo := csrfRepoFor(store)
	csrfManager := csrf.NewManager(csrfRepo, c.GetCsrfTokenExpiry(), c.GetCsrfSweepProbability())

	auditLog := audit.NewLog(auditRepoFor(store), c.GetAuditDefaultPageSize(), c.GetAuditMaxPageSize())

	codec := impersonation.NewCodec(c.GetCookieSigningSecret())
	impersonationController := impersonation.NewController(repos.Users, auditLog, codec, c.GetImpersonationMaxAge())

	srv, err := server.New(c, repos, authService, csrfManager, auditLog, impersonationController)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	if _, err := srv.InitialiseSystem(ctx); err != nil {
		return fmt.Errorf("server.InitialiseSystem: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildRepos wires either the Postgres store or in-memory repositories when
// no DATABASE_URL is configured.
func buildRepos(ctx context.Context, c config.Config) (server.Repos, *postgres.Store, error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, using in-memory repositories")
		return server.Repos{
			Users:       usersfake.NewFakeUserRepo(),
			Sessions:    sessionsfake.NewFakeSessionRepo(),
			Plants:      plantsfake.NewFakePlantRepo(),
			Submissions: plantsfake.NewFakeSubmissionRepo(),
			Seeds:       gardenfake.NewFakeSeedRepo(),
			Plantings:   gardenfake.NewFakePlantingRepo(),
			Wishlist:    gardenfake.NewFakeWishlistRepo(),
		}, nil, nil
	}

	store, err := postgres.NewStore(ctx, databaseURL)
	if err != nil {
		return server.Repos{}, nil, fmt.Errorf("postgres.NewStore: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return server.Repos{}, nil, fmt.Errorf("store.EnsureSchema: %w", err)
	}

	return server.Repos{
		Users:       postgres.NewUserRepo(store),
		Sessions:    postgres.NewSessionRepo(store),
		Plants:      postgres.NewPlantRepo(store),
		Submissions: postgres.NewSubmissionRepo(store),
		Seeds:       postgres.NewSeedRepo(store),
		Plantings:   postgres.NewPlantingRepo(store),
		Wishlist:    postgres.NewWishlistRepo(store),
	}, store, nil
}

func csrfRepoFor(store *postgres.Store) csrf.TokenRepo {
	if store == nil {
		return csrffake.NewFakeTokenRepo()
	}
	return postgres.NewCsrfTokenRepo(store)
}

func auditRepoFor(store *postgres.Store) audit.Repo {
	if store == nil {
		return auditfake.NewFakeAuditRepo()
	}
	return postgres.NewAuditRepo(store)
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(httpServer *http.Server) error {
	log.Info().Str("addr", httpServer.Addr).Msg("Server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
