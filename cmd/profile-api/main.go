package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/profile-console/internal/http/health"
	"github.com/janisto/profile-console/internal/http/v1/routes"
	"github.com/janisto/profile-console/internal/platform/config"
	"github.com/janisto/profile-console/internal/platform/firebase"
	applog "github.com/janisto/profile-console/internal/platform/logging"
	appmiddleware "github.com/janisto/profile-console/internal/platform/middleware"
	"github.com/janisto/profile-console/internal/platform/respond"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	serviceName = "profile-api"
	apiPrefix   = "/v1"
)

func newRouter(svc profilesvc.Service) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(appmiddleware.APIContentSecurityPolicy, apiPrefix+routes.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; run behind a trusted proxy only.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(serviceName, Version))
	router.Route(apiPrefix, func(r chi.Router) {
		api := routes.NewAPI(r, "Profile API", Version, apiPrefix)
		routes.RegisterProfileAPI(api, svc)
	})
	return router
}

// newService picks the Firestore store when a project is configured and the
// in-memory store otherwise. The returned func releases backend resources.
func newService(ctx context.Context, cfg config.RemoteAPI) (profilesvc.Service, func(), error) {
	if !cfg.UseFirestore() {
		applog.LogWarn(ctx, "FIREBASE_PROJECT_ID not set, profiles are kept in memory")
		return profilesvc.NewMemoryStore(), func() {}, nil
	}

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.ProjectID,
		GoogleApplicationCredentials: cfg.Credentials,
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := clients.Close(); err != nil {
			applog.LogError(ctx, "firestore close error", err)
		}
	}
	return profilesvc.NewFirestoreStore(clients.Firestore), closeFn, nil
}

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()
	if err := config.LoadDotEnv(); err != nil {
		applog.LogFatal(ctx, "dotenv load failed", err)
	}
	cfg, err := config.LoadRemoteAPI()
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}

	svc, closeSvc, err := newService(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "firebase init failed", err, zap.String("projectID", cfg.ProjectID))
	}
	defer closeSvc()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(svc),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.Bool("firestore", cfg.UseFirestore()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		closeSvc()
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}
