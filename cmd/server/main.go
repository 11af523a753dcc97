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
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/janisto/profile-console/internal/cache"
	"github.com/janisto/profile-console/internal/http/health"
	"github.com/janisto/profile-console/internal/http/v1/routes"
	"github.com/janisto/profile-console/internal/http/web"
	"github.com/janisto/profile-console/internal/platform/config"
	applog "github.com/janisto/profile-console/internal/platform/logging"
	"github.com/janisto/profile-console/internal/platform/metrics"
	appmiddleware "github.com/janisto/profile-console/internal/platform/middleware"
	"github.com/janisto/profile-console/internal/platform/respond"
	"github.com/janisto/profile-console/internal/service/remote"
	"github.com/janisto/profile-console/internal/store"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	serviceName = "profile-console"
	apiPrefix   = "/v1"
)

type server struct {
	store    *store.Store
	flashes  *web.Flashes
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	origins  []string
}

func newRouter(s server) chi.Router {
	router := chi.NewRouter()
	router.NotFound(web.RedirectNotFound)
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(appmiddleware.PageContentSecurityPolicy, apiPrefix+routes.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; run behind a trusted proxy only.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		s.metrics.Middleware(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(serviceName, Version))
	router.Handle("/metrics", metrics.Handler(s.gatherer))
	web.Register(router, web.NewHandler(s.store, s.flashes))

	router.Route(apiPrefix, func(r chi.Router) {
		r.Use(appmiddleware.CORS(s.origins...))
		r.NotFound(respond.NotFoundHandler())
		api := routes.NewAPI(r, "Profile Console API", Version, apiPrefix)
		routes.RegisterConsole(api, s.store)
	})

	return router
}

// newStore wires the state store to the remote API and the cache directory
// and publishes its state to the collector.
func newStore(ctx context.Context, cfg config.Console, collector *metrics.Collector) *store.Store {
	client := remote.NewClient(&http.Client{Timeout: cfg.APITimeout}, remote.WithBaseURL(cfg.APIURL))
	s := store.New(client, cache.NewOS(cfg.CacheDir), store.WithRecorder(collector))
	s.Subscribe(func(st store.State) {
		collector.ObserveState(st.Loading, st.HasProfile())
	})
	s.Init(ctx)
	return s
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
	cfg, err := config.LoadConsole()
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	router := newRouter(server{
		store:    newStore(ctx, cfg, collector),
		flashes:  web.NewCookieFlashes(cfg.FlashSecret, cfg.CookieSecure),
		metrics:  collector,
		gatherer: registry,
		origins:  cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// Operations may wait on the remote API for up to APITimeout.
		WriteTimeout:   cfg.APITimeout + 5*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr), zap.String("profileAPI", cfg.APIURL), zap.String("cacheDir", cfg.CacheDir))
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
