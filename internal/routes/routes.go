// Package routes configures the HTTP router and middleware.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/geodirhq/geodir/internal/cache"
	"github.com/geodirhq/geodir/internal/handlers"
	"github.com/geodirhq/geodir/internal/middleware"
	"github.com/geodirhq/geodir/internal/repository"
	"github.com/geodirhq/geodir/internal/service"
	"github.com/geodirhq/geodir/pkg/config"
	"github.com/geodirhq/geodir/pkg/database"
	"github.com/geodirhq/geodir/pkg/logger"
)

// Config holds dependencies for route setup.
type Config struct {
	DB        *database.DB
	Config    *config.Config
	Logger    *logger.Logger
	Cache     cache.Cache
	Redis     handlers.RedisPinger
	BuildInfo BuildInfo
}

// BuildInfo contains build information.
type BuildInfo struct {
	Version   string
	GitCommit string
}

// New creates a new chi router with all routes and middleware configured.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(chimiddleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-KEY", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	repo := repository.New(cfg.DB.Pool)

	cacheTTL := cfg.Config.Cache.TTL
	activitySvc := service.NewActivityService(repo, cfg.Cache, cacheTTL)
	orgSvc := service.NewOrganizationService(repo, repo, activitySvc, repo, cfg.Cache, cacheTTL)

	healthHandler := handlers.NewHealthHandler(handlers.HealthHandlerConfig{
		DB:        cfg.DB,
		Redis:     cfg.Redis,
		Version:   cfg.BuildInfo.Version,
		GitCommit: cfg.BuildInfo.GitCommit,
	})
	orgHandler := handlers.NewOrganizationHandler(orgSvc, cfg.Logger)

	// Probes and metrics stay open; everything else needs the API key.
	r.Get("/healthz", healthHandler.Liveness)
	r.Get("/readyz", healthHandler.Readiness)
	r.Get("/version", healthHandler.Version)

	if cfg.Config.Metrics.Enabled {
		r.Get(cfg.Config.Metrics.Path, healthHandler.Metrics)
	}

	r.Route("/organizations", func(r chi.Router) {
		r.Use(middleware.APIKey(middleware.APIKeyConfig{
			Key:    cfg.Config.Auth.APIKey,
			Header: cfg.Config.Auth.HeaderName,
		}, cfg.Logger))
		r.Use(middleware.Metrics)

		r.Get("/", orgHandler.List)
		r.Post("/search/radius", orgHandler.SearchRadius)
		r.Post("/search/rectangle", orgHandler.SearchRectangle)
		r.Get("/building/{building_id}", orgHandler.ListByBuilding)
		r.Get("/activity/{activity_id}", orgHandler.ListByActivity)
		r.Get("/{organization_id}", orgHandler.Get)
	})

	return r
}
