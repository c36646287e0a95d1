package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"shoplens/internal/config"
	"shoplens/internal/dataprocessing"
	apierrors "shoplens/internal/errors"
	"shoplens/internal/infrastructure"
	customMiddleware "shoplens/internal/middleware"
	"shoplens/internal/services"
	handlers "shoplens/internal/transport/http"
	"shoplens/pkg/contracts/domain"
)

const (
	Version = "1.0.0"
	AppName = "ShopLens"
)

// BuildTime is set at compile time via ldflags.
var BuildTime = ""

// Application is the dashboard server container.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Dataset       *domain.Dataset
	DataService   *services.DataService
	HealthService *services.HealthService
	Logger        *slog.Logger
}

// NewApplication loads configuration, builds the dataset and wires the
// server. The dataset comes from the clean CSV when one exists; otherwise the
// raw entity files are loaded and joined on the spot.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	dataset, err := loadDataset(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:  cfg,
		Dataset: dataset,
		Logger:  logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// loadDataset prefers the cleaned dataset file and falls back to running the
// full load-and-join pipeline over the raw directory.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*domain.Dataset, error) {
	cleanPath := cfg.CleanDataPath()
	if _, err := os.Stat(cleanPath); err == nil {
		logger.Info("loading clean dataset", slog.String("path", cleanPath))
		dataset, err := dataprocessing.ReadCleanCSV(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read clean dataset: %w", err)
		}
		return dataset, nil
	}

	logger.Info("clean dataset not found, running pipeline",
		slog.String("raw_dir", cfg.Paths.RawDir))

	pipeline := dataprocessing.NewPipeline(logger)
	dataset, _, err := pipeline.Run(ctx, dataprocessing.DefaultSources(cfg.Paths.RawDir))
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}
	return dataset, nil
}

func (a *Application) initializeServices() {
	a.DataService = services.NewDataService(a.Dataset, a.Config.Dashboard, a.Logger)
	a.HealthService = services.NewHealthService(Version, BuildTime, a.Dataset, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.Metrics)
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			ExposedHeaders: []string{"X-Request-ID"},
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)

	r.Handle("/metrics", handlers.MetricsHandler())

	a.setupStaticRoutes(r)

	a.Router = r
}

// setupAPIRoutes configures API endpoints.
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)

		analyticsHandler := handlers.NewAnalyticsHandler(a.DataService, a.Logger, errorHandler)
		r.Mount("/analytics", analyticsHandler.Routes())

		dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
		r.Mount("/data", dataHandler.Routes())
	})
}

// setupStaticRoutes serves the dashboard page and its assets from WebDir.
func (a *Application) setupStaticRoutes(r chi.Router) {
	webDir := a.Config.Paths.WebDir

	r.Route("/static", func(r chi.Router) {
		r.Use(customMiddleware.Compress(5))
		r.Handle("/*", http.StripPrefix("/static",
			http.FileServer(http.Dir(filepath.Join(webDir, "static")))))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(webDir, "index.html"))
	})
}

// createServer creates the HTTP server.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves until the context is cancelled or an interrupt arrives, then
// shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "server listening",
			slog.String("address", fmt.Sprintf("http://%s", a.Config.Addr())),
			slog.Int("records", len(a.Dataset.Records)))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.Logger.Info("application shutdown complete")
	return nil
}
