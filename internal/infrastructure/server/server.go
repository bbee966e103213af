package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AppCoPro/backend/internal/api/http"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/api/middleware"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/api/ws"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/artifact"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/build"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/history"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/icon"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/preview"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	workspaces *workspace.Manager
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing AppCoPro Server",
		zap.String("port", cfg.Server.Port),
		zap.Bool("icon_key_set", cfg.Icon.APIKey != ""),
		zap.Bool("preview_enabled", cfg.Preview.Enabled),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	tracer := tracing.New("appcopro", logger.Logger)
	logger.Info("Distributed tracing initialized")

	steps, err := loadSteps(cfg.Build)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	logger.Info("Build pipeline loaded",
		zap.Int("steps", len(steps)),
		zap.Float64("delay_scale", cfg.Build.DelayScale),
	)

	store := history.NewStore(cfg.History.Path, cfg.History.Limit, logger.Component("history"))

	workspaces, err := workspace.NewManager(steps, logger.Component("workspace"))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to create workspace manager: %w", err)
	}
	workspaces.WithRecorder(store).WithMetrics(metrics)

	generator := artifact.NewGenerator(cfg.Artifact.SizeBytes, artifact.Filler(cfg.Artifact.Filler))
	icons := icon.New(cfg.Icon, logger, metrics)

	// A nil prober interface disables probing in the handlers
	var prober apihttp.Prober
	if cfg.Preview.Enabled {
		prober = preview.NewProber(cfg.Preview, logger, metrics)
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestLogger(logger.Component("http")))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(workspaces, generator, icons, store, prober, metrics, logger.Component("api"))
	handlers.Register(router)

	wsHandler := ws.NewHandler(workspaces, metrics, logger.Component("ws"))
	router.GET("/workspaces/:id/stream", wsHandler.HandleConnection)

	router.GET("/metrics", monitoring.Handler(metrics))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		workspaces: workspaces,
		tracer:     tracer,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// loadSteps returns the configured step table scaled by the delay factor
func loadSteps(cfg config.BuildConfig) ([]types.BuildStep, error) {
	steps := build.DefaultSteps()
	if cfg.StepsFile != "" {
		loaded, err := build.LoadSteps(cfg.StepsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load build steps: %w", err)
		}
		steps = loaded
	}
	return build.ScaleSteps(steps, cfg.DelayScale), nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. A server stopped by
// Close returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
	}

	// Cancels running builds and closes build streams
	s.workspaces.Close()
	s.logger.Info("Closed workspaces")

	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return shutdownErr
}
