package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/quizbridge/internal/api/http"
	"github.com/GriffinCanCode/quizbridge/internal/api/middleware"
	"github.com/GriffinCanCode/quizbridge/internal/api/ws"
	"github.com/GriffinCanCode/quizbridge/internal/domain/bridge"
	"github.com/GriffinCanCode/quizbridge/internal/domain/quiz"
	"github.com/GriffinCanCode/quizbridge/internal/domain/view"
	"github.com/GriffinCanCode/quizbridge/internal/domain/widget"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/quizbridge/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	widget     *widget.Widget
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)

	mode, err := bridge.ParseMode(cfg.Bridge.Mode)
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing quiz server",
		zap.String("port", cfg.Server.Port),
		zap.String("bridge_mode", string(mode)),
		zap.String("quiz_source", cfg.Quiz.Source),
	)

	metrics := monitoring.NewMetrics()

	q, err := quiz.Load(ctx, cfg.Quiz.Source, quiz.SourceOptions{
		Timeout:   cfg.Quiz.FetchTimeout,
		Retries:   cfg.Quiz.FetchRetries,
		RetryWait: quiz.DefaultSourceOptions().RetryWait,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	metrics.IncQuizzesLoaded()
	logger.Info("Quiz loaded",
		zap.String("title", q.Title),
		zap.Int("questions", q.Len()),
	)

	var (
		transport bridge.Transport
		host      *bridge.HostTransport
	)
	switch mode {
	case bridge.ModeHost:
		host = bridge.NewHostTransport()
		transport = host
	default:
		transport = bridge.NewLocalTransport(logger.Component("bridge"))
	}

	w := widget.New(q, transport, view.NewScreen(), logger.Component("widget")).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	cors := middleware.DefaultCORSConfig()
	if len(cfg.Bridge.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.Bridge.AllowedOrigins
	}
	router.Use(middleware.CORS(cors))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	var status apihttp.HostStatus
	if host != nil {
		status = host
		wsHandler := ws.NewHandler(w, host, cfg.Bridge.AllowedOrigins, logger.Component("bridge")).WithMetrics(metrics)
		router.GET("/bridge", wsHandler.HandleConnection)
	}
	handlers := apihttp.NewHandlers(w, mode, status, logger.Component("http"))
	handlers.Register(router)
	handlers.RegisterFallback(router)

	logger.Info("Server initialized successfully")

	return &Server{
		router:     router,
		httpServer: &http.Server{Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port), Handler: router},
		widget:     w,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Widget returns the quiz widget served by this server
func (s *Server) Widget() *widget.Widget {
	return s.widget
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return nil
}
