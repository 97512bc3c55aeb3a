// Package server exposes the recommendation model and the chat responder over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/mentor-match/internal/career"
	"github.com/spigell/mentor-match/internal/chat"
)

const (
	defaultListen          = ":5000"
	defaultShutdownTimeout = 10 * time.Second
)

// Config contains the HTTP server settings.
type Config struct {
	Listen          string          `mapstructure:"listen"`
	CORSOrigins     []string        `mapstructure:"cors-origins"`
	RateLimit       RateLimitConfig `mapstructure:"rate-limit"`
	TokenFile       string          `mapstructure:"token-file"`
	MissingAsEmpty  bool            `mapstructure:"missing-as-empty"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown-timeout"`
}

// RateLimitConfig limits requests per client IP. A non-positive RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Deps aggregates the collaborators shared by all handlers.
type Deps struct {
	Model     *career.Model
	Responder *chat.Responder
	Logger    *zap.Logger
	// Token enables bearer authentication on the API routes when not empty.
	Token string
}

// Server serves the recommendation API. The model is read-only and shared by
// all requests without locking.
type Server struct {
	cfg       Config
	echo      *echo.Echo
	model     *career.Model
	responder *chat.Responder
	logger    *zap.Logger
}

// New validates the dependencies and wires routes and middleware.
func New(cfg *Config, deps Deps) (*Server, error) {
	if deps.Model == nil {
		return nil, errors.New("model is required")
	}

	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}

	responder := deps.Responder
	if responder == nil {
		responder = chat.Default()
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:       c,
		echo:      echo.New(),
		model:     deps.Model,
		responder: responder,
		logger:    logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.routes(deps.Token)

	return s, nil
}

func (s *Server) routes(token string) {
	e := s.echo

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(accessLog(s.logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", s.handleHealth)

	api := e.Group("/api")
	if s.cfg.RateLimit.RPS > 0 {
		api.Use(rateLimit(NewRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst)))
	}
	if token != "" {
		api.Use(bearerAuth(token))
	}

	api.POST("/profile", s.handleProfile)
	api.POST("/chat", s.handleChat)
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves until ctx is done and then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("address", s.cfg.Listen))
		if err := s.echo.Start(s.cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
