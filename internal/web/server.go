// Package web provides the HTTP API for devtrack.
package web

import (
	"log/slog"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pmateos/devtrack/internal/config"
	"github.com/pmateos/devtrack/internal/platform"
	"github.com/pmateos/devtrack/internal/task"
	"github.com/pmateos/devtrack/internal/user"
)

// Store bundles the persistence interfaces the handlers need.
type Store interface {
	task.Repository
	user.Repository
	platform.RecordStore
}

// Server is the devtrack HTTP API.
type Server struct {
	echo   *echo.Echo
	store  Store
	syncer *platform.Syncer
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer wires the routes and middleware for the API.
func NewServer(store Store, syncer *platform.Syncer, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		store:  store,
		syncer: syncer,
		cfg:    cfg,
		logger: logger,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	s.routes()
	return s
}

// routes registers all available routes.
func (s *Server) routes() {
	// Public routes
	s.echo.POST("/auth/register", s.handleRegister)
	s.echo.POST("/auth/login", s.handleLogin)

	// Everything else requires a session token
	protected := s.echo.Group("")
	protected.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.cfg.Auth.JWTSecret),
	}))

	tasks := protected.Group("/tasks")
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)
	tasks.POST("/:id/toggle", s.handleToggleTask)
	tasks.GET("/platforms", s.handleListPlatforms)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("", s.handleDashboard)
	dashboard.GET("/chart-data", s.handleChartData)

	api := protected.Group("/api")
	api.POST("/sync/:platform", s.handleSync)
	api.GET("/platform-stats", s.handlePlatformStats)
}

// Start begins serving on the configured address and blocks.
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.Server.Addr)
}
