// Package api provides the HTTP REST surface of the user directory service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adnanprojects/userdir/pkg/auth"
	"github.com/adnanprojects/userdir/pkg/config"
	"github.com/adnanprojects/userdir/pkg/directory"
	"github.com/adnanprojects/userdir/pkg/logger"
	"github.com/adnanprojects/userdir/pkg/session"
)

// Server represents the API server instance
type Server struct {
	store     *directory.Store
	evaluator *directory.Evaluator
	sessions  *session.Manager
	gate      *auth.Gate
	codec     *session.CookieCodec
	config    *config.Config
	logger    logger.Logger
	router    *gin.Engine
	server    *http.Server
	startTime time.Time
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, log logger.Logger, store *directory.Store, sessions *session.Manager) *Server {
	if cfg.LogLevel == "error" || cfg.LogLevel == "warn" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		store:     store,
		evaluator: directory.NewEvaluator(cfg.FilterMinLen, cfg.FilterMaxLen),
		sessions:  sessions,
		gate:      auth.NewGate(store),
		codec:     session.NewCookieCodec(cfg.CookieKey),
		config:    cfg,
		logger:    log,
		router:    gin.New(),
		startTime: time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	s.router.Use(cors.New(corsConfig))

	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.sessionMiddleware())
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.home)
	s.router.GET("/health", s.healthCheck)

	users := s.router.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.GET("/:id", s.getUser)
		users.PUT("/:id", s.replaceUser)
		users.PATCH("/:id", s.mergeUser)
		users.DELETE("/:id", s.deleteUser)
	}

	s.router.POST("/auth", s.login)
	s.router.GET("/auth/status", s.authStatus)
	s.router.POST("/auth/logout", s.logout)

	s.router.POST("/cart", s.addCartItem)
	s.router.GET("/cart", s.listCartItems)
}

// Start starts the API server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", map[string]interface{}{
		"addr": s.config.ListenAddr,
		"mode": gin.Mode(),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Stop gracefully stops the API server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
