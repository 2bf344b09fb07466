package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/minidrive/internal/auth/http"
	"github.com/allisson/minidrive/internal/config"
	folderHTTP "github.com/allisson/minidrive/internal/folder/http"
	"github.com/allisson/minidrive/internal/session"
	shareHTTP "github.com/allisson/minidrive/internal/share/http"
)

// Server represents the main HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	cfg    *config.Config
	db     *sql.DB
	logger *slog.Logger

	authHandler    *authHTTP.AuthHandler
	folderHandler  *folderHTTP.FolderHandler
	shareHandler   *shareHTTP.ShareHandler
	sessionManager *session.Manager
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	authHandler *authHTTP.AuthHandler,
	folderHandler *folderHTTP.FolderHandler,
	shareHandler *shareHTTP.ShareHandler,
	sessionManager *session.Manager,
	logger *slog.Logger,
) *Server {
	return &Server{
		cfg:            cfg,
		db:             db,
		authHandler:    authHandler,
		folderHandler:  folderHandler,
		shareHandler:   shareHandler,
		sessionManager: sessionManager,
		logger:         logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with middleware and all routes.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Uploads arrive as multipart bodies; cap memory buffering, the rest spills to disk.
	router.MaxMultipartMemory = 8 << 20

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Authentication routes, no session required.
	auth := v1.Group("/auth")
	{
		auth.POST("/register", s.authHandler.RegisterHandler)

		loginHandlers := []gin.HandlerFunc{}
		if s.cfg.RateLimitLoginEnabled {
			loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
				s.cfg.RateLimitLoginRequestsPerSec,
				s.cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		loginHandlers = append(loginHandlers, s.authHandler.LoginHandler)
		auth.POST("/login", loginHandlers...)

		auth.POST("/logout", s.authHandler.LogoutHandler)
	}

	// Share resolution is public: the token in the path is the credential.
	v1.GET("/share/:token", s.shareHandler.ResolveHandler)

	// Everything below requires an authenticated session.
	authorized := v1.Group("")
	authorized.Use(session.RequireSession(s.sessionManager, s.cfg.SessionCookieName, s.logger))
	{
		authorized.POST("/folders", s.folderHandler.CreateHandler)
		authorized.GET("/folders", s.folderHandler.ListHandler)
		authorized.GET("/folders/:id", s.folderHandler.GetHandler)
		authorized.DELETE("/folders/:id", s.folderHandler.DeleteHandler)

		authorized.POST("/folders/:id/files", s.folderHandler.UploadFileHandler)
		authorized.GET("/folders/:id/files/:fileId", s.folderHandler.GetFileHandler)
		authorized.GET("/folders/:id/files/:fileId/download", s.folderHandler.DownloadFileHandler)

		authorized.POST("/folders/:id/share", s.shareHandler.IssueHandler)
		authorized.DELETE("/share/:token", s.shareHandler.RevokeHandler)
	}

	s.router = router
	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.SetupRouter()
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each backing component.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(ctx); err != nil {
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
