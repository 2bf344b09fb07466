package app

import (
	"fmt"
	"sync"

	authHTTP "github.com/allisson/minidrive/internal/auth/http"
	folderHTTP "github.com/allisson/minidrive/internal/folder/http"
	"github.com/allisson/minidrive/internal/http"
	shareHTTP "github.com/allisson/minidrive/internal/share/http"
)

// serverComponents groups the HTTP servers and their handlers.
type serverComponents struct {
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	httpServerInit    sync.Once
	metricsServerInit sync.Once
}

// HTTPServer returns the HTTP server instance with all routes registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.servers.httpServerInit.Do(func() {
		c.servers.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.servers.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// Returns nil if metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.servers.metricsServerInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			c.initErrors["metricsServer"] = providerErr
			return
		}
		if provider == nil {
			return
		}
		c.servers.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.servers.metricsServer, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	folderUseCase, err := c.FolderUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder use case for http server: %w", err)
	}

	shareUseCase, err := c.ShareUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get share use case for http server: %w", err)
	}

	sessionManager, err := c.SessionManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get session manager for http server: %w", err)
	}

	authHandler := authHTTP.NewAuthHandler(
		userUseCase,
		sessionManager,
		c.TokenService(),
		authHTTP.CookieConfig{
			Name:   c.config.SessionCookieName,
			Secure: c.config.SessionCookieSecure,
		},
		logger,
	)

	folderHandler := folderHTTP.NewFolderHandler(folderUseCase, logger)
	shareHandler := shareHTTP.NewShareHandler(shareUseCase, c.config.PublicBaseURL, logger)

	server := http.NewServer(
		c.config,
		db,
		authHandler,
		folderHandler,
		shareHandler,
		sessionManager,
		logger,
	)
	server.SetupRouter()

	return server, nil
}
