package session

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/httputil"
)

// RequireSession provides authentication via the session cookie.
//
// The middleware:
// 1. Extracts the session id from the configured cookie
// 2. Resolves it through the session manager (the store decides expiry)
// 3. Stores the session payload in the request context for handlers (GetUser)
//
// Error handling:
//   - Missing cookie → 401 Unauthorized
//   - Absent/expired/corrupt session → 401 Unauthorized
//   - Store backend down → 503 Service Unavailable (never reported as 401:
//     a failing backend must not look like a logged-out user)
func RequireSession(manager *Manager, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			logger.Debug("authentication failed: missing session cookie")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		payload, err := manager.Load(c.Request.Context(), sessionID)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store session payload in context
		ctx := WithUser(c.Request.Context(), payload)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", payload.UserID.String()))

		c.Next()
	}
}
