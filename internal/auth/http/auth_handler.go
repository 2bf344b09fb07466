// Package http provides HTTP handlers for account registration and the
// session lifecycle (login, logout).
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/minidrive/internal/auth/http/dto"
	"github.com/allisson/minidrive/internal/capability/service"
	"github.com/allisson/minidrive/internal/httputil"
	"github.com/allisson/minidrive/internal/session"
	userUseCase "github.com/allisson/minidrive/internal/user/usecase"
	customValidation "github.com/allisson/minidrive/internal/validation"
)

// CookieConfig holds the session cookie settings.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	userUseCase    userUseCase.UseCase
	sessionManager *session.Manager
	tokenGenerator service.TokenGenerator
	cookie         CookieConfig
	logger         *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	userUC userUseCase.UseCase,
	sessionManager *session.Manager,
	tokenGenerator service.TokenGenerator,
	cookie CookieConfig,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userUseCase:    userUC,
		sessionManager: sessionManager,
		tokenGenerator: tokenGenerator,
		cookie:         cookie,
		logger:         logger,
	}
}

// RegisterHandler creates a new account.
// POST /v1/auth/register
// Returns 201 Created with the public user representation.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), userUseCase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// LoginHandler verifies credentials and establishes a session.
// POST /v1/auth/login
// Returns 200 OK with the user and sets the session cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	sessionID, err := h.tokenGenerator.Generate()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	payload := &session.Payload{UserID: user.ID, Email: user.Email}
	if err := h.sessionManager.Save(c.Request.Context(), sessionID, payload, 0); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setSessionCookie(c, sessionID, int(h.sessionManager.DefaultTTL().Seconds()))

	h.logger.Info("user logged in", slog.String("user_id", user.ID.String()))
	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// LogoutHandler destroys the current session.
// POST /v1/auth/logout
// Returns 204 No Content. Logging out without a session is also a 204:
// the end state (no session) is the same either way.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sessionID, err := c.Cookie(h.cookie.Name)
	if err == nil && sessionID != "" {
		if err := h.sessionManager.Destroy(c.Request.Context(), sessionID); err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	c.Data(http.StatusNoContent, "application/json", nil)
}

// setSessionCookie writes the session cookie. HttpOnly keeps the token away
// from scripts; SameSite=Lax blocks cross-site POSTs from carrying it.
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
