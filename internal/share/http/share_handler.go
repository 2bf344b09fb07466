// Package http provides HTTP handlers for share link issuance, resolution
// and revocation. Resolution is the only unauthenticated route in the API:
// the token itself is the credential.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/httputil"
	"github.com/allisson/minidrive/internal/session"
	"github.com/allisson/minidrive/internal/share/http/dto"
	shareUseCase "github.com/allisson/minidrive/internal/share/usecase"
)

// ShareHandler handles HTTP requests for share link operations.
type ShareHandler struct {
	shareUseCase  shareUseCase.UseCase
	publicBaseURL string
	logger        *slog.Logger
}

// NewShareHandler creates a new share handler with required dependencies.
// publicBaseURL is the externally reachable prefix used to build share URLs.
func NewShareHandler(shareUC shareUseCase.UseCase, publicBaseURL string, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareUseCase:  shareUC,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// IssueHandler creates a share link for a folder the caller owns.
// POST /v1/folders/:id/share - body: {"duration": "1d"}
// Returns 201 Created with the token, shareable URL and absolute expiry.
func (h *ShareHandler) IssueHandler(c *gin.Context) {
	user, ok := session.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid folder id"), h.logger)
		return
	}

	var req dto.IssueShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	issued, err := h.shareUseCase.Issue(c.Request.Context(), folderID, user.UserID, req.Duration)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueShareResponse{
		Token:     issued.Token,
		URL:       fmt.Sprintf("%s/v1/share/%s", h.publicBaseURL, issued.Token),
		ExpiresAt: issued.ExpiresAt,
	})
}

// ResolveHandler returns the folder behind a share token. No authentication.
// GET /v1/share/:token
// Returns 200 OK with the read-only projection, or 404 for tokens that are
// absent, expired or revoked - the three are indistinguishable.
func (h *ShareHandler) ResolveHandler(c *gin.Context) {
	token := c.Param("token")

	resolved, err := h.shareUseCase.Resolve(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResolvedShareToResponse(resolved))
}

// RevokeHandler terminates a share link early. Owner-only.
// DELETE /v1/share/:token
// Returns 204 No Content.
func (h *ShareHandler) RevokeHandler(c *gin.Context) {
	user, ok := session.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	token := c.Param("token")

	if err := h.shareUseCase.Revoke(c.Request.Context(), token, user.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
