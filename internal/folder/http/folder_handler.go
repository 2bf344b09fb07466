// Package http provides HTTP handlers for folder and file operations.
// All routes here require an authenticated session.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/folder/http/dto"
	folderUseCase "github.com/allisson/minidrive/internal/folder/usecase"
	"github.com/allisson/minidrive/internal/httputil"
	"github.com/allisson/minidrive/internal/session"
	customValidation "github.com/allisson/minidrive/internal/validation"
)

// FolderHandler handles HTTP requests for folder and file operations.
type FolderHandler struct {
	folderUseCase folderUseCase.UseCase
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler with required dependencies.
func NewFolderHandler(folderUC folderUseCase.UseCase, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderUseCase: folderUC,
		logger:        logger,
	}
}

// CreateHandler creates a new folder for the authenticated user.
// POST /v1/folders
// Returns 201 Created with the folder.
func (h *FolderHandler) CreateHandler(c *gin.Context) {
	user, ok := session.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	folder, err := h.folderUseCase.CreateFolder(c.Request.Context(), user.UserID, folderUseCase.CreateFolderInput{
		Name: req.Name,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapFolderToResponse(folder))
}

// ListHandler retrieves the authenticated user's folders with pagination.
// GET /v1/folders?offset=0&limit=50
// Returns 200 OK with the folder page.
func (h *FolderHandler) ListHandler(c *gin.Context) {
	user, ok := session.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	folders, err := h.folderUseCase.ListFolders(c.Request.Context(), user.UserID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFoldersToListResponse(folders, offset, limit))
}

// GetHandler retrieves a folder with its file listing.
// GET /v1/folders/:id
// Returns 200 OK, or 404 for folders that do not exist or belong to someone else.
func (h *FolderHandler) GetHandler(c *gin.Context) {
	user, folderID, ok := h.folderRequest(c)
	if !ok {
		return
	}

	result, err := h.folderUseCase.GetFolder(c.Request.Context(), folderID, user.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FolderWithFilesResponse{
		Folder: dto.MapFolderToResponse(result.Folder),
		Files:  dto.MapFilesToResponse(result.Files),
	})
}

// DeleteHandler removes a folder, its files and their blobs.
// DELETE /v1/folders/:id
// Returns 204 No Content.
func (h *FolderHandler) DeleteHandler(c *gin.Context) {
	user, folderID, ok := h.folderRequest(c)
	if !ok {
		return
	}

	if err := h.folderUseCase.DeleteFolder(c.Request.Context(), folderID, user.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// UploadFileHandler stores an uploaded file in a folder.
// POST /v1/folders/:id/files - multipart form with a "file" part.
// Returns 201 Created with the file metadata.
func (h *FolderHandler) UploadFileHandler(c *gin.Context) {
	user, folderID, ok := h.folderRequest(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("missing file upload: %w", err), h.logger)
		return
	}

	content, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("failed to open upload: %w", err), h.logger)
		return
	}
	defer content.Close()

	file, err := h.folderUseCase.UploadFile(c.Request.Context(), folderID, user.UserID, folderUseCase.UploadFileInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapFileToResponse(file))
}

// GetFileHandler retrieves file metadata.
// GET /v1/folders/:id/files/:fileId
// Returns 200 OK with the file metadata.
func (h *FolderHandler) GetFileHandler(c *gin.Context) {
	user, folderID, ok := h.folderRequest(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid file id"), h.logger)
		return
	}

	file, err := h.folderUseCase.GetFile(c.Request.Context(), fileID, folderID, user.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFileToResponse(file))
}

// DownloadFileHandler streams a file's content.
// GET /v1/folders/:id/files/:fileId/download
// Returns 200 OK with the blob as an attachment.
func (h *FolderHandler) DownloadFileHandler(c *gin.Context) {
	user, folderID, ok := h.folderRequest(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid file id"), h.logger)
		return
	}

	file, content, err := h.folderUseCase.DownloadFile(c.Request.Context(), fileID, folderID, user.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer content.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.DataFromReader(http.StatusOK, file.Size, contentType, content, nil)
}

// folderRequest extracts the authenticated user and the folder id parameter.
// On failure it writes the error response and returns ok=false.
func (h *FolderHandler) folderRequest(c *gin.Context) (*session.Payload, uuid.UUID, bool) {
	user, ok := session.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, uuid.Nil, false
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid folder id"), h.logger)
		return nil, uuid.Nil, false
	}

	return user, folderID, true
}
