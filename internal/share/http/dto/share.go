// Package dto provides data transfer objects for share link handling.
package dto

import (
	"time"

	folderDTO "github.com/allisson/minidrive/internal/folder/http/dto"
	shareUseCase "github.com/allisson/minidrive/internal/share/usecase"
)

// IssueShareRequest contains the parameters for issuing a share link.
// Duration is free-form ("1d", "12h"); anything unparsable falls back to
// the server default, so no validation rule rejects it.
type IssueShareRequest struct {
	Duration string `json:"duration"`
}

// IssueShareResponse is returned when a share link is issued.
type IssueShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResolveShareResponse is the read-only projection a share link bearer sees.
type ResolveShareResponse struct {
	Folder ShareFolderResponse      `json:"folder"`
	Files  []folderDTO.FileResponse `json:"files"`
}

// ShareFolderResponse carries only the folder fields safe to show a bearer.
// Owner identity is deliberately excluded.
type ShareFolderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MapResolvedShareToResponse converts a resolved share to its response form.
func MapResolvedShareToResponse(resolved *shareUseCase.ResolvedShare) ResolveShareResponse {
	return ResolveShareResponse{
		Folder: ShareFolderResponse{
			ID:   resolved.FolderID.String(),
			Name: resolved.FolderName,
		},
		Files: folderDTO.MapFilesToResponse(resolved.Files),
	}
}
