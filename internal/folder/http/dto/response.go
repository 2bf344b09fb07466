package dto

import (
	"time"

	"github.com/google/uuid"

	folderDomain "github.com/allisson/minidrive/internal/folder/domain"
)

// FolderResponse is the public representation of a folder.
type FolderResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileResponse is the public representation of a file. The blob key is an
// internal storage detail and never appears here.
type FileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// FolderWithFilesResponse bundles a folder with its file listing.
type FolderWithFilesResponse struct {
	Folder FolderResponse `json:"folder"`
	Files  []FileResponse `json:"files"`
}

// ListFoldersResponse is the paginated folder listing.
type ListFoldersResponse struct {
	Folders []FolderResponse `json:"folders"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// MapFolderToResponse converts a folder domain entity to its response form.
func MapFolderToResponse(folder *folderDomain.Folder) FolderResponse {
	return FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

// MapFileToResponse converts a file domain entity to its response form.
func MapFileToResponse(file *folderDomain.File) FileResponse {
	return FileResponse{
		ID:          file.ID,
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
		CreatedAt:   file.CreatedAt,
	}
}

// MapFilesToResponse converts a slice of files; an empty slice serializes as
// [] rather than null.
func MapFilesToResponse(files []*folderDomain.File) []FileResponse {
	responses := make([]FileResponse, 0, len(files))
	for _, file := range files {
		responses = append(responses, MapFileToResponse(file))
	}
	return responses
}

// MapFoldersToListResponse converts a folder page to its response form.
func MapFoldersToListResponse(folders []*folderDomain.Folder, offset, limit int) ListFoldersResponse {
	responses := make([]FolderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, MapFolderToResponse(folder))
	}
	return ListFoldersResponse{
		Folders: responses,
		Offset:  offset,
		Limit:   limit,
	}
}
