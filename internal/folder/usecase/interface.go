// Package usecase implements the folder and file business logic.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/folder/domain"
)

// CreateFolderInput contains the input data for folder creation
type CreateFolderInput struct {
	Name string `json:"name"`
}

// UploadFileInput contains the input data for a file upload
type UploadFileInput struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FolderWithFiles bundles a folder with its file listing
type FolderWithFiles struct {
	Folder *domain.Folder
	Files  []*domain.File
}

// UseCase defines the interface for folder business logic operations
type UseCase interface {
	CreateFolder(ctx context.Context, ownerID uuid.UUID, input CreateFolderInput) (*domain.Folder, error)
	ListFolders(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Folder, error)
	GetFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*FolderWithFiles, error)
	DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error
	UploadFile(ctx context.Context, folderID, ownerID uuid.UUID, input UploadFileInput) (*domain.File, error)
	GetFile(ctx context.Context, fileID, folderID, ownerID uuid.UUID) (*domain.File, error)
	DownloadFile(ctx context.Context, fileID, folderID, ownerID uuid.UUID) (*domain.File, io.ReadCloser, error)
}

// FolderRepository interface defines folder and file repository operations
type FolderRepository interface {
	CreateFolder(ctx context.Context, folder *domain.Folder) error
	GetOwnedFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*domain.Folder, error)
	ListFolders(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Folder, error)
	DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error
	CreateFile(ctx context.Context, file *domain.File) error
	GetFile(ctx context.Context, fileID, folderID uuid.UUID) (*domain.File, error)
	ListFiles(ctx context.Context, folderID uuid.UUID) ([]*domain.File, error)
	ListBlobKeys(ctx context.Context, folderID uuid.UUID) ([]string, error)
}
