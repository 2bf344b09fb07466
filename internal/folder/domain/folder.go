// Package domain defines the core folder and file domain entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/errors"
)

// Folder represents a named collection of files owned by a user
type Folder struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// File represents an uploaded file stored in a folder.
// The blob content lives in object storage under BlobKey.
type File struct {
	ID          uuid.UUID
	FolderID    uuid.UUID
	Name        string
	Size        int64
	ContentType string
	BlobKey     string
	CreatedAt   time.Time
}

// Domain-specific errors for folder and file operations.
var (
	// ErrFolderNotFound indicates the folder does not exist or is not owned
	// by the requesting user. The two cases are deliberately merged so folder
	// ids cannot be probed across accounts.
	ErrFolderNotFound = errors.Wrap(errors.ErrNotFound, "folder not found")

	// ErrFileNotFound indicates the file does not exist within the folder.
	ErrFileNotFound = errors.Wrap(errors.ErrNotFound, "file not found")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.Wrap(errors.ErrInvalidInput, "file exceeds maximum size")
)
