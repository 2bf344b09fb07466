// Package usecase implements share link issuance, resolution and revocation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	folderDomain "github.com/allisson/minidrive/internal/folder/domain"
)

// IssuedShare is the result of issuing a share link
type IssuedShare struct {
	Token     string
	ExpiresAt time.Time
}

// ResolvedShare is the public, read-only projection returned to a share
// link bearer. Owner-only fields never appear here.
type ResolvedShare struct {
	FolderID   uuid.UUID
	FolderName string
	Files      []*folderDomain.File
}

// UseCase defines the interface for share business logic operations
type UseCase interface {
	Issue(ctx context.Context, folderID, ownerID uuid.UUID, duration string) (*IssuedShare, error)
	Resolve(ctx context.Context, token string) (*ResolvedShare, error)
	Revoke(ctx context.Context, token string, ownerID uuid.UUID) error
}

// FolderReader is the slice of the folder repository the share service needs.
// It owns no expiry logic; expiry is decided entirely by the capability store.
type FolderReader interface {
	GetOwnedFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*folderDomain.Folder, error)
	ListFiles(ctx context.Context, folderID uuid.UUID) ([]*folderDomain.File, error)
}
