package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/blob"
	"github.com/allisson/minidrive/internal/database"
	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/folder/domain"
	appValidation "github.com/allisson/minidrive/internal/validation"
)

// FolderUseCase handles folder and file business logic
type FolderUseCase struct {
	folderRepo   FolderRepository
	blobStorage  blob.Storage
	txManager    database.TxManager
	maxFileBytes int64
	logger       *slog.Logger
}

// NewFolderUseCase creates a new FolderUseCase
func NewFolderUseCase(
	folderRepo FolderRepository,
	blobStorage blob.Storage,
	txManager database.TxManager,
	maxFileBytes int64,
	logger *slog.Logger,
) UseCase {
	return &FolderUseCase{
		folderRepo:   folderRepo,
		blobStorage:  blobStorage,
		txManager:    txManager,
		maxFileBytes: maxFileBytes,
		logger:       logger,
	}
}

// CreateFolder creates a new folder owned by the user
func (uc *FolderUseCase) CreateFolder(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateFolderInput,
) (*domain.Folder, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	folder := &domain.Folder{
		ID:      uuid.Must(uuid.NewV7()),
		OwnerID: ownerID,
		Name:    strings.TrimSpace(input.Name),
	}

	if err := uc.folderRepo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}

	return folder, nil
}

// ListFolders retrieves a page of folders owned by the user
func (uc *FolderUseCase) ListFolders(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*domain.Folder, error) {
	return uc.folderRepo.ListFolders(ctx, ownerID, limit, offset)
}

// GetFolder retrieves a folder with its file listing
func (uc *FolderUseCase) GetFolder(
	ctx context.Context,
	folderID, ownerID uuid.UUID,
) (*FolderWithFiles, error) {
	folder, err := uc.folderRepo.GetOwnedFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	files, err := uc.folderRepo.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	return &FolderWithFiles{Folder: folder, Files: files}, nil
}

// DeleteFolder removes a folder, its file rows and their blobs.
// Blob deletion failures are logged and skipped: the database rows are the
// source of truth and an orphan blob is harmless.
func (uc *FolderUseCase) DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error {
	// The key listing and the row delete run in one transaction so the listed
	// keys match exactly the rows the cascade removes.
	var blobKeys []string
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		keys, err := uc.folderRepo.ListBlobKeys(ctx, folderID)
		if err != nil {
			return err
		}
		blobKeys = keys

		return uc.folderRepo.DeleteFolder(ctx, folderID, ownerID)
	})
	if err != nil {
		return err
	}

	for _, key := range blobKeys {
		if err := uc.blobStorage.Delete(ctx, key); err != nil {
			uc.logger.Warn("failed to delete blob for removed folder",
				slog.String("blob_key", key),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

// UploadFile stores a file's content in blob storage and records its metadata.
// The folder must be owned by the user.
func (uc *FolderUseCase) UploadFile(
	ctx context.Context,
	folderID, ownerID uuid.UUID,
	input UploadFileInput,
) (*domain.File, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "file name is required")
	}
	if input.Size <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "file is empty")
	}
	if uc.maxFileBytes > 0 && input.Size > uc.maxFileBytes {
		return nil, domain.ErrFileTooLarge
	}

	if _, err := uc.folderRepo.GetOwnedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	file := &domain.File{
		ID:          uuid.Must(uuid.NewV7()),
		FolderID:    folderID,
		Name:        input.Name,
		Size:        input.Size,
		ContentType: input.ContentType,
	}
	file.BlobKey = fmt.Sprintf("%s/%s", folderID, file.ID)

	if err := uc.blobStorage.Put(ctx, file.BlobKey, input.Content, input.Size, input.ContentType); err != nil {
		return nil, err
	}

	if err := uc.folderRepo.CreateFile(ctx, file); err != nil {
		// The metadata row failed; remove the blob so it does not leak.
		if delErr := uc.blobStorage.Delete(ctx, file.BlobKey); delErr != nil {
			uc.logger.Warn("failed to delete orphan blob",
				slog.String("blob_key", file.BlobKey),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	return file, nil
}

// GetFile retrieves file metadata. The enclosing folder must be owned by the user.
func (uc *FolderUseCase) GetFile(
	ctx context.Context,
	fileID, folderID, ownerID uuid.UUID,
) (*domain.File, error) {
	if _, err := uc.folderRepo.GetOwnedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}
	return uc.folderRepo.GetFile(ctx, fileID, folderID)
}

// DownloadFile retrieves file metadata and a reader over its content.
// The caller must close the returned reader.
func (uc *FolderUseCase) DownloadFile(
	ctx context.Context,
	fileID, folderID, ownerID uuid.UUID,
) (*domain.File, io.ReadCloser, error) {
	file, err := uc.GetFile(ctx, fileID, folderID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	content, err := uc.blobStorage.Get(ctx, file.BlobKey)
	if err != nil {
		return nil, nil, err
	}

	return file, content, nil
}
