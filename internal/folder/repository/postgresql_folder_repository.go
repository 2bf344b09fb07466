// Package repository implements data persistence for folders and files.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/database"
	apperrors "github.com/allisson/minidrive/internal/errors"
	folderDomain "github.com/allisson/minidrive/internal/folder/domain"
)

// PostgreSQLFolderRepository implements folder and file persistence for PostgreSQL.
type PostgreSQLFolderRepository struct {
	db *sql.DB
}

// NewPostgreSQLFolderRepository creates a new PostgreSQL folder repository instance.
func NewPostgreSQLFolderRepository(db *sql.DB) *PostgreSQLFolderRepository {
	return &PostgreSQLFolderRepository{db: db}
}

// CreateFolder inserts a new folder.
func (p *PostgreSQLFolderRepository) CreateFolder(ctx context.Context, folder *folderDomain.Folder) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO folders (id, owner_id, name, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, folder.ID, folder.OwnerID, folder.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create folder")
	}
	return nil
}

// GetOwnedFolder retrieves a folder by id scoped to its owner. A folder that
// exists but belongs to another user is reported as not found.
func (p *PostgreSQLFolderRepository) GetOwnedFolder(
	ctx context.Context,
	folderID, ownerID uuid.UUID,
) (*folderDomain.Folder, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, created_at, updated_at
			  FROM folders
			  WHERE id = $1 AND owner_id = $2`

	var folder folderDomain.Folder
	err := querier.QueryRowContext(ctx, query, folderID, ownerID).Scan(
		&folder.ID, &folder.OwnerID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folderDomain.ErrFolderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get folder")
	}

	return &folder, nil
}

// ListFolders retrieves a page of folders owned by a user, newest first.
func (p *PostgreSQLFolderRepository) ListFolders(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*folderDomain.Folder, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, created_at, updated_at
			  FROM folders
			  WHERE owner_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list folders")
	}
	defer rows.Close()

	var folders []*folderDomain.Folder
	for rows.Next() {
		var folder folderDomain.Folder
		if err := rows.Scan(
			&folder.ID, &folder.OwnerID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan folder")
		}
		folders = append(folders, &folder)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate folders")
	}

	return folders, nil
}

// DeleteFolder removes a folder owned by a user. Files rows are removed by
// the ON DELETE CASCADE constraint; blob cleanup is the caller's concern.
func (p *PostgreSQLFolderRepository) DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM folders WHERE id = $1 AND owner_id = $2`

	result, err := querier.ExecContext(ctx, query, folderID, ownerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete folder")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return folderDomain.ErrFolderNotFound
	}

	return nil
}

// CreateFile inserts a new file row.
func (p *PostgreSQLFolderRepository) CreateFile(ctx context.Context, file *folderDomain.File) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO files (id, folder_id, name, size, content_type, blob_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		file.ID, file.FolderID, file.Name, file.Size, file.ContentType, file.BlobKey,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create file")
	}
	return nil
}

// GetFile retrieves a file by id within a folder.
func (p *PostgreSQLFolderRepository) GetFile(
	ctx context.Context,
	fileID, folderID uuid.UUID,
) (*folderDomain.File, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, folder_id, name, size, content_type, blob_key, created_at
			  FROM files
			  WHERE id = $1 AND folder_id = $2`

	var file folderDomain.File
	err := querier.QueryRowContext(ctx, query, fileID, folderID).Scan(
		&file.ID, &file.FolderID, &file.Name, &file.Size,
		&file.ContentType, &file.BlobKey, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folderDomain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file")
	}

	return &file, nil
}

// ListFiles retrieves all files within a folder, newest first.
func (p *PostgreSQLFolderRepository) ListFiles(
	ctx context.Context,
	folderID uuid.UUID,
) ([]*folderDomain.File, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, folder_id, name, size, content_type, blob_key, created_at
			  FROM files
			  WHERE folder_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list files")
	}
	defer rows.Close()

	var files []*folderDomain.File
	for rows.Next() {
		var file folderDomain.File
		if err := rows.Scan(
			&file.ID, &file.FolderID, &file.Name, &file.Size,
			&file.ContentType, &file.BlobKey, &file.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan file")
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate files")
	}

	return files, nil
}

// ListBlobKeys returns the blob keys of every file within a folder.
func (p *PostgreSQLFolderRepository) ListBlobKeys(
	ctx context.Context,
	folderID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT blob_key FROM files WHERE folder_id = $1`

	rows, err := querier.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list blob keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan blob key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate blob keys")
	}

	return keys, nil
}
