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

// MySQLFolderRepository implements folder and file persistence for MySQL.
type MySQLFolderRepository struct {
	db *sql.DB
}

// NewMySQLFolderRepository creates a new MySQL folder repository instance.
func NewMySQLFolderRepository(db *sql.DB) *MySQLFolderRepository {
	return &MySQLFolderRepository{db: db}
}

// CreateFolder inserts a new folder.
func (m *MySQLFolderRepository) CreateFolder(ctx context.Context, folder *folderDomain.Folder) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO folders (id, owner_id, name, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	folderID, err := folder.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerID, err := folder.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, folderID, ownerID, folder.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create folder")
	}
	return nil
}

// GetOwnedFolder retrieves a folder by id scoped to its owner. A folder that
// exists but belongs to another user is reported as not found.
func (m *MySQLFolderRepository) GetOwnedFolder(
	ctx context.Context,
	folderID, ownerID uuid.UUID,
) (*folderDomain.Folder, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, name, created_at, updated_at
			  FROM folders
			  WHERE id = ? AND owner_id = ?`

	folderIDBytes, err := folderID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerIDBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var folder folderDomain.Folder
	var idBytes, ownerBytes []byte
	err = querier.QueryRowContext(ctx, query, folderIDBytes, ownerIDBytes).Scan(
		&idBytes, &ownerBytes, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folderDomain.ErrFolderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get folder")
	}

	if err := folder.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := folder.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &folder, nil
}

// ListFolders retrieves a page of folders owned by a user, newest first.
func (m *MySQLFolderRepository) ListFolders(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*folderDomain.Folder, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, name, created_at, updated_at
			  FROM folders
			  WHERE owner_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	ownerIDBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list folders")
	}
	defer rows.Close()

	var folders []*folderDomain.Folder
	for rows.Next() {
		var folder folderDomain.Folder
		var idBytes, ownerBytes []byte
		if err := rows.Scan(
			&idBytes, &ownerBytes, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan folder")
		}
		if err := folder.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := folder.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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
func (m *MySQLFolderRepository) DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM folders WHERE id = ? AND owner_id = ?`

	folderIDBytes, err := folderID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerIDBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, folderIDBytes, ownerIDBytes)
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
func (m *MySQLFolderRepository) CreateFile(ctx context.Context, file *folderDomain.File) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO files (id, folder_id, name, size, content_type, blob_key, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW())`

	fileID, err := file.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	folderID, err := file.FolderID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx, query,
		fileID, folderID, file.Name, file.Size, file.ContentType, file.BlobKey,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create file")
	}
	return nil
}

// GetFile retrieves a file by id within a folder.
func (m *MySQLFolderRepository) GetFile(
	ctx context.Context,
	fileID, folderID uuid.UUID,
) (*folderDomain.File, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, folder_id, name, size, content_type, blob_key, created_at
			  FROM files
			  WHERE id = ? AND folder_id = ?`

	fileIDBytes, err := fileID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	folderIDBytes, err := folderID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var file folderDomain.File
	var idBytes, fdBytes []byte
	err = querier.QueryRowContext(ctx, query, fileIDBytes, folderIDBytes).Scan(
		&idBytes, &fdBytes, &file.Name, &file.Size,
		&file.ContentType, &file.BlobKey, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folderDomain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file")
	}

	if err := file.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := file.FolderID.UnmarshalBinary(fdBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &file, nil
}

// ListFiles retrieves all files within a folder, newest first.
func (m *MySQLFolderRepository) ListFiles(
	ctx context.Context,
	folderID uuid.UUID,
) ([]*folderDomain.File, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, folder_id, name, size, content_type, blob_key, created_at
			  FROM files
			  WHERE folder_id = ?
			  ORDER BY created_at DESC`

	folderIDBytes, err := folderID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, folderIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list files")
	}
	defer rows.Close()

	var files []*folderDomain.File
	for rows.Next() {
		var file folderDomain.File
		var idBytes, fdBytes []byte
		if err := rows.Scan(
			&idBytes, &fdBytes, &file.Name, &file.Size,
			&file.ContentType, &file.BlobKey, &file.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan file")
		}
		if err := file.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := file.FolderID.UnmarshalBinary(fdBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate files")
	}

	return files, nil
}

// ListBlobKeys returns the blob keys of every file within a folder.
func (m *MySQLFolderRepository) ListBlobKeys(
	ctx context.Context,
	folderID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT blob_key FROM files WHERE folder_id = ?`

	folderIDBytes, err := folderID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, folderIDBytes)
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
