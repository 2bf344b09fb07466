package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	folderDomain "github.com/allisson/minidrive/internal/folder/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func testFolder() *folderDomain.Folder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &folderDomain.Folder{
		ID:        uuid.Must(uuid.NewV7()),
		OwnerID:   uuid.Must(uuid.NewV7()),
		Name:      "Documents",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testFile(folderID uuid.UUID) *folderDomain.File {
	return &folderDomain.File{
		ID:          uuid.Must(uuid.NewV7()),
		FolderID:    folderID,
		Name:        "report.pdf",
		Size:        2048,
		ContentType: "application/pdf",
		BlobKey:     folderID.String() + "/file-key",
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLFolderRepository_CreateFolder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLFolderRepository(db)
	folder := testFolder()

	mock.ExpectExec("INSERT INTO folders").
		WithArgs(folder.ID, folder.OwnerID, folder.Name).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateFolder(context.Background(), folder)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFolderRepository_GetOwnedFolder(t *testing.T) {
	t.Run("Success_FolderFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		folder := testFolder()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "created_at", "updated_at"}).
			AddRow(folder.ID, folder.OwnerID, folder.Name, folder.CreatedAt, folder.UpdatedAt)

		mock.ExpectQuery("SELECT id, owner_id, name, created_at, updated_at").
			WithArgs(folder.ID, folder.OwnerID).
			WillReturnRows(rows)

		got, err := repo.GetOwnedFolder(context.Background(), folder.ID, folder.OwnerID)
		require.NoError(t, err)
		assert.Equal(t, folder.ID, got.ID)
		assert.Equal(t, folder.Name, got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_OtherOwnersFolderIsNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		folder := testFolder()
		otherOwner := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT id, owner_id, name, created_at, updated_at").
			WithArgs(folder.ID, otherOwner).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetOwnedFolder(context.Background(), folder.ID, otherOwner)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, folderDomain.ErrFolderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLFolderRepository_ListFolders(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLFolderRepository(db)
	folder := testFolder()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "created_at", "updated_at"}).
		AddRow(folder.ID, folder.OwnerID, folder.Name, folder.CreatedAt, folder.UpdatedAt)

	mock.ExpectQuery("SELECT id, owner_id, name, created_at, updated_at").
		WithArgs(folder.OwnerID, 10, 0).
		WillReturnRows(rows)

	got, err := repo.ListFolders(context.Background(), folder.OwnerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, folder.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFolderRepository_DeleteFolder(t *testing.T) {
	t.Run("Success_FolderDeleted", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		folder := testFolder()

		mock.ExpectExec("DELETE FROM folders").
			WithArgs(folder.ID, folder.OwnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteFolder(context.Background(), folder.ID, folder.OwnerID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AbsentFolderIsNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		folder := testFolder()

		mock.ExpectExec("DELETE FROM folders").
			WithArgs(folder.ID, folder.OwnerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteFolder(context.Background(), folder.ID, folder.OwnerID)
		assert.ErrorIs(t, err, folderDomain.ErrFolderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLFolderRepository_CreateFile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLFolderRepository(db)
	file := testFile(uuid.Must(uuid.NewV7()))

	mock.ExpectExec("INSERT INTO files").
		WithArgs(file.ID, file.FolderID, file.Name, file.Size, file.ContentType, file.BlobKey).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateFile(context.Background(), file)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFolderRepository_GetFile(t *testing.T) {
	t.Run("Success_FileFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		file := testFile(uuid.Must(uuid.NewV7()))

		rows := sqlmock.NewRows(
			[]string{"id", "folder_id", "name", "size", "content_type", "blob_key", "created_at"},
		).AddRow(file.ID, file.FolderID, file.Name, file.Size, file.ContentType, file.BlobKey, file.CreatedAt)

		mock.ExpectQuery("SELECT id, folder_id, name, size, content_type, blob_key, created_at").
			WithArgs(file.ID, file.FolderID).
			WillReturnRows(rows)

		got, err := repo.GetFile(context.Background(), file.ID, file.FolderID)
		require.NoError(t, err)
		assert.Equal(t, file.ID, got.ID)
		assert.Equal(t, file.BlobKey, got.BlobKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_FileNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLFolderRepository(db)
		fileID := uuid.Must(uuid.NewV7())
		folderID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT id, folder_id, name, size, content_type, blob_key, created_at").
			WithArgs(fileID, folderID).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetFile(context.Background(), fileID, folderID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, folderDomain.ErrFileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLFolderRepository_ListFiles(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLFolderRepository(db)
	folderID := uuid.Must(uuid.NewV7())
	file := testFile(folderID)

	rows := sqlmock.NewRows(
		[]string{"id", "folder_id", "name", "size", "content_type", "blob_key", "created_at"},
	).AddRow(file.ID, file.FolderID, file.Name, file.Size, file.ContentType, file.BlobKey, file.CreatedAt)

	mock.ExpectQuery("SELECT id, folder_id, name, size, content_type, blob_key, created_at").
		WithArgs(folderID).
		WillReturnRows(rows)

	got, err := repo.ListFiles(context.Background(), folderID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, file.Name, got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFolderRepository_ListBlobKeys(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLFolderRepository(db)
	folderID := uuid.Must(uuid.NewV7())

	rows := sqlmock.NewRows([]string{"blob_key"}).
		AddRow(folderID.String() + "/key-1").
		AddRow(folderID.String() + "/key-2")

	mock.ExpectQuery("SELECT blob_key FROM files").
		WithArgs(folderID).
		WillReturnRows(rows)

	keys, err := repo.ListBlobKeys(context.Background(), folderID)
	require.NoError(t, err)
	assert.Equal(t, []string{folderID.String() + "/key-1", folderID.String() + "/key-2"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
