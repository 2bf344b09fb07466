package usecase

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/folder/domain"
)

// mockFolderRepository is a mock implementation of FolderRepository
type mockFolderRepository struct {
	mock.Mock
}

func (m *mockFolderRepository) CreateFolder(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *mockFolderRepository) GetOwnedFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*domain.Folder, error) {
	args := m.Called(ctx, folderID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *mockFolderRepository) ListFolders(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Folder, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Folder), args.Error(1)
}

func (m *mockFolderRepository) DeleteFolder(ctx context.Context, folderID, ownerID uuid.UUID) error {
	args := m.Called(ctx, folderID, ownerID)
	return args.Error(0)
}

func (m *mockFolderRepository) CreateFile(ctx context.Context, file *domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *mockFolderRepository) GetFile(ctx context.Context, fileID, folderID uuid.UUID) (*domain.File, error) {
	args := m.Called(ctx, fileID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *mockFolderRepository) ListFiles(ctx context.Context, folderID uuid.UUID) ([]*domain.File, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.File), args.Error(1)
}

func (m *mockFolderRepository) ListBlobKeys(ctx context.Context, folderID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// mockBlobStorage is a mock implementation of blob.Storage
type mockBlobStorage struct {
	mock.Mock
}

func (m *mockBlobStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *mockBlobStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockBlobStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupUseCase() (*mockFolderRepository, *mockBlobStorage, UseCase) {
	repo := new(mockFolderRepository)
	storage := new(mockBlobStorage)
	uc := NewFolderUseCase(repo, storage, passthroughTxManager{}, 1024, testLogger())
	return repo, storage, uc
}

func TestFolderUseCase_CreateFolder(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("Success_CreateFolder", func(t *testing.T) {
		repo, _, uc := setupUseCase()
		repo.On("CreateFolder", ctx, mock.AnythingOfType("*domain.Folder")).Return(nil)

		folder, err := uc.CreateFolder(ctx, ownerID, CreateFolderInput{Name: "  Documents  "})
		require.NoError(t, err)
		assert.Equal(t, "Documents", folder.Name)
		assert.Equal(t, ownerID, folder.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		repo, _, uc := setupUseCase()

		folder, err := uc.CreateFolder(ctx, ownerID, CreateFolderInput{Name: "   "})
		assert.Nil(t, folder)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateFolder")
	})
}

func TestFolderUseCase_GetFolder(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())
	folderID := uuid.Must(uuid.NewV7())

	t.Run("Success_FolderWithFiles", func(t *testing.T) {
		repo, _, uc := setupUseCase()
		folder := &domain.Folder{ID: folderID, OwnerID: ownerID, Name: "Documents"}
		files := []*domain.File{{ID: uuid.Must(uuid.NewV7()), FolderID: folderID, Name: "a.txt"}}

		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(folder, nil)
		repo.On("ListFiles", ctx, folderID).Return(files, nil)

		result, err := uc.GetFolder(ctx, folderID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, folder, result.Folder)
		assert.Len(t, result.Files, 1)
	})

	t.Run("Error_OtherUsersFolderIsNotFound", func(t *testing.T) {
		repo, _, uc := setupUseCase()
		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(nil, domain.ErrFolderNotFound)

		result, err := uc.GetFolder(ctx, folderID, ownerID)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFolderUseCase_DeleteFolder(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())
	folderID := uuid.Must(uuid.NewV7())

	t.Run("Success_DeletesBlobs", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("ListBlobKeys", ctx, folderID).Return([]string{"k1", "k2"}, nil)
		repo.On("DeleteFolder", ctx, folderID, ownerID).Return(nil)
		storage.On("Delete", ctx, "k1").Return(nil)
		storage.On("Delete", ctx, "k2").Return(nil)

		require.NoError(t, uc.DeleteFolder(ctx, folderID, ownerID))
		storage.AssertExpectations(t)
	})

	t.Run("Success_BlobDeleteFailureIsNotFatal", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("ListBlobKeys", ctx, folderID).Return([]string{"k1"}, nil)
		repo.On("DeleteFolder", ctx, folderID, ownerID).Return(nil)
		storage.On("Delete", ctx, "k1").Return(apperrors.New("connection refused"))

		require.NoError(t, uc.DeleteFolder(ctx, folderID, ownerID))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("ListBlobKeys", ctx, folderID).Return([]string{}, nil)
		repo.On("DeleteFolder", ctx, folderID, ownerID).Return(domain.ErrFolderNotFound)

		err := uc.DeleteFolder(ctx, folderID, ownerID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		storage.AssertNotCalled(t, "Delete")
	})
}

func TestFolderUseCase_UploadFile(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())
	folderID := uuid.Must(uuid.NewV7())
	folder := &domain.Folder{ID: folderID, OwnerID: ownerID, Name: "Documents"}

	t.Run("Success_UploadFile", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(folder, nil)
		storage.On("Put", ctx, mock.AnythingOfType("string"), mock.Anything, int64(5), "text/plain").Return(nil)
		repo.On("CreateFile", ctx, mock.AnythingOfType("*domain.File")).Return(nil)

		file, err := uc.UploadFile(ctx, folderID, ownerID, UploadFileInput{
			Name:        "a.txt",
			ContentType: "text/plain",
			Size:        5,
			Content:     bytes.NewReader([]byte("hello")),
		})
		require.NoError(t, err)
		assert.Equal(t, "a.txt", file.Name)
		assert.Contains(t, file.BlobKey, folderID.String())
		repo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("Error_FileTooLarge", func(t *testing.T) {
		repo, storage, uc := setupUseCase()

		file, err := uc.UploadFile(ctx, folderID, ownerID, UploadFileInput{
			Name:    "big.bin",
			Size:    4096,
			Content: bytes.NewReader(make([]byte, 4096)),
		})
		assert.Nil(t, file)
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
		repo.AssertNotCalled(t, "GetOwnedFolder")
		storage.AssertNotCalled(t, "Put")
	})

	t.Run("Error_MetadataFailureRemovesBlob", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(folder, nil)
		storage.On("Put", ctx, mock.AnythingOfType("string"), mock.Anything, int64(5), "").Return(nil)
		repo.On("CreateFile", ctx, mock.AnythingOfType("*domain.File")).Return(apperrors.New("insert failed"))
		storage.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		file, err := uc.UploadFile(ctx, folderID, ownerID, UploadFileInput{
			Name:    "a.txt",
			Size:    5,
			Content: bytes.NewReader([]byte("hello")),
		})
		assert.Nil(t, file)
		assert.Error(t, err)
		storage.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
	})
}

func TestFolderUseCase_DownloadFile(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())
	folderID := uuid.Must(uuid.NewV7())
	fileID := uuid.Must(uuid.NewV7())
	folder := &domain.Folder{ID: folderID, OwnerID: ownerID}
	stored := &domain.File{ID: fileID, FolderID: folderID, Name: "a.txt", BlobKey: "key"}

	t.Run("Success_DownloadFile", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(folder, nil)
		repo.On("GetFile", ctx, fileID, folderID).Return(stored, nil)
		storage.On("Get", ctx, "key").Return(io.NopCloser(bytes.NewReader([]byte("hello"))), nil)

		file, content, err := uc.DownloadFile(ctx, fileID, folderID, ownerID)
		require.NoError(t, err)
		defer content.Close()

		assert.Equal(t, stored, file)
		data, err := io.ReadAll(content)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("Error_FileNotFound", func(t *testing.T) {
		repo, storage, uc := setupUseCase()
		repo.On("GetOwnedFolder", ctx, folderID, ownerID).Return(folder, nil)
		repo.On("GetFile", ctx, fileID, folderID).Return(nil, domain.ErrFileNotFound)

		file, content, err := uc.DownloadFile(ctx, fileID, folderID, ownerID)
		assert.Nil(t, file)
		assert.Nil(t, content)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		storage.AssertNotCalled(t, "Get")
	})
}
