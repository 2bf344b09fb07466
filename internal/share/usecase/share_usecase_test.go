package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/minidrive/internal/capability/service"
	"github.com/allisson/minidrive/internal/capability/store"
	"github.com/allisson/minidrive/internal/clock"
	apperrors "github.com/allisson/minidrive/internal/errors"
	folderDomain "github.com/allisson/minidrive/internal/folder/domain"
	"github.com/allisson/minidrive/internal/metrics"
	shareDomain "github.com/allisson/minidrive/internal/share/domain"
	"github.com/allisson/minidrive/internal/testutil"
)

// mockFolderReader is a mock implementation of FolderReader
type mockFolderReader struct {
	mock.Mock
}

func (m *mockFolderReader) GetOwnedFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*folderDomain.Folder, error) {
	args := m.Called(ctx, folderID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*folderDomain.Folder), args.Error(1)
}

func (m *mockFolderReader) ListFiles(ctx context.Context, folderID uuid.UUID) ([]*folderDomain.File, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*folderDomain.File), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type shareFixture struct {
	uc       UseCase
	folders  *mockFolderReader
	clock    *clock.FakeClock
	repo     *testutil.MemoryCapabilityRepository
	folderID uuid.UUID
	ownerID  uuid.UUID
}

func setupShare(t *testing.T) *shareFixture {
	t.Helper()

	repo := testutil.NewMemoryCapabilityRepository()
	fakeClock := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	capabilityStore := store.New(repo, fakeClock, 0, testLogger())
	folders := new(mockFolderReader)

	uc := NewShareUseCase(
		capabilityStore,
		service.NewTokenService(),
		folders,
		fakeClock,
		24*time.Hour,
		testLogger(),
		metrics.NewNoOpBusinessMetrics(),
	)

	return &shareFixture{
		uc:       uc,
		folders:  folders,
		clock:    fakeClock,
		repo:     repo,
		folderID: uuid.Must(uuid.NewV7()),
		ownerID:  uuid.Must(uuid.NewV7()),
	}
}

func (f *shareFixture) ownFolder() *folderDomain.Folder {
	return &folderDomain.Folder{ID: f.folderID, OwnerID: f.ownerID, Name: "Documents"}
}

func TestShareUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_IssueAndResolve", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)
		f.folders.On("ListFiles", ctx, f.folderID).Return([]*folderDomain.File{
			{ID: uuid.Must(uuid.NewV7()), FolderID: f.folderID, Name: "report.pdf", Size: 1024},
		}, nil)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		require.NoError(t, err)
		assert.NotEmpty(t, issued.Token)
		assert.Equal(t, f.clock.Now().Add(24*time.Hour), issued.ExpiresAt)

		resolved, err := f.uc.Resolve(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, f.folderID, resolved.FolderID)
		assert.Equal(t, "Documents", resolved.FolderName)
		assert.Len(t, resolved.Files, 1)
	})

	t.Run("Success_DegenerateDurationFallsBackToDefault", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)
		f.folders.On("ListFiles", ctx, f.folderID).Return([]*folderDomain.File{}, nil)

		// "0d" degrades to the 1-day default instead of failing the request.
		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "0d")
		require.NoError(t, err)
		assert.Equal(t, f.clock.Now().Add(24*time.Hour), issued.ExpiresAt)

		_, err = f.uc.Resolve(ctx, issued.Token)
		require.NoError(t, err)
	})

	t.Run("Error_FolderNotOwned", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).
			Return(nil, folderDomain.ErrFolderNotFound)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		assert.Nil(t, issued)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestShareUseCase_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_ExpiredGrantIsAbsent", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		require.NoError(t, err)

		f.clock.Advance(25 * time.Hour)

		resolved, err := f.uc.Resolve(ctx, issued.Token)
		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)

		// The expired record was lazily removed on resolution.
		assert.False(t, f.repo.Contains(issued.Token))
	})

	t.Run("Error_NeverIssuedToken", func(t *testing.T) {
		f := setupShare(t)

		resolved, err := f.uc.Resolve(ctx, "never-issued")
		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)
	})

	t.Run("Error_FolderDeletedAfterIssue", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil).Once()

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		require.NoError(t, err)

		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).
			Return(nil, folderDomain.ErrFolderNotFound)

		resolved, err := f.uc.Resolve(ctx, issued.Token)
		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)
	})

	t.Run("Success_ResolveDoesNotExtendExpiry", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)
		f.folders.On("ListFiles", ctx, f.folderID).Return([]*folderDomain.File{}, nil)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1h")
		require.NoError(t, err)

		f.clock.Advance(59 * time.Minute)
		_, err = f.uc.Resolve(ctx, issued.Token)
		require.NoError(t, err)

		// Resolving a minute before expiry did not push the deadline out.
		f.clock.Advance(2 * time.Minute)
		_, err = f.uc.Resolve(ctx, issued.Token)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)
	})
}

func TestShareUseCase_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OwnerRevokes", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		require.NoError(t, err)

		require.NoError(t, f.uc.Revoke(ctx, issued.Token, f.ownerID))

		resolved, err := f.uc.Resolve(ctx, issued.Token)
		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)
	})

	t.Run("Error_NonOwnerSeesNotFound", func(t *testing.T) {
		f := setupShare(t)
		f.folders.On("GetOwnedFolder", ctx, f.folderID, f.ownerID).Return(f.ownFolder(), nil)
		f.folders.On("ListFiles", ctx, f.folderID).Return([]*folderDomain.File{}, nil)

		issued, err := f.uc.Issue(ctx, f.folderID, f.ownerID, "1d")
		require.NoError(t, err)

		stranger := uuid.Must(uuid.NewV7())
		err = f.uc.Revoke(ctx, issued.Token, stranger)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)

		// The grant is still live for its bearer.
		_, err = f.uc.Resolve(ctx, issued.Token)
		require.NoError(t, err)
	})

	t.Run("Error_AbsentToken", func(t *testing.T) {
		f := setupShare(t)

		err := f.uc.Revoke(ctx, "never-issued", f.ownerID)
		assert.ErrorIs(t, err, shareDomain.ErrShareNotFound)
	})
}
