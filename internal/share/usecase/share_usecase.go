package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/capability/service"
	"github.com/allisson/minidrive/internal/capability/store"
	"github.com/allisson/minidrive/internal/clock"
	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/metrics"
	shareDomain "github.com/allisson/minidrive/internal/share/domain"
)

// ShareUseCase handles share link business logic. Expiry is owned entirely
// by the capability store; this layer only translates between folder access
// and capability records.
type ShareUseCase struct {
	capabilityStore *store.Store
	tokenGenerator  service.TokenGenerator
	folderReader    FolderReader
	clock           clock.Clock
	defaultTTL      time.Duration
	logger          *slog.Logger
	metrics         metrics.BusinessMetrics
}

// NewShareUseCase creates a new ShareUseCase
func NewShareUseCase(
	capabilityStore *store.Store,
	tokenGenerator service.TokenGenerator,
	folderReader FolderReader,
	clk clock.Clock,
	defaultTTL time.Duration,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) UseCase {
	return &ShareUseCase{
		capabilityStore: capabilityStore,
		tokenGenerator:  tokenGenerator,
		folderReader:    folderReader,
		clock:           clk,
		defaultTTL:      defaultTTL,
		logger:          logger,
		metrics:         businessMetrics,
	}
}

// Issue creates a share token for a folder the caller owns. Unparsable or
// non-positive durations fall back to the configured default instead of
// failing. A folder owned by someone else is reported as not found.
func (uc *ShareUseCase) Issue(
	ctx context.Context,
	folderID, ownerID uuid.UUID,
	duration string,
) (*IssuedShare, error) {
	if _, err := uc.folderReader.GetOwnedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	ttl := shareDomain.ParseDuration(duration, uc.defaultTTL)
	ttl = uc.capabilityStore.ClampTTL(ttl)

	token, err := uc.tokenGenerator.Generate()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate share token")
	}

	grant := shareDomain.Grant{FolderID: folderID, OwnerID: ownerID}
	payload, err := json.Marshal(grant)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode share grant")
	}

	if err := uc.capabilityStore.Put(ctx, token, payload, ttl); err != nil {
		return nil, err
	}

	uc.metrics.RecordOperation(ctx, "share", "issue", "success")
	uc.logger.Info("share link issued",
		slog.String("folder_id", folderID.String()),
		slog.Duration("ttl", ttl))

	return &IssuedShare{
		Token:     token,
		ExpiresAt: uc.clock.Now().Add(ttl),
	}, nil
}

// Resolve returns the public projection of the folder behind a share token.
// Never-issued, revoked and expired tokens are indistinguishable: all return
// ErrShareNotFound. Resolving never extends the grant's expiry.
func (uc *ShareUseCase) Resolve(ctx context.Context, token string) (*ResolvedShare, error) {
	payload, err := uc.capabilityStore.Get(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, shareDomain.ErrShareNotFound
		}
		return nil, err
	}

	var grant shareDomain.Grant
	if err := json.Unmarshal(payload, &grant); err != nil {
		// A grant that does not decode is useless; drop it.
		uc.logger.Warn("corrupt share grant payload",
			slog.String("error", err.Error()))
		if delErr := uc.capabilityStore.Delete(ctx, token); delErr != nil {
			uc.logger.Warn("failed to delete corrupt share grant",
				slog.String("error", delErr.Error()))
		}
		return nil, shareDomain.ErrShareNotFound
	}

	folder, err := uc.folderReader.GetOwnedFolder(ctx, grant.FolderID, grant.OwnerID)
	if err != nil {
		// The folder was deleted after the grant was issued.
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, shareDomain.ErrShareNotFound
		}
		return nil, err
	}

	files, err := uc.folderReader.ListFiles(ctx, grant.FolderID)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordOperation(ctx, "share", "resolve", "success")

	return &ResolvedShare{
		FolderID:   folder.ID,
		FolderName: folder.Name,
		Files:      files,
	}, nil
}

// Revoke terminates a grant early. Only the grant's owner may revoke it;
// anyone else sees the same not-found as for an absent token.
func (uc *ShareUseCase) Revoke(ctx context.Context, token string, ownerID uuid.UUID) error {
	payload, err := uc.capabilityStore.Get(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return shareDomain.ErrShareNotFound
		}
		return err
	}

	var grant shareDomain.Grant
	if err := json.Unmarshal(payload, &grant); err != nil {
		return shareDomain.ErrShareNotFound
	}
	if grant.OwnerID != ownerID {
		return shareDomain.ErrShareNotFound
	}

	if err := uc.capabilityStore.Delete(ctx, token); err != nil {
		return err
	}

	uc.metrics.RecordOperation(ctx, "share", "revoke", "success")
	return nil
}
