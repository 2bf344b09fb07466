package app

import (
	"fmt"
	"sync"

	shareUsecase "github.com/allisson/minidrive/internal/share/usecase"
)

// shareComponents groups the share link use case.
type shareComponents struct {
	useCase shareUsecase.UseCase

	useCaseInit sync.Once
}

// ShareUseCase returns the share use case instance.
func (c *Container) ShareUseCase() (shareUsecase.UseCase, error) {
	var err error
	c.shares.useCaseInit.Do(func() {
		c.shares.useCase, err = c.initShareUseCase()
		if err != nil {
			c.initErrors["shareUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["shareUseCase"]; exists {
		return nil, storedErr
	}
	return c.shares.useCase, nil
}

// initShareUseCase creates the share use case with all its dependencies.
// The folder repository doubles as the FolderReader: the share service only
// needs its read side.
func (c *Container) initShareUseCase() (shareUsecase.UseCase, error) {
	capabilityStore, err := c.CapabilityStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability store for share use case: %w", err)
	}

	folderRepo, err := c.FolderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder repository for share use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for share use case: %w", err)
	}

	return shareUsecase.NewShareUseCase(
		capabilityStore,
		c.TokenService(),
		folderRepo,
		c.Clock(),
		c.config.ShareDefaultTTL,
		c.Logger(),
		businessMetrics,
	), nil
}
