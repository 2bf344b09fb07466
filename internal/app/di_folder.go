package app

import (
	"fmt"
	"sync"

	folderRepository "github.com/allisson/minidrive/internal/folder/repository"
	folderUsecase "github.com/allisson/minidrive/internal/folder/usecase"
)

// folderComponents groups the folder repository and use case.
type folderComponents struct {
	repo    folderUsecase.FolderRepository
	useCase folderUsecase.UseCase

	repoInit    sync.Once
	useCaseInit sync.Once
}

// FolderRepository returns the folder repository instance.
func (c *Container) FolderRepository() (folderUsecase.FolderRepository, error) {
	var err error
	c.folders.repoInit.Do(func() {
		c.folders.repo, err = c.initFolderRepository()
		if err != nil {
			c.initErrors["folderRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["folderRepo"]; exists {
		return nil, storedErr
	}
	return c.folders.repo, nil
}

// FolderUseCase returns the folder use case instance.
func (c *Container) FolderUseCase() (folderUsecase.UseCase, error) {
	var err error
	c.folders.useCaseInit.Do(func() {
		c.folders.useCase, err = c.initFolderUseCase()
		if err != nil {
			c.initErrors["folderUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["folderUseCase"]; exists {
		return nil, storedErr
	}
	return c.folders.useCase, nil
}

// initFolderRepository creates the folder repository instance.
func (c *Container) initFolderRepository() (folderUsecase.FolderRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for folder repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return folderRepository.NewMySQLFolderRepository(db), nil
	case "postgres":
		return folderRepository.NewPostgreSQLFolderRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFolderUseCase creates the folder use case with all its dependencies.
func (c *Container) initFolderUseCase() (folderUsecase.UseCase, error) {
	folderRepo, err := c.FolderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder repository for folder use case: %w", err)
	}

	blobStorage, err := c.BlobStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob storage for folder use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for folder use case: %w", err)
	}

	return folderUsecase.NewFolderUseCase(
		folderRepo,
		blobStorage,
		txManager,
		c.config.UploadMaxBytes,
		c.Logger(),
	), nil
}
