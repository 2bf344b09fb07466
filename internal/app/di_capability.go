package app

import (
	"fmt"
	"sync"

	capabilityRepository "github.com/allisson/minidrive/internal/capability/repository"
	capabilityService "github.com/allisson/minidrive/internal/capability/service"
	"github.com/allisson/minidrive/internal/capability/store"
	"github.com/allisson/minidrive/internal/session"
)

// capabilityComponents groups the expiring capability store and its adapters.
type capabilityComponents struct {
	repo           store.Repository
	store          *store.Store
	sweeper        *store.Sweeper
	tokenService   capabilityService.TokenGenerator
	sessionManager *session.Manager

	repoInit           sync.Once
	storeInit          sync.Once
	sweeperInit        sync.Once
	tokenServiceInit   sync.Once
	sessionManagerInit sync.Once
}

// CapabilityRepository returns the capability record repository selected by
// the configured backend ("database" or "redis").
func (c *Container) CapabilityRepository() (store.Repository, error) {
	var err error
	c.capability.repoInit.Do(func() {
		c.capability.repo, err = c.initCapabilityRepository()
		if err != nil {
			c.initErrors["capabilityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilityRepo"]; exists {
		return nil, storedErr
	}
	return c.capability.repo, nil
}

// CapabilityStore returns the expiring capability store.
func (c *Container) CapabilityStore() (*store.Store, error) {
	var err error
	c.capability.storeInit.Do(func() {
		c.capability.store, err = c.initCapabilityStore()
		if err != nil {
			c.initErrors["capabilityStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilityStore"]; exists {
		return nil, storedErr
	}
	return c.capability.store, nil
}

// CapabilitySweeper returns the background sweeper over the capability store.
// The caller owns starting it; Shutdown stops it.
func (c *Container) CapabilitySweeper() (*store.Sweeper, error) {
	var err error
	c.capability.sweeperInit.Do(func() {
		c.capability.sweeper, err = c.initCapabilitySweeper()
		if err != nil {
			c.initErrors["capabilitySweeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilitySweeper"]; exists {
		return nil, storedErr
	}
	return c.capability.sweeper, nil
}

// TokenService returns the capability token generator.
func (c *Container) TokenService() capabilityService.TokenGenerator {
	c.capability.tokenServiceInit.Do(func() {
		c.capability.tokenService = capabilityService.NewTokenService()
	})
	return c.capability.tokenService
}

// SessionManager returns the session adapter over the capability store.
func (c *Container) SessionManager() (*session.Manager, error) {
	var err error
	c.capability.sessionManagerInit.Do(func() {
		c.capability.sessionManager, err = c.initSessionManager()
		if err != nil {
			c.initErrors["sessionManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionManager"]; exists {
		return nil, storedErr
	}
	return c.capability.sessionManager, nil
}

// initCapabilityRepository selects the backend for capability records.
func (c *Container) initCapabilityRepository() (store.Repository, error) {
	switch c.config.CapabilityBackend {
	case "redis":
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for capability repository: %w", err)
		}
		return capabilityRepository.NewRedisCapabilityRepository(client, c.Clock()), nil
	case "database":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for capability repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			return capabilityRepository.NewMySQLCapabilityRepository(db), nil
		case "postgres":
			return capabilityRepository.NewPostgreSQLCapabilityRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported capability backend: %s", c.config.CapabilityBackend)
	}
}

// initCapabilityStore creates the store over the selected repository.
func (c *Container) initCapabilityStore() (*store.Store, error) {
	repo, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for store: %w", err)
	}
	return store.New(repo, c.Clock(), c.config.CapabilityMaxTTL, c.Logger()), nil
}

// initCapabilitySweeper creates the background sweeper.
func (c *Container) initCapabilitySweeper() (*store.Sweeper, error) {
	capabilityStore, err := c.CapabilityStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability store for sweeper: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for sweeper: %w", err)
	}
	return store.NewSweeper(
		capabilityStore,
		c.config.CapabilitySweepInterval,
		c.Logger(),
		businessMetrics,
	), nil
}

// initSessionManager creates the session adapter.
func (c *Container) initSessionManager() (*session.Manager, error) {
	capabilityStore, err := c.CapabilityStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability store for session manager: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session manager: %w", err)
	}
	return session.NewManager(
		capabilityStore,
		c.config.SessionDefaultTTL,
		c.Logger(),
		businessMetrics,
	), nil
}
