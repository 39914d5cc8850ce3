package http

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/mirror"
	"warden/internal/infrastructure/scheduler"
	"warden/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, services,
// handlers and background jobs. It wires everything together and owns
// graceful termination through Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Best-effort store writes
	mirror *mirror.Writer

	repos *repositories
	svcs  *allServices
	hdlrs *allHandlers

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
// The in-memory liveness, queue and log state lives in the services built
// here and is lost when the process exits.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, signer, policy
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Services - identity, license, liveness, queue, logs, bans, accounts
	c.initServices()

	// Section 3: Maintenance jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine. Call SetupRoutes first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartScheduler starts the maintenance jobs.
func (c *Container) StartScheduler() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background work. Pending mirror writes are awaited so the
// last heartbeats and log lines reach the store.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		c.mirror.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		c.log.Warnw("gave up waiting for pending store writes", "error", ctx.Err())
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
