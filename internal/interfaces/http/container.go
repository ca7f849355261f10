package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/infrastructure/config"
	"github.com/orris-inc/subhub/internal/infrastructure/metrics"
	"github.com/orris-inc/subhub/internal/infrastructure/scheduler"
	"github.com/orris-inc/subhub/internal/infrastructure/subconverter"
	"github.com/orris-inc/subhub/internal/interfaces/http/middleware"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases,
// handlers and background jobs, and wires them together. Shutdown releases
// what NewContainer acquired.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Collector
	gateway *subconverter.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	adminToken  *middleware.AdminTokenMiddleware
	rateLimiter *middleware.RateLimiter

	// Background jobs
	probeScheduler *scheduler.CronScheduler
}

// NewContainer creates a Container with all dependencies wired together.
// Redis is only dialled when the cache or the rate limiter needs it.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Gateway, Metrics
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Use cases - Subscription pipeline, Clash configs, Probe
	if err := c.initUseCases(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Handlers and middlewares
	if err := c.initHandlers(); err != nil {
		c.Shutdown()
		return nil, err
	}

	return c, nil
}

// Engine returns the gin engine with every route registered by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackground starts the scheduled subconverter probe when configured.
func (c *Container) StartBackground(ctx context.Context) error {
	if c.probeScheduler == nil {
		return nil
	}
	return c.probeScheduler.Start(ctx)
}

// Shutdown stops background jobs and closes the Redis client.
func (c *Container) Shutdown() {
	if c.probeScheduler != nil {
		c.probeScheduler.Stop()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}

func (c *Container) needsRedis() bool {
	return (c.cfg.Cache.Enabled() && c.cfg.Cache.Driver == "redis") || c.cfg.Server.RateLimit > 0
}

