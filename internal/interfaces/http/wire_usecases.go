package http

import (
	"context"
	"fmt"
	"time"

	clashConfigUsecases "github.com/orris-inc/subhub/internal/application/clashconfig/usecases"
	subscriptionUsecases "github.com/orris-inc/subhub/internal/application/subscription/usecases"
	"github.com/orris-inc/subhub/internal/infrastructure/cache"
	"github.com/orris-inc/subhub/internal/infrastructure/metrics"
	"github.com/orris-inc/subhub/internal/infrastructure/scheduler"
	"github.com/orris-inc/subhub/internal/infrastructure/subconverter"
)

const (
	memoryCacheCleanupInterval = 10 * time.Minute
	probeJobTimeout            = 2 * time.Minute
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Subscription
	generateSubscriptionUC *subscriptionUsecases.GenerateSubscriptionUseCase
	generateForUserUC      *subscriptionUsecases.GenerateForUserUseCase
	verifySubconverterUC   *subscriptionUsecases.VerifySubconverterUseCase
	probeSubconvertersUC   *subscriptionUsecases.ProbeSubconvertersUseCase

	// Clash config
	createClashConfigUC *clashConfigUsecases.CreateClashConfigUseCase
	updateClashConfigUC *clashConfigUsecases.UpdateClashConfigUseCase
	deleteClashConfigUC *clashConfigUsecases.DeleteClashConfigUseCase
	getClashConfigUC    *clashConfigUsecases.GetClashConfigUseCase
	listClashConfigsUC  *clashConfigUsecases.ListClashConfigsUseCase
	mergeClashConfigUC  *clashConfigUsecases.MergeClashConfigUseCase
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	if c.needsRedis() {
		client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
		if err != nil {
			return err
		}
		c.redis = client
		c.log.Infow("redis connection established", "addr", c.cfg.Redis.GetAddr())
	}

	c.repos = newRepositories(c.db, c.log)
	c.gateway = subconverter.NewClient(c.cfg.Subconverter, c.log.Named("subconverter"))

	if c.cfg.Metrics.Enabled {
		c.metrics = metrics.NewCollector(&c.cfg.Metrics, nil)
	}
	return nil
}

// documentCache picks the configured cache backend, or nil when caching is off.
func (c *Container) documentCache() subscriptionUsecases.DocumentCache {
	if !c.cfg.Cache.Enabled() {
		return nil
	}
	switch c.cfg.Cache.Driver {
	case "redis":
		return cache.NewRedisSubscriptionCache(c.redis, c.log)
	default:
		cleanup := memoryCacheCleanupInterval
		if c.cfg.Cache.TTL > cleanup {
			cleanup = c.cfg.Cache.TTL
		}
		return cache.NewMemorySubscriptionCache(c.cfg.Cache.TTL, cleanup)
	}
}

// ============================================================
// Section 2: Use cases
// ============================================================

func (c *Container) initUseCases() error {
	log := c.log
	repos := c.repos

	opts := []subscriptionUsecases.RendererOption{
		subscriptionUsecases.WithCache(c.documentCache(), c.cfg.Cache.TTL),
	}
	var recorder subscriptionUsecases.MetricsRecorder
	if c.metrics != nil {
		recorder = c.metrics
		opts = append(opts, subscriptionUsecases.WithMetrics(recorder))
	}

	renderer := subscriptionUsecases.NewRenderer(
		subscriptionUsecases.NewLinkCollector(repos.nodeClientRepo, log),
		subscriptionUsecases.NewSubconverterResolver(repos.subconverterRepo, log),
		repos.clashConfigRepo,
		c.gateway,
		log.Named("renderer"),
		opts...,
	)

	c.ucs = &allUseCases{
		generateSubscriptionUC: subscriptionUsecases.NewGenerateSubscriptionUseCase(repos.userRepo, renderer, log),
		generateForUserUC:      subscriptionUsecases.NewGenerateForUserUseCase(repos.userRepo, renderer, log),
		verifySubconverterUC:   subscriptionUsecases.NewVerifySubconverterUseCase(c.gateway, log),
		probeSubconvertersUC: subscriptionUsecases.NewProbeSubconvertersUseCase(
			repos.subconverterRepo, c.gateway, recorder, log.Named("probe"),
		).WithMinVersion(c.cfg.Probe.MinVersion),

		createClashConfigUC: clashConfigUsecases.NewCreateClashConfigUseCase(repos.clashConfigRepo, log),
		updateClashConfigUC: clashConfigUsecases.NewUpdateClashConfigUseCase(repos.clashConfigRepo, log),
		deleteClashConfigUC: clashConfigUsecases.NewDeleteClashConfigUseCase(repos.clashConfigRepo, log),
		getClashConfigUC:    clashConfigUsecases.NewGetClashConfigUseCase(repos.clashConfigRepo),
		listClashConfigsUC:  clashConfigUsecases.NewListClashConfigsUseCase(repos.clashConfigRepo),
		mergeClashConfigUC:  clashConfigUsecases.NewMergeClashConfigUseCase(repos.clashConfigRepo, log),
	}

	if c.cfg.Probe.Schedule != "" {
		probe := c.ucs.probeSubconvertersUC
		s, err := scheduler.NewCronScheduler("subconverter-probe", c.cfg.Probe.Schedule,
			scheduler.JobFunc(func(ctx context.Context) error {
				_, err := probe.Execute(ctx)
				return err
			}),
			probeJobTimeout, log)
		if err != nil {
			return fmt.Errorf("failed to create probe scheduler: %w", err)
		}
		c.probeScheduler = s
	}

	return nil
}
