package http

import (
	"context"
	"fmt"

	"github.com/orris-inc/subhub/internal/infrastructure/database"
	"github.com/orris-inc/subhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/subhub/internal/interfaces/http/middleware"
	"github.com/orris-inc/subhub/internal/shared/utils"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	subscriptionHandler *handlers.SubscriptionHandler
	subconverterHandler *handlers.SubconverterHandler
	clashConfigHandler  *handlers.ClashConfigHandler
}

// ============================================================
// Section 3: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() error {
	utils.RegisterBindingValidators()
	if err := handlers.RegisterClashConfigValidators(); err != nil {
		return fmt.Errorf("failed to register request validators: %w", err)
	}

	log := c.log
	ucs := c.ucs
	db := c.db

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			ucs.generateSubscriptionUC,
			ucs.generateForUserUC,
			log,
		),
		subconverterHandler: handlers.NewSubconverterHandler(ucs.verifySubconverterUC, log),
		clashConfigHandler: handlers.NewClashConfigHandler(
			ucs.createClashConfigUC,
			ucs.updateClashConfigUC,
			ucs.deleteClashConfigUC,
			ucs.getClashConfigUC,
			ucs.listClashConfigsUC,
			ucs.mergeClashConfigUC,
			log,
		),
	}

	c.adminToken = middleware.NewAdminTokenMiddleware(c.cfg.Admin.Token, log)
	if c.cfg.Server.RateLimit > 0 {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, c.cfg.Server.RateLimit, c.cfg.Server.RateLimitWindow, log)
	}
	return nil
}
