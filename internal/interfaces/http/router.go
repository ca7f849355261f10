package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/interfaces/http/middleware"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	r := c.engine
	r.Use(middleware.Recovery(c.log))
	r.Use(middleware.Logger(c.log))
	if c.metrics != nil {
		r.Use(middleware.Metrics(c.metrics))
	}
	r.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	r.GET("/health", c.hdlrs.healthHandler.Check)
	if c.metrics != nil {
		r.GET(c.cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}

	c.setupSubscriptionRoutes()
	c.setupAdminRoutes()
}

// setupSubscriptionRoutes configures the public subscription endpoint
func (c *Container) setupSubscriptionRoutes() {
	h := c.hdlrs.subscriptionHandler
	if c.rateLimiter != nil {
		c.engine.GET("/sub/:key", c.rateLimiter.Limit(), h.GetSubscription)
		return
	}
	c.engine.GET("/sub/:key", h.GetSubscription)
}

// setupAdminRoutes configures the management API. Without an admin token
// none of these routes exist.
func (c *Container) setupAdminRoutes() {
	if !c.adminToken.Enabled() {
		c.log.Warnw("admin token not configured, management API disabled")
		return
	}

	api := c.engine.Group("/api")
	api.Use(c.adminToken.RequireToken())

	clashConfigs := api.Group("/clash-configs")
	{
		h := c.hdlrs.clashConfigHandler
		clashConfigs.GET("", h.List)
		clashConfigs.POST("", h.Create)
		clashConfigs.GET("/:id", h.Get)
		clashConfigs.PUT("/:id", h.Update)
		clashConfigs.DELETE("/:id", h.Delete)
		clashConfigs.POST("/:id/merge", h.Merge)
	}

	api.POST("/subconverters/verify", c.hdlrs.subconverterHandler.Verify)
	api.GET("/users/:id/subscription", c.hdlrs.subscriptionHandler.GetUserSubscription)
}
