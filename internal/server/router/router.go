package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridgeagent/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(inv *handlers.InventoryHandler, alerts *handlers.AlertsHandler, assistant *handlers.AssistantHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/inventory", inv.List)
		api.POST("/inventory", inv.Add)
		api.PUT("/inventory/:id", inv.Update)
		api.DELETE("/inventory/:id", inv.Delete)
		api.POST("/inventory/consume", inv.Consume)
		api.POST("/inventory/deduct", inv.Deduct)

		api.GET("/alerts", alerts.List)

		api.POST("/chat", assistant.Chat)
		api.POST("/snap", assistant.Snap)
		api.GET("/recipes", assistant.Recipes)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
