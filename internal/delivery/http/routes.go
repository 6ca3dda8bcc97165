package http

import (
	"github.com/beautyai/backend/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	api.Use(BodyLimitMiddleware(cfg.Server.MaxBodyBytes))
	api.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))
	if cfg.RateLimit.PerIP > 0 {
		api.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	}
	{
		products := api.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
			products.POST("/generate", handler.GenerateProducts)
		}
		api.POST("/chat", handler.Chat)
		api.GET("/categories", handler.Categories)
	}

	return router
}
