package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fridgechef/internal/api/handlers"
	"fridgechef/internal/api/handlers/health"
	"fridgechef/internal/api/middleware"
	"fridgechef/internal/core/ai/cache"
	aiservice "fridgechef/internal/core/ai/service"
	"fridgechef/internal/core/profile"
	"fridgechef/internal/core/recipes"
	"fridgechef/internal/core/vision"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Whole-request deadline; individual vision calls carry their own
	// shorter timeout.
	timeoutDuration = 120 * time.Second
	// Request body limit (1MB; the API takes URLs, not image payloads)
	maxBodySize = 1 << 20
)

// SetupRouter wires middleware, services and routes.
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, profileStore *profile.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "Method not allowed",
			"code":  common.ErrCodeMethodNotAllowed,
		})
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("profile_store_enabled", cfg.Redis.Enabled),
		zap.String("vision_model", cfg.OpenRouter.VisionModel),
		zap.String("text_model", cfg.OpenRouter.TextModel),
	)

	aiService, err := aiservice.NewService(cfg, cacheManager)
	if err != nil || aiService == nil {
		common.LogError("Failed to initialize AI service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	visionSvc := vision.NewService(cfg, aiService)
	recipeSvc := recipes.NewService(cfg, aiService)
	if visionSvc == nil || recipeSvc == nil {
		common.LogError("Failed to initialize core services")
		return nil, fmt.Errorf("failed to initialize core services")
	}

	// Per-request deadline
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck(cfg, cacheManager))
	router.GET("/ready", health.ReadinessCheck(cfg))
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze-ingredients", handlers.HandleAnalyzeIngredients(cfg, visionSvc))
		api.POST("/generate-recipes", handlers.HandleGenerateRecipes(cfg, recipeSvc, profileStore))

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/save", handlers.HandleSaveRecipe(profileStore))
			recipeGroup.GET("/saved/:userId", handlers.HandleListSavedRecipes(recipeSvc, profileStore))
		}

		profileGroup := api.Group("/profile")
		{
			profileGroup.GET("/:userId/preferences", handlers.HandleGetPreferences(profileStore))
			profileGroup.POST("/:userId/preferences", handlers.HandleSetPreferences(profileStore))
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
