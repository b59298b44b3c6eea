package api

import (
	"context"
	"net/http"
	"time"

	"recipe-discovery/internal/api/handlers/discover"
	"recipe-discovery/internal/api/handlers/health"
	"recipe-discovery/internal/api/middleware"
	"recipe-discovery/internal/core/enrich"
	"recipe-discovery/internal/core/scraper"
	"recipe-discovery/internal/core/sources"
	"recipe-discovery/internal/core/storage"
	"recipe-discovery/internal/core/user"
	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// 整條爬取管線的上限：抓取逾時 30 秒 × 多輪，給足餘裕
	timeoutDuration = 180 * time.Second
	// 請求體大小限制 (64KB)，這個服務只收小 JSON
	maxBodySize = 64 << 10
)

// SetupRouter 設置路由並完成服務接線
func SetupRouter(cfg *config.Config, redisClient *redis.Client) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化服務
	var llm enrich.CompletionClient
	if cfg.OpenRouter.Enabled {
		llm = enrich.NewOpenRouterClient(cfg)
	}
	enrichService := enrich.NewService(cfg, llm)

	sourceRegistry := sources.NewRegistry(redisClient)
	userLoader := user.NewLoader(redisClient)
	resultStore := storage.NewStore(redisClient, cfg.Redis.ResultTTL)

	fetcher := scraper.NewFetcher(cfg)
	crawler := scraper.NewCrawler(cfg, fetcher, sourceRegistry)

	common.LogInfo("Services initialized",
		zap.Bool("redis_configured", redisClient != nil),
		zap.Bool("llm_enabled", cfg.OpenRouter.Enabled),
		zap.Int("max_concurrent", cfg.Crawler.MaxConcurrent),
		zap.Int("max_recipes", cfg.Crawler.MaxRecipes),
	)

	// 全局中間件：設置請求超時
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
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
			return
		}
	})

	// 未註冊的路徑統一回 404
	router.NoRoute(func(c *gin.Context) {
		apiErr := common.ErrNotFound
		c.JSON(apiErr.Status, common.ErrorResponse{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		})
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg, redisClient))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		discoverHandler := discover.NewHandler(enrichService, userLoader, crawler, resultStore)

		recipeGroup := api.Group("/recipes")
		{
			// 探索食譜（完整管線入口）
			recipeGroup.POST("/discover", discoverHandler.HandleDiscover)

			// 讀回最近一次的探索結果
			recipeGroup.GET("/results/:user_id", discoverHandler.HandleResults)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
