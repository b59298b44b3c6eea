package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-discovery/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Redis     string                 `json:"redis"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// HealthCheck 健康檢查處理器。redis 掛掉不算不健康：
// 管線所有依賴 redis 的部分都有退化路徑
func HealthCheck(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisStatus := "disabled"
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			} else {
				redisStatus = "ok"
			}
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   cfg.App.Version,
			Redis:     redisStatus,
			Runtime: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc":  m.Alloc,
					"sys":    m.Sys,
					"num_gc": m.NumGC,
				},
			},
		})
	}
}

// ReadinessCheck 就緒檢查處理器
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
