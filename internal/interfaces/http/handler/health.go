// Package handler 提供 HTTP 请求处理器
package handler

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"book-writer-api/internal/domain/repository"
	"book-writer-api/internal/infrastructure/backend"
	"book-writer-api/internal/infrastructure/persistence/redis"
	"book-writer-api/internal/infrastructure/storage/fsstore"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	store   repository.ReferenceStore
	client  *backend.Client
	redis   *redis.Client
	version string
}

// NewHealthHandler 创建健康检查处理器
// redis 为可选依赖，未启用限流时传 nil
func NewHealthHandler(store repository.ReferenceStore, client *backend.Client, rdb *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		client:  client,
		redis:   rdb,
		version: version,
	}
}

// Health 综合健康检查
// @Summary 健康检查
// @Description 返回服务与各依赖的健康状态，Redis 不可用仅降级不影响整体状态
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	checks := gin.H{
		"store": gin.H{
			"status": "ok",
			"mode":   h.store.Name(),
		},
	}

	if h.client.Configured() {
		checks["backend"] = gin.H{"status": "ok"}
	} else {
		// 后端未配置是合法部署形态，仅代理端点不可用
		checks["backend"] = gin.H{"status": "unconfigured"}
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = gin.H{"status": "degraded", "error": err.Error()}
		} else {
			checks["redis"] = gin.H{"status": "ok"}
		}
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}

// Ready 就绪检查
// 文件系统存储要求根目录可用，远端存储要求后端地址已配置；
// Redis 故障仅降级限流，不阻塞就绪
// @Summary 就绪检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if fs, ok := h.store.(*fsstore.Store); ok {
		if err := os.MkdirAll(fs.Resolver().Root(), 0o755); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	} else if !h.client.Configured() {
		c.JSON(503, gin.H{"status": "not ready", "error": "Backend URL not configured"})
		return
	}

	c.JSON(200, gin.H{"status": "ready"})
}

// Live 存活检查
// @Summary 存活检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(200, gin.H{"status": "alive"})
}
