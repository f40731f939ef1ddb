// Package wire 提供依赖装配
// 对象图很小，手工装配即可，不引入代码生成
package wire

import (
	"context"
	"fmt"

	"book-writer-api/internal/config"
	"book-writer-api/internal/domain/repository"
	"book-writer-api/internal/infrastructure/backend"
	"book-writer-api/internal/infrastructure/persistence/redis"
	"book-writer-api/internal/infrastructure/storage/fsstore"
	"book-writer-api/internal/interfaces/http/handler"
	"book-writer-api/internal/interfaces/http/middleware"
	"book-writer-api/internal/interfaces/http/router"
	"book-writer-api/pkg/logger"
)

// InitializeApp 装配应用依赖并返回路由器与清理函数
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	// 后端代理客户端（未配置 base_url 时进入降级形态，代理端点返回配置错误）
	client := backend.NewClient(cfg.Backend)

	store, err := newReferenceStore(cfg, client)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "reference store initialized", "mode", store.Name())

	// Redis 仅服务于限流，未启用限流时不建立连接
	var (
		redisClient *redis.Client
		limiter     middleware.RateLimiter
	)
	if cfg.Security.RateLimit.Enabled {
		redisClient, err = redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		limiter = redis.NewRateLimiter(redisClient)
	}

	handlers := router.Handlers{
		Reference: handler.NewReferenceHandler(store),
		Chapter:   handler.NewChapterHandler(client),
		Health:    handler.NewHealthHandler(store, client, redisClient, cfg.App.Version),
	}

	r := router.New(cfg, handlers, limiter)

	cleanup := func() {
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Warn(ctx, "failed to close redis client", "error", cerr.Error())
			}
		}
	}

	return r, cleanup, nil
}

// newReferenceStore 按配置选择参考文件存储实现
func newReferenceStore(cfg *config.Config, client *backend.Client) (repository.ReferenceStore, error) {
	switch cfg.Storage.Mode {
	case config.StorageModeFilesystem, "":
		return fsstore.New(cfg.Storage.TempProjectsDir), nil
	case config.StorageModeLegacy:
		return fsstore.NewLegacy(cfg.Storage.LegacyDir), nil
	case config.StorageModeRemote:
		return backend.NewReferenceStore(client), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %q", cfg.Storage.Mode)
	}
}
