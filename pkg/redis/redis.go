package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/repair_workorder/configs"
)

// NewClient 创建 Redis 连接并执行 Ping 健康检查。
// 未配置地址时返回 (nil, nil)，调用方改用进程内实现。
func NewClient(cfg configs.RedisConfig, logger *zap.Logger) (*goredis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("未配置 Redis，使用进程内拒绝列表与锁")
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))
	return rdb, nil
}
