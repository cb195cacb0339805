package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewClient returns nil when no address is configured, which disables
// caching.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		log.Info("Redis cache disabled (REDIS_ADDR unset)")
		return nil, nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	log.Info("Redis cache connected", "addr", addr, "db", cfg.DB)
	return client, nil
}
