package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/http/response"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

type HealthHandlerDeps struct {
	Log   *logger.Logger
	DB    *gorm.DB
	Redis *goredis.Client
}

// HealthHandler reports readiness of the database and, when configured,
// the cache.
type HealthHandler struct {
	log     *logger.Logger
	db      *gorm.DB
	redis   *goredis.Client
	timeout time.Duration
}

func NewHealthHandler() *HealthHandler { return NewHealthHandlerWithDeps(HealthHandlerDeps{}) }

func NewHealthHandlerWithDeps(deps HealthHandlerDeps) *HealthHandler {
	h := &HealthHandler{db: deps.DB, redis: deps.Redis, timeout: 2 * time.Second}
	if deps.Log != nil {
		h.log = deps.Log.With("handler", "HealthHandler")
	}
	return h
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := gin.H{}
	if err := h.check(ctx, checks); err != nil {
		if h.log != nil {
			h.log.Warn("Health check failed", "error", err)
		}
		response.RespondError(c, http.StatusServiceUnavailable, "unhealthy", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok", "checks": checks})
}

// check pings every configured dependency concurrently and fails on the
// first error.
func (h *HealthHandler) check(ctx context.Context, checks gin.H) error {
	var mu sync.Mutex
	pass := func(name string) {
		mu.Lock()
		checks[name] = "ok"
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	if h.db != nil {
		g.Go(func() error {
			sqlDB, err := h.db.DB()
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			if err := sqlDB.PingContext(gctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			pass("database")
			return nil
		})
	}
	if h.redis != nil {
		g.Go(func() error {
			if err := h.redis.Ping(gctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			pass("redis")
			return nil
		})
	}
	return g.Wait()
}
