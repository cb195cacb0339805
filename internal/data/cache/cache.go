package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

const defaultPrefix = "resource:"

type Option[E domain.Entity] func(*Entity[E])

func WithTTL[E domain.Entity](ttl time.Duration) Option[E] {
	return func(c *Entity[E]) {
		c.ttl = ttl
	}
}

func WithPrefix[E domain.Entity](prefix string) Option[E] {
	return func(c *Entity[E]) {
		c.prefix = prefix
	}
}

// Entity is a JSON read-through cache for one resource's entities, keyed
// resource:{name}:{id}. A nil *Entity is a valid disabled cache.
type Entity[E domain.Entity] struct {
	client    *goredis.Client
	log       *logger.Logger
	name      string
	prefix    string
	ttl       time.Duration
	newEntity func() E
}

func New[E domain.Entity](client *goredis.Client, baseLog *logger.Logger, name string, newEntity func() E, opts ...Option[E]) *Entity[E] {
	if client == nil {
		return nil
	}
	c := &Entity[E]{
		client:    client,
		log:       baseLog.With("cache", name),
		name:      name,
		prefix:    defaultPrefix,
		ttl:       5 * time.Minute,
		newEntity: newEntity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Entity[E]) key(id string) string {
	return c.prefix + c.name + ":" + id
}

// Get reports a miss as ok=false with a nil error.
func (c *Entity[E]) Get(ctx context.Context, id string) (E, bool, error) {
	var zero E
	if c == nil {
		return zero, false, nil
	}
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("cache get %s: %w", c.key(id), err)
	}
	entity := c.newEntity()
	if err := json.Unmarshal(raw, entity); err != nil {
		c.log.Warn("Dropping undecodable cache entry", "key", c.key(id), "error", err)
		_ = c.client.Del(ctx, c.key(id)).Err()
		return zero, false, nil
	}
	return entity, true, nil
}

func (c *Entity[E]) Set(ctx context.Context, entity E) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", c.name, err)
	}
	if err := c.client.Set(ctx, c.key(entity.EntityID()), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", c.key(entity.EntityID()), err)
	}
	return nil
}

// Invalidate drops the entry of id and bumps its version, so a fill that
// read the store before the invalidation is discarded by SetIfVersion.
func (c *Entity[E]) Invalidate(ctx context.Context, id string) error {
	if c == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, c.key(id))
		p.Incr(ctx, c.versionKey(id))
		p.Expire(ctx, c.versionKey(id), c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache del %s: %w", c.key(id), err)
	}
	return nil
}

// Version returns the invalidation counter of id. Read it before loading
// the entity from the store and pass it to SetIfVersion.
func (c *Entity[E]) Version(ctx context.Context, id string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, c.versionKey(id)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version %s: %w", c.versionKey(id), err)
	}
	return v, nil
}

// SetIfVersion stores entity only while its version still equals version.
// It reports whether the entry was written.
func (c *Entity[E]) SetIfVersion(ctx context.Context, entity E, version int64) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("cache encode %s: %w", c.name, err)
	}
	id := entity.EntityID()
	vkey := c.versionKey(id)
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if cur != version {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.Set(ctx, c.key(id), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStale), errors.Is(err, goredis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("cache set %s: %w", c.key(id), err)
	}
}

var errStale = errors.New("cache: stale fill")

func (c *Entity[E]) versionKey(id string) string {
	return c.prefix + c.name + ":version:" + id
}
