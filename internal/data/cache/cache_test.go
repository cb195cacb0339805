package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/restkit-backend/internal/domain"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *Entity[*domain.User]) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log, err := logger.New("test")
	require.NoError(t, err)

	c := New(client, log, "user", func() *domain.User { return &domain.User{} }, WithTTL[*domain.User](time.Minute))
	return mr, c
}

func TestEntityCacheRoundTrip(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	u := &domain.User{ID: uuid.New(), Username: "jdoe", Email: "jdoe@example.com"}
	require.NoError(t, c.Set(ctx, u))
	assert.True(t, mr.Exists("resource:user:"+u.EntityID()))
	assert.Equal(t, time.Minute, mr.TTL("resource:user:"+u.EntityID()))

	got, ok, err := c.Get(ctx, u.EntityID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.Email, got.Email)

	require.NoError(t, c.Invalidate(ctx, u.EntityID()))
	_, ok, err = c.Get(ctx, u.EntityID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntityCacheDropsCorruptEntries(t *testing.T) {
	mr, c := newTestCache(t)
	require.NoError(t, mr.Set("resource:user:abc", "{not json"))

	_, ok, err := c.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("resource:user:abc"))
}

func TestNilEntityCacheIsDisabled(t *testing.T) {
	var c *Entity[*domain.User]
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "x")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, &domain.User{}))
	assert.NoError(t, c.Invalidate(ctx, "x"))
}

func TestEntityCacheSkipsFillAfterInvalidate(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()
	u := &domain.User{ID: uuid.New(), Username: "jdoe"}

	version, err := c.Version(ctx, u.EntityID())
	require.NoError(t, err)
	assert.Zero(t, version)

	// A write lands between the store read and the fill.
	require.NoError(t, c.Invalidate(ctx, u.EntityID()))

	written, err := c.SetIfVersion(ctx, u, version)
	require.NoError(t, err)
	assert.False(t, written)
	assert.False(t, mr.Exists("resource:user:"+u.EntityID()))

	version, err = c.Version(ctx, u.EntityID())
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.Equal(t, time.Minute, mr.TTL("resource:user:version:"+u.EntityID()))

	written, err = c.SetIfVersion(ctx, u, version)
	require.NoError(t, err)
	assert.True(t, written)
	assert.True(t, mr.Exists("resource:user:"+u.EntityID()))
}
