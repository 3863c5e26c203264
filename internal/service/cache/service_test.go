package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/meal-browser-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewWithClient(client, zap.NewNop())
	t.Cleanup(func() { _ = svc.Close() })
	return svc, mr
}

func TestGetBytesMissIsNotAnError(t *testing.T) {
	svc, _ := newTestCache(t)

	value, ok, err := svc.GetBytes(context.Background(), "https://example.test/search.php?s=soup")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSetBytesStoresUnderPrefix(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()
	key := "https://example.test/search.php?s=soup"

	require.NoError(t, svc.SetBytes(ctx, key, []byte(`{"meals":null}`), time.Minute))

	assert.True(t, mr.Exists(KeyPrefix+key))
	assert.False(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+key))

	value, ok, err := svc.GetBytes(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"meals":null}`, string(value))
}

func TestEntriesExpire(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetBytes(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := svc.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelEvicts(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetBytes(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, svc.Del(ctx, "k"))

	assert.False(t, mr.Exists(KeyPrefix+"k"))
	_, ok, err := svc.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetBytesReportsServerFailure(t *testing.T) {
	svc, mr := newTestCache(t)
	mr.Close()

	_, ok, err := svc.GetBytes(context.Background(), "k")

	assert.False(t, ok)
	require.Error(t, err)
	cacheErr, isCacheErr := err.(*errors.CacheError)
	require.True(t, isCacheErr, "expected *CacheError, got %T", err)
	assert.Equal(t, "get", cacheErr.Operation)
}

func TestNewCacheService(t *testing.T) {
	mr := miniredis.RunT(t)
	host := mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	svc, err := NewCacheService(CacheConfig{Host: host, Port: port}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	mr.Close()
	_, err = NewCacheService(CacheConfig{Host: host, Port: port}, zap.NewNop())
	assert.Error(t, err)
}
