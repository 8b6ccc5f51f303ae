package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/ratewise-backend/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMatrixRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.MatrixKey("hotel-1", "abc123")
	require.NoError(t, client.Set(ctx, key, `{"mode":"FORWARD"}`, 10*time.Minute))
	require.Equal(t, 10*time.Minute, mock.ttls[key])

	value, err := client.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `{"mode":"FORWARD"}`, value)

	require.NoError(t, client.Del(ctx, key))
	_, err = client.Get(ctx, key)
	require.True(t, IsMiss(err))
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	require.Equal(t, "rw:matrix:hotel-1:abc", client.MatrixKey("hotel-1", "abc"))
	require.Equal(t, "rw:matrix:abc", client.MatrixKey("", "abc"), "empty parts are skipped")
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	_, err := client.Get(ctx, "k")
	require.ErrorIs(t, err, errNotInitialized)
	require.ErrorIs(t, client.Set(ctx, "k", "v", 0), errNotInitialized)
	require.ErrorIs(t, client.Ping(ctx), errNotInitialized)
	require.NoError(t, client.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		PoolSize: 7,
		DB:       2,
	})
	require.NoError(t, err)
	require.Equal(t, "localhost:6379", opts.Addr)
	require.Equal(t, 7, opts.PoolSize)
	require.Equal(t, 2, opts.DB)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://cache:6380/3", PoolSize: 5})
	require.NoError(t, err)
	require.Equal(t, "cache:6380", opts.Addr)
	require.Equal(t, 3, opts.DB)
	require.Equal(t, 5, opts.PoolSize)
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
