package ratematrix

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/pkg/redis"
)

const previewScope = "preview"

// Cache stores computed matrices in redis. Keys hash the whole engine input plus the engine
// fingerprint, so any configuration edit lands on a new key.
type Cache struct {
	store redis.MatrixStore
	ttl   time.Duration
}

// NewCache returns nil when store is nil, which disables caching.
func NewCache(store redis.MatrixStore, ttl time.Duration) *Cache {
	if store == nil {
		return nil
	}
	return &Cache{store: store, ttl: ttl}
}

func (c *Cache) key(scope string, in pricing.Input, fingerprint string) (string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode cache key input: %w", err)
	}
	sum := sha256.New()
	sum.Write(payload)
	sum.Write([]byte{0})
	sum.Write([]byte(fingerprint))
	return c.store.MatrixKey(scope, hex.EncodeToString(sum.Sum(nil))), nil
}

// get returns (nil, nil) on a miss.
func (c *Cache) get(ctx context.Context, key string) (*pricing.Matrix, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if redis.IsMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	var matrix pricing.Matrix
	if err := json.Unmarshal([]byte(raw), &matrix); err != nil {
		return nil, fmt.Errorf("decode cached matrix: %w", err)
	}
	return &matrix, nil
}

func (c *Cache) put(ctx context.Context, key string, matrix *pricing.Matrix) error {
	payload, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("encode matrix: %w", err)
	}
	return c.store.Set(ctx, key, string(payload), c.ttl)
}
