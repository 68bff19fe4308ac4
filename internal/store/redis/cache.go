// Package redis implements the generation-cache repository on Redis for
// deployments that share the cache across instances.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
)

const defaultPrefix = "llmcache"

// CacheRepository stores entries as JSON values carrying their own
// expires_at. Entries are deliberately written without a Redis TTL so that
// the raw GetByHash path can still observe expired entries; removal happens
// through DeleteExpired, exactly as with the SQL implementation.
type CacheRepository struct {
	client *redis.Client
	prefix string
}

func NewCacheRepository(client *redis.Client, prefix string) *CacheRepository {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &CacheRepository{client: client, prefix: prefix}
}

func (r *CacheRepository) key(hash string) string {
	return r.prefix + ":" + hash
}

func (r *CacheRepository) GetByHash(ctx context.Context, hash string) (*model.CacheEntry, error) {
	raw, err := r.client.Get(ctx, r.key(hash)).Bytes()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %s: %w", hash, err)
	}
	return &entry, nil
}

func (r *CacheRepository) ExistsValid(ctx context.Context, hash string, now time.Time) (bool, error) {
	entry, err := r.GetByHash(ctx, hash)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.ExpiresAt.After(now), nil
}

// Insert uses SETNX so the first writer wins under concurrent inserts for
// the same fingerprint.
func (r *CacheRepository) Insert(ctx context.Context, entry *model.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := r.client.SetNX(ctx, r.key(entry.InputHash), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	return nil
}

func (r *CacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64
	err := r.scan(ctx, func(key string, entry *model.CacheEntry) error {
		if entry.ExpiresAt.After(now) {
			return nil
		}
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return err
		}
		deleted++
		return nil
	})
	return deleted, err
}

func (r *CacheRepository) CountValid(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.scan(ctx, func(_ string, entry *model.CacheEntry) error {
		if entry.ExpiresAt.After(now) {
			count++
		}
		return nil
	})
	return count, err
}

func (r *CacheRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}

// scan walks all cache keys, decoding each entry. Corrupt values are skipped
// rather than failing the whole sweep.
func (r *CacheRepository) scan(ctx context.Context, fn func(key string, entry *model.CacheEntry) error) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := r.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis get failed: %w", err)
		}

		var entry model.CacheEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if err := fn(key, &entry); err != nil {
			return err
		}
	}
	return iter.Err()
}
