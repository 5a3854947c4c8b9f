package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "tm:"
	// defaultTagTTL outlives every entry TTL so a tag set never expires before its members.
	defaultTagTTL = 2 * time.Hour
	pingTimeout   = 3 * time.Second
)

// RedisStore is a Store backed by Redis. Tags are Redis sets of member keys.
type RedisStore struct {
	client *redis.Client
	prefix string
	tagTTL time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: defaultKeyPrefix, tagTTL: defaultTagTTL}
}

// ConnectRedis parses a redis:// URL and verifies the server answers a PING.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", opts.Addr, err)
	}
	return client, nil
}

func (r *RedisStore) key(k string) string    { return r.prefix + k }
func (r *RedisStore) tagKey(t string) string { return r.prefix + "tag:" + t }

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Store.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	full := r.key(key)
	tagTTL := max(ttl, r.tagTTL)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, full, value, ttl)
	for _, tag := range tags {
		tk := r.tagKey(tag)
		pipe.SAdd(ctx, tk, full)
		pipe.Expire(ctx, tk, tagTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// InvalidateTags implements Store.
func (r *RedisStore) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		tk := r.tagKey(tag)
		members, err := r.client.SMembers(ctx, tk).Result()
		if err != nil {
			return fmt.Errorf("redis tag members %s: %w", tag, err)
		}
		if err := r.client.Del(ctx, append(members, tk)...).Err(); err != nil {
			return fmt.Errorf("redis invalidate %s: %w", tag, err)
		}
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
