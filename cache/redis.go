package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pricescout/search"
)

// Redis is a Store backed by a shared redis instance, for running more
// than one replica behind a load balancer. Expiry is enforced
// server-side through the TTL on SET.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedis(cfg RedisConfig, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]search.ScoredItem, bool) {
	val, err := r.client.Get(ctx, "results:"+key).Bytes()
	if err != nil {
		return nil, false
	}

	var items []search.ScoredItem
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (r *Redis) Set(ctx context.Context, key string, items []search.ScoredItem) error {
	val, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return r.client.Set(ctx, "results:"+key, val, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
