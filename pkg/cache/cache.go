package cache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/matst80/product-browser/pkg/common/jsoncompat"
)

var ErrMiss = errors.New("cache miss")

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productbrowser_cache_hits_total",
		Help: "Cache hits by tier",
	}, []string{"tier"})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productbrowser_cache_misses_total",
		Help: "Lookups not found in any cache tier",
	})
)

type Options struct {
	// Addr of the shared redis, empty keeps the cache process local.
	Addr      string
	Password  string
	DB        int
	LocalSize int
	TTL       time.Duration
}

// Cache is a two tier cache: an in-process expiring LRU in front of an
// optional redis.
type Cache struct {
	client *redis.Client
	local  *expirable.LRU[string, []byte]
	ttl    time.Duration
}

func NewCache(opts Options) *Cache {
	if opts.LocalSize <= 0 {
		opts.LocalSize = 512
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	c := &Cache{
		local: expirable.NewLRU[string, []byte](opts.LocalSize, nil, opts.TTL),
		ttl:   opts.TTL,
	}
	if opts.Addr != "" {
		c.client = redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
	}
	return c
}

func (c *Cache) HasRemote() bool {
	return c.client != nil
}

func (c *Cache) GetRaw(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.local.Get(key); ok {
		cacheHits.WithLabelValues("local").Inc()
		return data, nil
	}
	if c.client == nil {
		cacheMisses.Inc()
		return nil, ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheMisses.Inc()
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	cacheHits.WithLabelValues("redis").Inc()
	c.local.Add(key, data)
	return data, nil
}

func (c *Cache) SetRaw(ctx context.Context, key string, data []byte) error {
	c.local.Add(key, data)
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	data, err := c.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal(data, out)
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return c.SetRaw(ctx, key, data)
}

func (c *Cache) Remove(ctx context.Context, key string) error {
	c.local.Remove(key)
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	c.local.Purge()
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
