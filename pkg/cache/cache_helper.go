package cache

import (
	"context"
	"errors"
	"log"
)

// Helper loads a typed value through the cache, calling fn on a miss.
// Values produced by a failing fn are never stored.
type Helper[T any] struct {
	Cache *Cache
}

func NewHelper[T any](cache *Cache) *Helper[T] {
	return &Helper[T]{Cache: cache}
}

func (h *Helper[T]) Handle(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	if h.Cache == nil {
		return fn(ctx)
	}
	err := h.Cache.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrMiss) {
		log.Printf("cache read failed for %s: %v", key, err)
		if rmErr := h.Cache.Remove(ctx, key); rmErr != nil {
			log.Printf("failed to drop cache entry %s: %v", key, rmErr)
		}
	}
	out, err = fn(ctx)
	if err != nil {
		return out, err
	}
	if err := h.Cache.Set(ctx, key, out); err != nil {
		log.Printf("cache write failed for %s: %v", key, err)
	}
	return out, nil
}
