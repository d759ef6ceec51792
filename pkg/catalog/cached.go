package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/matst80/product-browser/pkg/cache"
	"github.com/matst80/product-browser/pkg/types"
)

// CachedSource serves repeated page and search requests from the cache.
// A broken cache only costs a round trip to the wrapped source.
type CachedSource struct {
	source Source
	helper *cache.Helper[*types.ProductList]
}

func NewCachedSource(source Source, c *cache.Cache) *CachedSource {
	return &CachedSource{
		source: source,
		helper: cache.NewHelper[*types.ProductList](c),
	}
}

func PageKey(skip, limit int) string {
	return fmt.Sprintf("catalog:page:%d:%d", skip, limit)
}

func SearchKey(keyword string) string {
	return "catalog:search:" + strings.ToLower(strings.TrimSpace(keyword))
}

func (s *CachedSource) Page(ctx context.Context, skip, limit int) (*types.ProductList, error) {
	return s.helper.Handle(ctx, PageKey(skip, limit), func(ctx context.Context) (*types.ProductList, error) {
		return s.source.Page(ctx, skip, limit)
	})
}

func (s *CachedSource) Search(ctx context.Context, keyword string) (*types.ProductList, error) {
	return s.helper.Handle(ctx, SearchKey(keyword), func(ctx context.Context) (*types.ProductList, error) {
		return s.source.Search(ctx, keyword)
	})
}
