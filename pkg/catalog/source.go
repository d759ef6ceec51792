// Package catalog fetches products from a dummyjson compatible catalog API.
package catalog

import (
	"context"

	"github.com/matst80/product-browser/pkg/types"
)

// Source provides pages of products or the results of a keyword search.
// Page returns limit products starting at offset skip.
type Source interface {
	Page(ctx context.Context, skip, limit int) (*types.ProductList, error)
	Search(ctx context.Context, keyword string) (*types.ProductList, error)
}
