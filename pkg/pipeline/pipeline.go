// Package pipeline turns the last fetched product list into the list that is
// shown: filter by the visitor's criteria, then order by the sort mode.
package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/matst80/product-browser/pkg/facet"
	"github.com/matst80/product-browser/pkg/sorting"
	"github.com/matst80/product-browser/pkg/types"
)

var tracer = otel.Tracer("product-browser-pipeline")

// Apply never modifies products and always returns a non-nil slice.
func Apply(products []types.Product, criteria *types.FilterCriteria, mode types.SortMode) []types.Product {
	return sorting.Sort(facet.Match(products, criteria), mode)
}

func ApplyContext(ctx context.Context, products []types.Product, criteria *types.FilterCriteria, mode types.SortMode) []types.Product {
	_, span := tracer.Start(ctx, "pipeline.Apply")
	defer span.End()
	ret := Apply(products, criteria, mode)
	span.SetAttributes(
		attribute.Int("products.in", len(products)),
		attribute.Int("products.out", len(ret)),
		attribute.String("sort", string(mode)),
	)
	return ret
}
