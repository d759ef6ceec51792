package sorting

import (
	"cmp"
	"slices"

	"github.com/matst80/product-browser/pkg/types"
)

type compareFunc func(a, b types.Product) int

func byPriceAsc(a, b types.Product) int {
	return cmp.Compare(a.Price, b.Price)
}

func byPriceDesc(a, b types.Product) int {
	return cmp.Compare(b.Price, a.Price)
}

func byRatingDesc(a, b types.Product) int {
	return cmp.Compare(b.Rating, a.Rating)
}

var sortMethods = map[types.SortMode]compareFunc{
	types.SortCheap:     byPriceAsc,
	types.SortExpensive: byPriceDesc,
	types.SortPopular:   byRatingDesc,
}

// Sort returns the products ordered by mode. Equal keys keep their fetch
// order and SortAll returns the fetch order unchanged.
func Sort(products []types.Product, mode types.SortMode) []types.Product {
	ret := slices.Clone(products)
	if ret == nil {
		ret = []types.Product{}
	}
	if fn, ok := sortMethods[mode]; ok {
		slices.SortStableFunc(ret, fn)
	}
	return ret
}
