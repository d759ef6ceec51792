package facet

import (
	"strings"

	"github.com/matst80/product-browser/pkg/types"
)

// Predicate reports whether a product should stay in the result.
type Predicate func(p *types.Product) bool

// PredicateList is evaluated in order and stops at the first rejection.
type PredicateList []Predicate

func (l PredicateList) Match(p *types.Product) bool {
	for _, pred := range l {
		if !pred(p) {
			return false
		}
	}
	return true
}

func CategoryEquals(category string) Predicate {
	return func(p *types.Product) bool {
		return p.Category == category
	}
}

func PriceAtLeast(min float64) Predicate {
	return func(p *types.Product) bool {
		return p.Price >= min
	}
}

func PriceAtMost(max float64) Predicate {
	return func(p *types.Product) bool {
		return p.Price <= max
	}
}

func TitleContains(query string) Predicate {
	needle := strings.ToLower(query)
	return func(p *types.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	}
}

// FromCriteria builds the predicates for every dimension that is set,
// category first, then price bounds, then title search.
func FromCriteria(c *types.FilterCriteria) PredicateList {
	if c.IsEmpty() {
		return nil
	}
	ret := make(PredicateList, 0, 4)
	if c.Category != "" {
		ret = append(ret, CategoryEquals(c.Category))
	}
	if c.MinPrice != nil {
		ret = append(ret, PriceAtLeast(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		ret = append(ret, PriceAtMost(*c.MaxPrice))
	}
	if c.SearchQuery != "" {
		ret = append(ret, TitleContains(c.SearchQuery))
	}
	return ret
}

// Match returns a new slice with the products accepted by all predicates,
// keeping their original order. The input is never modified.
func Match(products []types.Product, c *types.FilterCriteria) []types.Product {
	preds := FromCriteria(c)
	ret := make([]types.Product, 0, len(products))
	for i := range products {
		if preds.Match(&products[i]) {
			ret = append(ret, products[i])
		}
	}
	return ret
}
