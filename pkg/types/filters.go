package types

import "strings"

// FilterCriteria is the set of filters the visitor has selected. Empty
// strings and nil bounds mean the dimension is not filtered.
type FilterCriteria struct {
	SearchQuery string   `json:"query,omitempty" schema:"q"`
	Category    string   `json:"category,omitempty" schema:"category"`
	MinPrice    *float64 `json:"minPrice,omitempty" schema:"min"`
	MaxPrice    *float64 `json:"maxPrice,omitempty" schema:"max"`
	Keyword     string   `json:"keyword,omitempty" schema:"keyword"`
}

func (f *FilterCriteria) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.SearchQuery == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// Normalize trims the free text fields so a blank input acts as unset.
func (f *FilterCriteria) Normalize() {
	f.SearchQuery = strings.TrimSpace(f.SearchQuery)
	f.Category = strings.TrimSpace(f.Category)
	f.Keyword = strings.TrimSpace(f.Keyword)
}
