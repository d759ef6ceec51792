// Package view keeps the browsing state of one visitor: the last accepted
// product list, the current page and the active search keyword.
package view

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/product-browser/pkg/catalog"
	"github.com/matst80/product-browser/pkg/paging"
	"github.com/matst80/product-browser/pkg/pipeline"
	"github.com/matst80/product-browser/pkg/types"
)

var (
	staleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productbrowser_stale_responses_total",
		Help: "Catalog responses dropped because a newer request was issued",
	})
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productbrowser_refresh_failures_total",
		Help: "Refreshes that kept the previous product list because the fetch failed",
	})
)

type View struct {
	mu        sync.Mutex
	source    catalog.Source
	paginator *paging.Paginator

	products []types.Product
	page     int
	keyword  string
	loaded   bool
	// seq is bumped for every refresh, only the latest may assign products
	seq       uint64
	lastError error
	updated   time.Time
}

func New(source catalog.Source, paginator *paging.Paginator) *View {
	if paginator == nil {
		paginator = paging.DefaultPaginator()
	}
	return &View{
		source:    source,
		paginator: paginator,
		products:  []types.Product{},
		page:      1,
	}
}

func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// ChangePage moves to requested when it is a valid page. It reports whether
// the page changed and a refresh is needed.
func (v *View) ChangePage(requested int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	page, changed := v.paginator.ChangePage(v.page, requested)
	v.page = page
	return changed
}

// SetKeyword switches between search mode (non empty keyword) and paged
// listing. The current page is kept.
func (v *View) SetKeyword(keyword string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if keyword == v.keyword {
		return false
	}
	v.keyword = keyword
	return true
}

// Refresh fetches the products for the current page or keyword. On failure
// the previously shown products stay in place. Responses that arrive after a
// newer Refresh was started are dropped.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	token := v.seq
	page, keyword := v.page, v.keyword
	skip, limit := v.paginator.Skip(page), v.paginator.ItemsPerPage
	v.mu.Unlock()

	var res *types.ProductList
	var err error
	if keyword != "" {
		res, err = v.source.Search(ctx, keyword)
	} else {
		res, err = v.source.Page(ctx, skip, limit)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.seq {
		staleResponses.Inc()
		log.Printf("dropping stale catalog response for page %d keyword %q", page, keyword)
		return nil
	}
	if err != nil {
		refreshFailures.Inc()
		v.lastError = err
		log.Printf("failed to fetch products (page %d, keyword %q): %v", page, keyword, err)
		return err
	}
	v.products = []types.Product{}
	if res != nil && res.Products != nil {
		v.products = res.Products
	}
	v.loaded = true
	v.lastError = nil
	v.updated = time.Now()
	return nil
}

type Snapshot struct {
	Products   []types.Product `json:"products"`
	Controls   paging.Controls `json:"pagination"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Keyword    string          `json:"keyword,omitempty"`
	Sort       types.SortMode  `json:"sort"`
	Loaded     bool            `json:"loaded"`
	Stale      bool            `json:"stale,omitempty"`
	Fetched    int             `json:"fetched"`
	Updated    time.Time       `json:"updated"`
}

// Snapshot filters and sorts the current product list. The stored list is
// copied under the lock so the pipeline runs without holding it.
func (v *View) Snapshot(ctx context.Context, criteria *types.FilterCriteria, mode types.SortMode) Snapshot {
	v.mu.Lock()
	products := slices.Clone(v.products)
	page := v.page
	ret := Snapshot{
		Page:       page,
		TotalPages: v.paginator.TotalPages(),
		Controls:   v.paginator.Buttons(page),
		Keyword:    v.keyword,
		Sort:       mode,
		Loaded:     v.loaded,
		Stale:      v.lastError != nil,
		Fetched:    len(v.products),
		Updated:    v.updated,
	}
	v.mu.Unlock()

	ret.Products = pipeline.ApplyContext(ctx, products, criteria, mode)
	return ret
}

func (v *View) LastError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastError
}
