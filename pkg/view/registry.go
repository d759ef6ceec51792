package view

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/product-browser/pkg/catalog"
	"github.com/matst80/product-browser/pkg/paging"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "productbrowser_active_sessions",
	Help: "Browsing sessions held in memory",
})

// Registry hands out one View per session, forgetting the least recently
// used sessions when full.
type Registry struct {
	mu        sync.Mutex
	views     *lru.Cache[string, *View]
	source    catalog.Source
	paginator *paging.Paginator
}

func NewRegistry(size int, source catalog.Source, paginator *paging.Paginator) (*Registry, error) {
	if size <= 0 {
		size = 4096
	}
	views, err := lru.New[string, *View](size)
	if err != nil {
		return nil, err
	}
	return &Registry{views: views, source: source, paginator: paginator}, nil
}

func (r *Registry) Get(sessionId string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views.Get(sessionId); ok {
		return v
	}
	v := New(r.source, r.paginator)
	r.views.Add(sessionId, v)
	activeSessions.Set(float64(r.Len()))
	return v
}

func (r *Registry) Len() int {
	return r.views.Len()
}
