package server

import (
	"context"
	"log"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matst80/product-browser/pkg/common"
	"github.com/matst80/product-browser/pkg/types"
	"github.com/matst80/product-browser/pkg/view"
)

var (
	pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productbrowser_page_views_total",
		Help: "Rendered product pages by format",
	}, []string{"format"})
	badRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productbrowser_bad_requests_total",
		Help: "Requests rejected because the query could not be decoded",
	})
)

type WebServer struct {
	Registry        *view.Registry
	Tracking        types.Tracking
	EnableProfiling bool
	// Health is checked by /health when set.
	Health func(ctx context.Context) error
}

// browse brings the session view up to date with the request and returns the
// filtered and sorted result. A failed fetch still yields the previous list.
func (ws *WebServer) browse(ctx context.Context, sessionId string, req *BrowseRequest) view.Snapshot {
	v := ws.Registry.Get(sessionId)

	refresh := !v.Loaded() || v.LastError() != nil
	if v.SetKeyword(req.Keyword) {
		refresh = true
	}
	if req.Page != 0 && v.ChangePage(req.Page) {
		refresh = true
	}
	if refresh {
		// the error is logged and counted by the view, the stale list is still rendered
		_ = v.Refresh(ctx)
	}
	return v.Snapshot(ctx, req.FilterCriteria, req.SortMode())
}

func (ws *WebServer) track(sessionId string, req *BrowseRequest, snap view.Snapshot, r *http.Request) {
	if ws.Tracking == nil {
		return
	}
	go ws.Tracking.TrackBrowse(sessionId, types.BrowseEvent{
		Filters:         req.FilterCriteria,
		Sort:            snap.Sort,
		Page:            snap.Page,
		NumberOfResults: len(snap.Products),
		Stale:           snap.Stale,
	}, r)
}

func (ws *WebServer) Handle() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if ws.Health != nil {
			if err := ws.Health(r.Context()); err != nil {
				log.Printf("health check failed: %v", err)
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", ws.Page)
	mux.HandleFunc("GET /api/products", common.JsonHandler(ws.Tracking, ws.Products))
	mux.HandleFunc("GET /api/blogs", common.JsonHandler(ws.Tracking, ws.Blogs))
	mux.HandleFunc("OPTIONS /api/", common.RespondToOptions)

	if ws.EnableProfiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}
