package server

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matst80/product-browser/pkg/blogs"
	"github.com/matst80/product-browser/pkg/common"
	"github.com/matst80/product-browser/pkg/common/jsoncompat"
	"github.com/matst80/product-browser/pkg/types"
	"github.com/matst80/product-browser/pkg/view"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}).ParseFS(templateFiles, "templates/page.html"))

type link struct {
	Label   string
	Href    string
	Active  bool
	Enabled bool
}

type pageModel struct {
	Snapshot    view.Snapshot
	Criteria    types.FilterCriteria
	SortLabel   string
	SortOptions []link
	Previous    link
	Next        link
	Pages       []link
	Blogs       []blogs.Post
}

func withParam(query url.Values, key, value string) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set(key, value)
	return "?" + q.Encode()
}

func makePageModel(snap view.Snapshot, req *BrowseRequest, query url.Values) pageModel {
	// page links must not carry a page the visitor already left
	query.Del("page")
	m := pageModel{
		Snapshot:  snap,
		Criteria:  *req.FilterCriteria,
		SortLabel: snap.Sort.ButtonLabel(),
		Blogs:     blogs.Popular(),
	}
	for _, mode := range types.SortModes {
		m.SortOptions = append(m.SortOptions, link{
			Label:   mode.Label(),
			Href:    withParam(query, "sort", string(mode)),
			Active:  mode == snap.Sort,
			Enabled: true,
		})
	}
	c := snap.Controls
	m.Previous = link{Label: "Previous", Href: withParam(query, "page", strconv.Itoa(c.Previous.Page)), Enabled: c.Previous.Enabled}
	m.Next = link{Label: "Next", Href: withParam(query, "page", strconv.Itoa(c.Next.Page)), Enabled: c.Next.Enabled}
	for _, b := range c.Pages {
		m.Pages = append(m.Pages, link{
			Label:   strconv.Itoa(b.Page),
			Href:    withParam(query, "page", strconv.Itoa(b.Page)),
			Active:  b.Current,
			Enabled: b.Enabled,
		})
	}
	return m
}

// Page renders the product grid as html.
func (ws *WebServer) Page(w http.ResponseWriter, r *http.Request) {
	sessionId := common.HandleSessionCookie(ws.Tracking, w, r)
	req, err := GetBrowseRequest(r)
	if err != nil {
		badRequests.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := ws.browse(r.Context(), sessionId, req)
	pageViews.WithLabelValues("html").Inc()
	ws.track(sessionId, req, snap, r)

	common.PrivateHeaders(w, r, "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if err := pageTemplate.Execute(w, makePageModel(snap, req, r.URL.Query())); err != nil {
		log.Printf("failed to render page: %v", err)
	}
}

// Products returns the same result as Page as json.
func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	req, err := GetBrowseRequest(r)
	if err != nil {
		badRequests.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	snap := ws.browse(r.Context(), sessionId, req)
	pageViews.WithLabelValues("json").Inc()
	ws.track(sessionId, req, snap, r)

	common.PrivateHeaders(w, r, "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(snap)
}

func (ws *WebServer) Blogs(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	common.PublicHeaders(w, r, "application/json; charset=UTF-8", "3600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(blogs.Popular())
}
