package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/product-browser/pkg/common"
	"github.com/matst80/product-browser/pkg/common/jsoncompat"
	"github.com/matst80/product-browser/pkg/paging"
	"github.com/matst80/product-browser/pkg/types"
	"github.com/matst80/product-browser/pkg/view"
)

type stubSource struct {
	mu       sync.Mutex
	skips    []int
	keywords []string
	fail     bool
}

func (s *stubSource) Page(ctx context.Context, skip, limit int) (*types.ProductList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips = append(s.skips, skip)
	if s.fail {
		return nil, errors.New("catalog offline")
	}
	return &types.ProductList{Products: []types.Product{
		{Id: "1", Title: "Essence Mascara", Price: 9.99, Category: "beauty", Rating: 4.9, Thumbnail: "https://cdn/1.png"},
		{Id: "2", Title: "Eyeshadow Palette", Price: 19.99, Category: "beauty", Rating: 3.2},
		{Id: "3", Title: "Wooden Bed", Price: 1899.99, Category: "furniture", Rating: 4.1},
	}}, nil
}

func (s *stubSource) Search(ctx context.Context, keyword string) (*types.ProductList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = append(s.keywords, keyword)
	return &types.ProductList{Products: []types.Product{{Id: "9", Title: "Phone " + keyword, Price: 499}}}, nil
}

func newTestServer(t *testing.T, src *stubSource) *WebServer {
	t.Helper()
	p := paging.DefaultPaginator()
	reg, err := view.NewRegistry(16, src, p)
	require.NoError(t, err)
	return &WebServer{Registry: reg}
}

func getJson(t *testing.T, h http.Handler, target string, cookie *http.Cookie) (view.Snapshot, *http.Cookie) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var snap view.Snapshot
	require.NoError(t, jsoncompat.Unmarshal(w.Body.Bytes(), &snap))
	for _, c := range w.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			cookie = c
		}
	}
	return snap, cookie
}

func TestProductsFilterAndSort(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(t, src).Handle()

	snap, cookie := getJson(t, h, "/api/products?category=beauty&sort=cheap", nil)
	require.NotNil(t, cookie)
	require.Len(t, snap.Products, 2)
	assert.Equal(t, types.ProductId("1"), snap.Products[0].Id)
	assert.Equal(t, types.ProductId("2"), snap.Products[1].Id)
	assert.Equal(t, 9, snap.TotalPages)

	// re-sorting the same session does not refetch
	snap, _ = getJson(t, h, "/api/products?sort=popular", cookie)
	assert.Equal(t, types.ProductId("1"), snap.Products[0].Id)
	assert.Len(t, snap.Products, 3)
	assert.Equal(t, []int{0}, src.skips)
}

func TestProductsPageChange(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(t, src).Handle()

	snap, cookie := getJson(t, h, "/api/products", nil)
	assert.Equal(t, 1, snap.Page)

	snap, _ = getJson(t, h, "/api/products?page=5", cookie)
	assert.Equal(t, 5, snap.Page)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, pageNumbers(snap.Controls))

	snap, _ = getJson(t, h, "/api/products?page=10", cookie)
	assert.Equal(t, 5, snap.Page)
	snap, _ = getJson(t, h, "/api/products?page=-1", cookie)
	assert.Equal(t, 5, snap.Page)

	assert.Equal(t, []int{0, 48}, src.skips)
}

func pageNumbers(c paging.Controls) []int {
	ret := []int{}
	for _, b := range c.Pages {
		ret = append(ret, b.Page)
	}
	return ret
}

func TestProductsKeywordSearch(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(t, src).Handle()

	snap, _ := getJson(t, h, "/api/products?keyword=iphone", nil)
	assert.Equal(t, []string{"iphone"}, src.keywords)
	assert.Empty(t, src.skips)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "iphone", snap.Keyword)
	assert.Equal(t, 9, snap.TotalPages)
}

func TestProductsKeepsStaleListOnFailure(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(t, src).Handle()

	_, cookie := getJson(t, h, "/api/products", nil)
	src.fail = true
	snap, _ := getJson(t, h, "/api/products?page=2", cookie)
	assert.Len(t, snap.Products, 3)
	assert.True(t, snap.Stale)
	assert.Equal(t, 2, snap.Page)
}

func TestProductsBadRequest(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(t, src).Handle()
	for _, query := range []string{"max=lots", "min=NaN", "max=NaN", "min=Inf", "max=-Inf"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
	assert.Empty(t, src.skips)
}

func TestApiRejectsOtherMethods(t *testing.T) {
	h := newTestServer(t, &stubSource{}).Handle()
	for _, target := range []string{"/api/products", "/api/blogs"} {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method+" "+target)
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	r.Header.Set("Origin", "https://shop.example")
	h.ServeHTTP(w, r)
	assert.Less(t, w.Code, 300)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestPageRendersHtml(t *testing.T) {
	h := newTestServer(t, &stubSource{}).Handle()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?q=mascara&sort=expensive", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, body, "Essence Mascara")
	assert.NotContains(t, body, "Wooden Bed")
	assert.Contains(t, body, "$9.99")
	assert.Contains(t, body, `<summary class="pill">expensive</summary>`)
	assert.Contains(t, body, ">Expensive</a>")
	assert.Contains(t, body, "Popular Blogs")
	assert.Contains(t, body, "Traveling the World as a Digital Nomad")
	assert.Contains(t, body, "page=2")
}

func TestBlogsEndpoint(t *testing.T) {
	h := newTestServer(t, &stubSource{}).Handle()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mindfulness and Mental Health")
}

func TestHealth(t *testing.T) {
	ws := newTestServer(t, &stubSource{})
	h := ws.Handle()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	ws.Health = func(ctx context.Context) error { return errors.New("redis down") }
	h = ws.Handle()
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
