package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/matst80/product-browser/pkg/common/jsoncompat"
	"github.com/matst80/product-browser/pkg/types"
)

const (
	DefaultBaseUrl   = "https://dummyjson.com"
	DefaultUserAgent = "product-browser/1.0"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productbrowser_catalog_requests_total",
		Help: "Catalog requests by kind",
	}, []string{"kind"})
	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productbrowser_catalog_errors_total",
		Help: "Failed catalog requests by kind",
	}, []string{"kind"})
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "productbrowser_catalog_request_seconds",
		Help:    "Catalog request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
)

var tracer = otel.Tracer("product-browser-catalog")

// StatusError is returned when the catalog answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Url        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.Url)
}

type Client struct {
	baseUrl   string
	client    *http.Client
	userAgent string
}

type ClientOption func(*Client)

func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

func NewClient(baseUrl string, timeout time.Duration, opts ...ClientOption) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	c := &Client{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) PageUrl(skip, limit int) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(max(skip, 0)))
	return c.baseUrl + "/products?" + params.Encode()
}

func (c *Client) SearchUrl(keyword string) string {
	params := url.Values{}
	params.Set("q", keyword)
	return c.baseUrl + "/products/search?" + params.Encode()
}

func (c *Client) Page(ctx context.Context, skip, limit int) (*types.ProductList, error) {
	return c.fetch(ctx, "page", c.PageUrl(skip, limit))
}

func (c *Client) Search(ctx context.Context, keyword string) (*types.ProductList, error) {
	return c.fetch(ctx, "search", c.SearchUrl(keyword))
}

func (c *Client) fetch(ctx context.Context, kind, endpoint string) (*types.ProductList, error) {
	ctx, span := tracer.Start(ctx, "catalog."+kind)
	defer span.End()
	span.SetAttributes(attribute.String("url", endpoint))

	fetchTotal.WithLabelValues(kind).Inc()
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	res, err := c.get(ctx, endpoint)
	if err != nil {
		fetchErrors.WithLabelValues(kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("products", res.Len()))
	return res, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*types.ProductList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Url: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	var list types.ProductList
	if err := jsoncompat.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if list.Products == nil {
		list.Products = []types.Product{}
	}
	return &list, nil
}
