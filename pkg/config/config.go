package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matst80/product-browser/pkg/common"
	"github.com/matst80/product-browser/pkg/types"
)

type Config struct {
	ListenAddress   string
	EnableProfiling bool
	Country         string
	Catalog         CatalogConfig
	Paging          PagingConfig
	Cache           CacheConfig
	RabbitUrl       string
	SessionLimit    int
	Timeouts        common.TimeoutConfig
}

type CatalogConfig struct {
	Url       string
	Timeout   time.Duration
	UserAgent string
}

type PagingConfig struct {
	ItemsPerPage int
	TotalItems   int
	Radius       int
}

type CacheConfig struct {
	RedisUrl      string
	RedisPassword string
	TTL           time.Duration
	Size          int
}

// Load reads an optional .env file, then the environment and finally the
// command line flags in args.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("product-browser", flag.ContinueOnError)
	profiling := fs.Bool("profiling", false, "enable profiling endpoints")
	listen := fs.String("listen", "", "listen address, overrides LISTEN_ADDRESS")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenAddress:   listenAddress(firstNonEmpty(*listen, os.Getenv("LISTEN_ADDRESS"), os.Getenv("PORT"), ":8080")),
		EnableProfiling: *profiling || envBool("ENABLE_PROFILING", false),
		Country:         firstNonEmpty(os.Getenv("COUNTRY"), "se"),
		Catalog: CatalogConfig{
			Url:       firstNonEmpty(os.Getenv("CATALOG_URL"), "https://dummyjson.com"),
			Timeout:   envSeconds("CATALOG_TIMEOUT", 10*time.Second),
			UserAgent: strings.TrimSpace(os.Getenv("CATALOG_USER_AGENT")),
		},
		Paging: PagingConfig{
			ItemsPerPage: envInt("ITEMS_PER_PAGE", types.DefaultItemsPerPage),
			TotalItems:   envInt("TOTAL_ITEMS", types.DefaultTotalItems),
			Radius:       envInt("PAGE_RADIUS", types.DefaultPageRadius),
		},
		Cache: CacheConfig{
			RedisUrl:      strings.TrimSpace(os.Getenv("REDIS_URL")),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			TTL:           envSeconds("CACHE_TTL", 5*time.Minute),
			Size:          envInt("CACHE_SIZE", 512),
		},
		RabbitUrl:    strings.TrimSpace(firstNonEmpty(os.Getenv("RABBIT_URL"), os.Getenv("RABBIT_HOST"))),
		SessionLimit: envInt("SESSION_LIMIT", 4096),
		Timeouts:     common.LoadTimeoutConfig(common.DefaultTimeoutConfig()),
	}
	return cfg, nil
}

func listenAddress(v string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, ":") {
		return v
	}
	return ":" + v
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if n := envInt(key, -1); n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
