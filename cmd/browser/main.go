package main

import (
	"context"
	"log"
	"os"

	"github.com/matst80/product-browser/pkg/cache"
	"github.com/matst80/product-browser/pkg/catalog"
	"github.com/matst80/product-browser/pkg/common"
	"github.com/matst80/product-browser/pkg/config"
	"github.com/matst80/product-browser/pkg/paging"
	"github.com/matst80/product-browser/pkg/server"
	"github.com/matst80/product-browser/pkg/tracking"
	"github.com/matst80/product-browser/pkg/view"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	responseCache := cache.NewCache(cache.Options{
		Addr:      cfg.Cache.RedisUrl,
		Password:  cfg.Cache.RedisPassword,
		LocalSize: cfg.Cache.Size,
		TTL:       cfg.Cache.TTL,
	})
	if responseCache.HasRemote() {
		if err := responseCache.Ping(context.Background()); err != nil {
			log.Printf("Redis not reachable, continuing with local cache: %v", err)
		}
	}

	client := catalog.NewClient(cfg.Catalog.Url, cfg.Catalog.Timeout, catalog.WithUserAgent(cfg.Catalog.UserAgent))
	source := catalog.NewCachedSource(client, responseCache)
	paginator := paging.NewPaginator(cfg.Paging.ItemsPerPage, cfg.Paging.TotalItems, cfg.Paging.Radius)

	registry, err := view.NewRegistry(cfg.SessionLimit, source, paginator)
	if err != nil {
		log.Fatalf("Failed to create session registry: %v", err)
	}

	ws := &server.WebServer{
		Registry:        registry,
		EnableProfiling: cfg.EnableProfiling,
	}
	if responseCache.HasRemote() {
		ws.Health = responseCache.Ping
	}

	hooks := []common.ShutdownHook{}
	if cfg.RabbitUrl != "" {
		tracker, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			ws.Tracking = tracker
			hooks = append(hooks, common.CloserHook("tracking", tracker.Close))
		}
	}
	hooks = append(hooks, common.CloserHook("cache", responseCache.Close))

	log.Printf("catalog %s, %d items per page, %d pages", cfg.Catalog.Url, paginator.ItemsPerPage, paginator.TotalPages())

	srv := common.NewServerWithTimeouts(nil, cfg.Timeouts)
	srv.Addr = cfg.ListenAddress
	srv.Handler = ws.Handle()

	if err := common.RunServerWithShutdown(context.Background(), srv, "product browser", cfg.Timeouts, hooks...); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
