package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/infrastructure/db/redis"
)

func TestProductCache_RedisUp(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redis.Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}
	rdb := redis.NewClient(cfg)
	t.Cleanup(func() { _ = rdb.Close() })

	if cache := productCache(context.Background(), rdb, cfg, time.Minute, zerolog.Nop()); cache == nil {
		t.Fatal("expected a cache when redis answers")
	}
}

func TestProductCache_RedisDownStartsWithoutCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redis.Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}
	mr.Close()
	rdb := redis.NewClient(cfg)
	t.Cleanup(func() { _ = rdb.Close() })

	var buf bytes.Buffer
	cache := productCache(context.Background(), rdb, cfg, time.Minute, zerolog.New(&buf))

	if cache != nil {
		t.Fatalf("expected nil cache, got %T", cache)
	}
	if !strings.Contains(buf.String(), "product cache disabled") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}
