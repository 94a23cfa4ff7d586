package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{
		"JWT_SECRET": "s3cret",
		"MONGO_URI":  "mongodb://localhost:27017",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Mongo.Database != "catalog" {
		t.Errorf("expected catalog database, got %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 || cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{
		"PORT":             "9090",
		"ENV":              "production",
		"JWT_SECRET":       "s3cret",
		"MONGO_URI":        "mongodb://db:27017",
		"MONGO_DB":         "shop",
		"REDIS_DB":         "2",
		"CACHE_TTL":        "30s",
		"SHUTDOWN_TIMEOUT": "3s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || !cfg.IsProduction() || cfg.Mongo.Database != "shop" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.DB != 2 || cfg.Redis.CacheTTL != 30*time.Second || cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("typed overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	cases := map[string]map[string]string{
		"no secret":    {"MONGO_URI": "mongodb://localhost:27017"},
		"no mongo uri": {"JWT_SECRET": "s3cret"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), env)
			if !errors.Is(err, envconfig.ErrMissingRequired) {
				t.Fatalf("expected ErrMissingRequired, got %v", err)
			}
		})
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	_, err := LoadFrom(context.Background(), map[string]string{
		"JWT_SECRET": "s3cret",
		"MONGO_URI":  "mongodb://localhost:27017",
		"CACHE_TTL":  "soon",
	})
	if err == nil {
		t.Fatal("expected parse error for CACHE_TTL")
	}
}
