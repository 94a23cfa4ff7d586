// @title           Catalog API
// @version         1.0
// @description     Multi-tenant product catalog with JWT authentication and role-gated mutation.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/core/service"
	"github.com/storefront/catalog-api/internal/infrastructure/db/mongo"
	"github.com/storefront/catalog-api/internal/infrastructure/db/redis"
	"github.com/storefront/catalog-api/internal/pkg/config"
	"github.com/storefront/catalog-api/pkg/logger"
)

func main() {
	// A missing .env is fine; the real environment wins either way.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "catalog-api",
	})

	if err := run(ctx, cfg); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("catalog api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	tokens, err := service.NewTokenService(cfg.JWTSecret, service.DefaultTokenTTL)
	if err != nil {
		return err
	}

	// --- Persistence ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongo.NewUserRepository(db)
	products := mongo.NewProductRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, products); err != nil {
		return err
	}

	redisCfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	rdb := redis.NewClient(redisCfg)
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()
	cache := productCache(ctx, rdb, redisCfg, cfg.Redis.CacheTTL, log)

	// --- Services ---
	authService := service.NewAuthService(users, tokens, log.With().Str("component", "auth").Logger())
	productService := service.NewProductService(
		products,
		cache,
		log.With().Str("component", "catalog").Logger(),
	)

	router := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Products: productService,
		Tokens:   tokens,
		Users:    users,
		Readiness: map[string]handler.PingFunc{
			"mongodb": handler.MongoPing(mongoClient),
			"redis":   handler.RedisPing(rdb),
		},
		Logger: log,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("shutdown complete")
	return nil
}

// productCache returns the Redis product cache, or nil when Redis does not
// answer at startup. The catalog then reads straight from Mongo and readiness
// reports redis as down.
func productCache(ctx context.Context, rdb *goredis.Client, cfg redis.Config, ttl time.Duration, log zerolog.Logger) ports.ProductCache {
	if err := redis.Ping(ctx, rdb, cfg); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, product cache disabled")
		return nil
	}
	log.Info().Str("addr", cfg.Addr).Msg("connected to redis")
	return redis.NewProductCache(rdb, ttl)
}
