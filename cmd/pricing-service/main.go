package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tailtown/pricingservice/internal/api"
	"github.com/tailtown/pricingservice/internal/cache"
	"github.com/tailtown/pricingservice/internal/config"
	"github.com/tailtown/pricingservice/internal/events"
	"github.com/tailtown/pricingservice/internal/health"
	"github.com/tailtown/pricingservice/internal/log"
	"github.com/tailtown/pricingservice/internal/metrics"
	"github.com/tailtown/pricingservice/internal/repository/postgres"
	"github.com/tailtown/pricingservice/internal/retry"
	"github.com/tailtown/pricingservice/internal/service"
	"github.com/tailtown/pricingservice/internal/tracing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pricing-service: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := log.Init(cfg.Log.Level); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	logger := log.L(context.Background())

	if cfg.Tracing.Enabled {
		cleanup, err := tracing.Init(tracing.Config{
			ServiceName:    cfg.AppName,
			ServiceVersion: "1.0.0",
			Environment:    os.Getenv("ENVIRONMENT"),
			JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
			SamplingRatio:  cfg.Tracing.SamplingRatio,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		defer cleanup()
	}

	pool, err := connectDatabase(cfg, logger)
	if err != nil {
		return err
	}
	store, err := postgres.NewStoreWithPool(pool)
	if err != nil {
		return err
	}
	defer store.Close()

	var (
		c           *cache.Cache
		redisClient *redis.Client
	)
	c, err = cache.NewCache(cfg.Redis.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		c = nil
	} else {
		redisClient = c.Client()
		defer c.Close()
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ConfigTopic, cfg.Kafka.QuoteTopic, logger)
		if err != nil {
			return fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		publisher = kp
	}
	defer publisher.Close()

	quotes := service.NewQuoteService(store, c, publisher)
	admin := service.NewAdminService(store, c, publisher)
	checker := health.NewChecker(pool, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(quotes, admin, checker),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	metricsServer := metrics.NewServer(fmt.Sprintf(":%d", cfg.Metrics.Port), logger)
	go func() {
		if err := metricsServer.Start(); err != nil {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", zap.Error(err))
	}
	return nil
}

// connectDatabase builds the pool and pings it with backoff so the
// service survives the database coming up after it in compose.
func connectDatabase(cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCfg := retry.DefaultConfig()
	pingCfg.MaxAttempts = 5
	pingCfg.InitialDelay = 500 * time.Millisecond
	err = retry.Do(context.Background(), pingCfg, logger, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return pool.Ping(ctx)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}
