package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-service/internal/auth"
	redis_cache "blog-service/internal/cache/redis"
	"blog-service/internal/config"
	delivery_graphql "blog-service/internal/delivery/graphql"
	metrics_server "blog-service/internal/delivery/metrics"
	"blog-service/internal/events"
	"blog-service/internal/logger"
	prometheus_metrics "blog-service/internal/metrics/prometheus"
	"blog-service/internal/model"
	post_postgres "blog-service/internal/repository/post/postgres"
	"blog-service/internal/repository/postgres"
	user_postgres "blog-service/internal/repository/user/postgres"
	post_service "blog-service/internal/service/post"
	user_service "blog-service/internal/service/user"
)

func runMigrations(dsn, path string, log *logger.Logger) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", path), dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Info("Migrations applied")
	return nil
}

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := runMigrations(dsn, cfg.Database.MigrationsPath, log); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	postCache := redis_cache.NewPostCache(redisClient, log, cfg.Cache.PostTTL)

	unitOfWork := postgres.NewPostgresUOW(pool, log)
	postRepo := post_postgres.NewPostRepository(pool, log)
	userRepo := user_postgres.NewUserRepository(pool, log)

	bus := events.NewInMemoryBus[model.PublishedEvent](log)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	originalPostService := post_service.NewPostService(postRepo, userRepo, unitOfWork, bus, log)
	postService := post_service.NewPostServiceCacheDecorator(originalPostService, postCache, log, metrics)
	userService := user_service.NewUserService(userRepo, tokens, log)

	resolver := delivery_graphql.NewRootResolver(postService, userService, bus, metrics, log)
	graphqlServer := delivery_graphql.NewServer(resolver, tokens, metrics, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := graphqlServer.Run(); err != nil {
			log.Error("GraphQL server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := graphqlServer.Shutdown(shutdownCtx); err != nil {
		log.Error("GraphQL server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
