// Command poststore serves a development Remote Post Store.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Blogsync/internal/api/routes"
	"Blogsync/internal/config"
	"Blogsync/internal/core/posts"
	"Blogsync/internal/db/memory"
	"Blogsync/internal/db/migrations"
	"Blogsync/internal/db/postgres"
	"Blogsync/internal/db/s3store"
	"Blogsync/internal/logging"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := config.StoreFromEnv()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "memory, postgres or s3")
	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	flag.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket for the s3 backend")
	flag.IntVar(&cfg.RateLimitPerMinute, "rate-limit", cfg.RateLimitPerMinute, "requests per minute per client")
	flag.IntVar(&cfg.SeedPosts, "seed", cfg.SeedPosts, "sample posts for the memory backend")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	router := routes.NewRouter(routes.RouterConfig{
		Service:            posts.NewPostService(repo, logger),
		Logger:             logger,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestLogging:     true,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("post store starting", "addr", server.Addr, "backend", cfg.Backend)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down post store")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openRepository builds the configured backend; the returned func releases it
func openRepository(ctx context.Context, cfg config.Store, logger *slog.Logger) (posts.Repository, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("connected to database")

		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("migrations completed successfully")

		return postgres.NewPostRepository(db), func() { _ = db.Close() }, nil

	case config.BackendS3:
		repo, err := s3store.NewPostRepositoryFromEnv(ctx, cfg.S3Bucket, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	default:
		repo := memory.NewPostRepository()
		if cfg.SeedPosts > 0 {
			if err := memory.Seed(ctx, repo, cfg.SeedPosts); err != nil {
				return nil, nil, err
			}
			logger.Info("seeded memory backend", "count", cfg.SeedPosts)
		}
		return repo, func() {}, nil
	}
}
