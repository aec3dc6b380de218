// Command blogsync is a terminal client for a Remote Post Store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Blogsync/internal/config"
	"Blogsync/internal/core/paging"
	"Blogsync/internal/logging"
	"Blogsync/internal/remote"
	"Blogsync/internal/session"
	"Blogsync/internal/terminal"

	"github.com/joho/godotenv"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := config.ClientFromEnv()

	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Remote Post Store base URL")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "posts revealed per page")
	flag.Float64Var(&cfg.LoadMoreThreshold, "threshold", cfg.LoadMoreThreshold, "load-more trigger fraction in (0, 1]")
	flag.IntVar(&cfg.UserID, "user-id", cfg.UserID, "author id for new posts")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request timeout, 0 for none")
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
	// Logs go to stderr so they do not interleave with the REPL on stdout
	logger := logging.New(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(logger)

	client, err := remote.NewClient(cfg.BaseURL,
		remote.WithTimeout(cfg.HTTPTimeout),
		remote.WithUserAgent("blogsync/1.0"),
	)
	if err != nil {
		return err
	}

	s := session.New(client, session.Options{
		PageSize: cfg.PageSize,
		Trigger:  paging.Trigger{Threshold: cfg.LoadMoreThreshold},
	}, logger)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting blogsync", "base_url", cfg.BaseURL, "page_size", cfg.PageSize,
		"timeout", cfg.HTTPTimeout.String())

	start := time.Now()
	err = terminal.New(s, os.Stdin, os.Stdout, cfg.UserID, logger).Run(ctx)
	logger.Debug("session ended", "duration", time.Since(start).String())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
