package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hoanghai1803/readlist/internal/api"
	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/config"
	"github.com/hoanghai1803/readlist/internal/feeds"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "readlist.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := readinglist.NewKVStore(storage.NewStore(db), cfg.ReadingList.StorageKey)
	svc := readinglist.NewService(store, readinglist.Options{
		MaxRetries: cfg.ReadingList.ServiceRetries(),
	})

	fetcher := feeds.NewFetcher(feeds.Options{
		Timeout:       cfg.Fetch.Timeout(),
		MaxConcurrent: cfg.Fetch.MaxConcurrent,
		MaxItems:      cfg.Fetch.MaxFeedItems,
	})
	opener := browser.NewSystemOpener()

	router := api.NewRouter(svc, fetcher, opener, cfg)

	// Determine server address (localhost only for security).
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Auto-open browser after a short delay to let the server start.
	if cfg.Server.AutoOpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := opener.Open(ctx, "http://"+addr); err != nil {
				slog.Warn("could not open browser", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", "http://"+addr, "storage_key", cfg.ReadingList.StorageKey)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
