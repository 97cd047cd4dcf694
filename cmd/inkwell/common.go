package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyberinsights/inkwell/internal/config"
	"github.com/cyberinsights/inkwell/internal/content"
	"github.com/cyberinsights/inkwell/internal/site"
)

type rootFlags struct {
	configPath string
	contentDir string
	verbose    bool
}

// loadConfig reads the config file and applies persistent flags on top
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.contentDir != "" {
		cfg.Content.Dir = f.contentDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *rootFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// contentFS is the configured content directory, or the embedded articles
func contentFS(cfg *config.Config) fs.FS {
	if cfg.Content.Dir != "" {
		return os.DirFS(cfg.Content.Dir)
	}
	return content.Embedded()
}

// staticFS returns the static directory when it exists
func staticFS(cfg *config.Config) fs.FS {
	if cfg.Server.StaticDir == "" {
		return nil
	}
	if info, err := os.Stat(cfg.Server.StaticDir); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(cfg.Server.StaticDir)
}

func loadStore(cfg *config.Config, logger *slog.Logger) (*content.Store, error) {
	store, err := content.Load(contentFS(cfg), site.ContentOptions(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return store, nil
}

func newSite(cfg *config.Config, logger *slog.Logger, liveReload bool) (*site.Site, error) {
	store, err := loadStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	log.Printf("📚 Loaded %d posts", len(store.All()))

	return site.New(cfg, store, site.Options{
		Logger:     logger,
		Static:     staticFS(cfg),
		LiveReload: liveReload,
	}), nil
}

// serveUntilSignal runs srv until SIGINT/SIGTERM, then shuts it down
// gracefully within timeout.
func serveUntilSignal(srv *http.Server, timeout time.Duration, onShutdown func()) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down server...")
	if onShutdown != nil {
		onShutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
