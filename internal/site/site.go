// Package site wires the blog's content store into server-rendered pages.
package site

import (
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cyberinsights/inkwell/internal/config"
	"github.com/cyberinsights/inkwell/internal/content"
	"github.com/cyberinsights/inkwell/pkg/server"
)

// Options configures a Site beyond what inkwell.yaml carries
type Options struct {
	Logger *slog.Logger
	// Static serves /images, /assets and the logo; nil disables them
	Static fs.FS
	// LiveReload injects the /__reload websocket client into every page
	LiveReload bool
	// Now stamps the footer year; defaults to time.Now
	Now func() time.Time
}

// Site serves the blog. The content store can be swapped at runtime.
type Site struct {
	cfg    *config.Config
	opts   Options
	store  atomic.Pointer[content.Store]
	pages  *pageCache
	router *server.Router
	logger *slog.Logger
}

// New builds the router for store
func New(cfg *config.Config, store *content.Store, opts Options) *Site {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Site{
		cfg:    cfg,
		opts:   opts,
		logger: opts.Logger,
	}
	s.store.Store(store)

	layouts := server.NewLayoutRegistry()
	layouts.RegisterFunc("/", s.document)

	routerOpts := []server.Option{
		server.WithLogger(opts.Logger),
		server.WithLayouts(layouts),
	}
	if cfg.Server.CacheTTL > 0 {
		s.pages = newPageCache(cfg.Server.CacheTTL)
		routerOpts = append(routerOpts, server.WithCache(s.pages))
	}
	s.router = server.NewRouter(routerOpts...)
	s.routes()
	return s
}

func (s *Site) routes() {
	r := s.router
	r.Use(server.RequestLogger(), server.SecurityHeaders())

	r.AddRoute("/", s.home)
	r.AddRoute("/about", s.about)
	r.AddRoute("/posts/[slug:slug]", s.article)
	r.AddAPIRoute("/api/posts", s.postsAPI)
	r.SetNotFound(s.notFound)
	r.SetErrorPage(s.errorPage)

	r.Handle("/styles.css", assetHandler("assets/styles.css", "text/css; charset=utf-8"))
	r.Handle("/assets/bootstrap.js", assetHandler("assets/bootstrap.js", "text/javascript; charset=utf-8"))
	r.Handle("/healthz", http.HandlerFunc(s.healthz))

	if s.opts.Static != nil {
		static := http.FileServer(http.FS(s.opts.Static))
		r.Handle("/images/[...path]", static)
		r.Handle("/assets/[...path]", static)
		r.Handle(s.logoPath(), static)
	}
}

func (s *Site) logoPath() string {
	if s.cfg.Site.Logo == "" {
		return "/logo.svg"
	}
	return s.cfg.Site.Logo
}

// Router exposes the router so callers can mount extra handlers
func (s *Site) Router() *server.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store returns the content currently being served
func (s *Site) Store() *content.Store {
	return s.store.Load()
}

// Reload swaps in a freshly loaded store and drops every cached page
func (s *Site) Reload(store *content.Store) {
	s.store.Store(store)
	s.Invalidate()
	s.logger.Info("content reloaded", "posts", len(store.All()))
}

// Invalidate drops every cached page
func (s *Site) Invalidate() {
	if s.pages != nil {
		s.pages.Flush()
	}
}

func (s *Site) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ContentOptions maps configuration onto content loading
func ContentOptions(cfg *config.Config, logger *slog.Logger) content.LoadOptions {
	return content.LoadOptions{
		PostPatterns: cfg.Content.Posts,
		PagePatterns: cfg.Content.Pages,
		Drafts:       cfg.Content.Drafts,
		Logger:       logger,
		Markdown: content.Options{
			Placeholder:    cfg.Reading.Placeholder,
			Width:          cfg.Reading.ImageWidth,
			Height:         cfg.Reading.ImageHeight,
			ZoomWidth:      cfg.Reading.ZoomWidth,
			ZoomHeight:     cfg.Reading.ZoomHeight,
			HighlightStyle: cfg.Content.HighlightStyle,
		},
	}
}
