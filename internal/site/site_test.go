package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/cyberinsights/inkwell/internal/config"
	"github.com/cyberinsights/inkwell/internal/content"
	"github.com/cyberinsights/inkwell/pkg/behavior"
	"github.com/cyberinsights/inkwell/pkg/components"
)

func post(front, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + front + "---\n" + body)}
}

var testContent = fstest.MapFS{
	"posts/sql.md": post(`title: Fixing SQL Injection
slug: sql-injection
date: 2025-04-27
description: Prepared statements all the way down.
image: /images/post4.jpg
authors:
  - name: Ada
    image: /images/ada.jpg
    bio: Breaks things.
  - name: Lin
    bio: Fixes things.
`, "## Introduction {#intro}\n\nHello.\n\n![Login flow](/images/login.png \"Figure 1\")\n\n## Wrap Up\n\nBye.\n"),
	"posts/human.md": post(`title: Human Factors
slug: human-factors
date: 2025-02-08
featured: true
description: People are part of the system.
`, "## Why {#why}\n\nBecause.\n"),
	"posts/rsa.md": post(`title: RSA
slug: rsa
date: 2025-03-17
`, "Plain body without sections.\n"),
	"pages/about.md": post(`title: About Us
slug: about
`, "## Contact {#contact}\n\nWrite to us.\n"),
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSite(t *testing.T, mutate func(*config.Config, *Options)) *Site {
	t.Helper()
	cfg := config.DefaultConfig()
	opts := Options{
		Logger: quietLogger(),
		Static: fstest.MapFS{
			"images/post4.jpg":   &fstest.MapFile{Data: []byte("jpeg")},
			"logo.svg":           &fstest.MapFile{Data: []byte("<svg></svg>")},
			"assets/client.wasm": &fstest.MapFile{Data: []byte("\x00asm")},
		},
		Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	if mutate != nil {
		mutate(cfg, &opts)
	}
	store, err := content.Load(testContent, ContentOptions(cfg, opts.Logger))
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return New(cfg, store, opts)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func pageData(t *testing.T, doc *goquery.Document) behavior.PageConfig {
	t.Helper()
	raw := doc.Find("script#" + components.PageDataID).Text()
	cfg, err := behavior.ParsePageConfig([]byte(raw))
	if err != nil {
		t.Fatalf("page data %q: %v", raw, err)
	}
	return cfg
}

func TestHome(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	doc := parse(t, rec)

	if got := doc.Find("title").Text(); got != "CyberInsights" {
		t.Errorf("title = %q", got)
	}
	featured := doc.Find(".home-featured a.card-link")
	if featured.Length() != 1 || featured.AttrOr("href", "") != "/posts/human-factors" {
		t.Errorf("featured card href = %q", featured.AttrOr("href", ""))
	}
	if featured.Find(".badge-featured").Length() != 1 {
		t.Error("featured card should carry a badge")
	}

	var grid []string
	doc.Find(".card-grid a.card-link").Each(func(_ int, sel *goquery.Selection) {
		grid = append(grid, sel.AttrOr("href", ""))
	})
	want := []string{"/posts/sql-injection", "/posts/rsa"}
	if strings.Join(grid, ",") != strings.Join(want, ",") {
		t.Errorf("grid = %v, want %v", grid, want)
	}

	for _, id := range []string{components.ProgressRootID, components.NavbarRootID, components.FooterRootID, components.ControlsRootID} {
		if doc.Find("#"+id).Length() != 1 {
			t.Errorf("missing mount point #%s", id)
		}
	}
	if !strings.Contains(doc.Find("#footer-root footer").Text(), "© 2025") {
		t.Errorf("footer = %q", doc.Find("#footer-root footer").Text())
	}
	if doc.Find("#controls-root .back-to-top").Length() != 0 {
		t.Error("back-to-top must start hidden")
	}
	cfg := pageData(t, doc)
	if len(cfg.Sections) != 0 || cfg.BackToTopThreshold != 300 || cfg.SpyThreshold != 0.3 {
		t.Errorf("page data = %+v", cfg)
	}
	if cfg.Chrome.Title != "CyberInsights" || cfg.Chrome.Year != 2025 || len(cfg.Chrome.Links) == 0 {
		t.Errorf("chrome = %+v", cfg.Chrome)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing")
	}
}

func TestArticle(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s, "/posts/sql-injection")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := parse(t, rec)

	if got := doc.Find("title").Text(); got != "Fixing SQL Injection | CyberInsights" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find(`meta[name="description"]`).AttrOr("content", ""); got != "Prepared statements all the way down." {
		t.Errorf("description = %q", got)
	}
	if got := doc.Find(".article-date").Text(); got != "April 27, 2025" {
		t.Errorf("date = %q", got)
	}

	cfg := pageData(t, doc)
	wantSections := []behavior.TOCEntry{{ID: "intro", Title: "Introduction"}, {ID: "wrap-up", Title: "Wrap Up"}}
	if len(cfg.Sections) != len(wantSections) {
		t.Fatalf("sections = %+v", cfg.Sections)
	}
	for i, want := range wantSections {
		if cfg.Sections[i] != want {
			t.Errorf("section %d = %+v, want %+v", i, cfg.Sections[i], want)
		}
		if doc.Find("section#"+want.ID).Length() != 1 {
			t.Errorf("body is missing section #%s", want.ID)
		}
	}

	links := doc.Find("#toc-root a.toc-link")
	if links.Length() != 2 {
		t.Fatalf("toc links = %d", links.Length())
	}
	if links.First().AttrOr("href", "") != "#intro" {
		t.Errorf("first toc link = %q", links.First().AttrOr("href", ""))
	}
	if doc.Find("#toc-root a.font-bold").Length() != 0 {
		t.Error("no entry is active before the client observes sections")
	}

	body := doc.Find(".article-body span[data-zoomable]")
	if body.Length() != 1 || body.AttrOr("data-src", "") != "/images/login.png" {
		t.Errorf("zoomable body images = %d", body.Length())
	}
	if doc.Find(".article-body .image-caption").Text() != "Figure 1" {
		t.Error("image title should render as caption")
	}

	portraits := doc.Find(".author span[data-zoomable]")
	if portraits.Length() != 1 {
		t.Fatalf("zoomable portraits = %d", portraits.Length())
	}
	if !portraits.Find("img").HasClass("rounded-full") || portraits.AttrOr("data-width", "") != "96" {
		t.Error("portrait should be a round 96px thumbnail")
	}
	if doc.Find(".author").Length() != 2 {
		t.Error("author without image should still be listed")
	}
}

func TestArticle_WithoutSections(t *testing.T) {
	s := newTestSite(t, nil)
	doc := parse(t, get(t, s, "/posts/rsa"))
	if doc.Find("#toc-root nav").Length() != 0 {
		t.Error("no toc expected")
	}
	if len(pageData(t, doc).Sections) != 0 {
		t.Error("no sections expected in page data")
	}
}

func TestAbout(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cfg := pageData(t, parse(t, rec))
	if len(cfg.Sections) != 1 || cfg.Sections[0].ID != "contact" {
		t.Errorf("sections = %+v", cfg.Sections)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestSite(t, nil)
	for _, path := range []string{"/posts/missing", "/posts/Not_A_Slug", "/nowhere"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, s, path)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d", rec.Code)
			}
			doc := parse(t, rec)
			if doc.Find(".error-page h1").Text() != "404" {
				t.Error("expected the not-found page")
			}
			if doc.Find("title").Text() != "Page Not Found | CyberInsights" {
				t.Errorf("title = %q", doc.Find("title").Text())
			}
			if rec.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("not-found pages must carry security headers")
			}
		})
	}
}

func TestCache(t *testing.T) {
	s := newTestSite(t, nil)

	if got := get(t, s, "/").Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first request X-Cache = %q", got)
	}
	hit := get(t, s, "/")
	if got := hit.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second request X-Cache = %q", got)
	}
	if hit.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("cached pages must carry security headers")
	}
	if s.pages.Len() != 1 {
		t.Errorf("cached pages = %d", s.pages.Len())
	}

	// Reload swaps content and drops cached pages
	store, err := content.Load(fstest.MapFS{
		"posts/new.md": post("title: Brand New\nslug: brand-new\ndate: 2025-07-01\n", "Fresh.\n"),
	}, content.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	s.Reload(store)

	rec := get(t, s, "/")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Error("reload should invalidate cached pages")
	}
	if !strings.Contains(rec.Body.String(), "Brand New") {
		t.Error("reloaded content not served")
	}
	if get(t, s, "/posts/sql-injection").Code != http.StatusNotFound {
		t.Error("old posts should be gone after reload")
	}
}

func TestCache_Disabled(t *testing.T) {
	s := newTestSite(t, func(cfg *config.Config, _ *Options) {
		cfg.Server.CacheTTL = 0
	})
	get(t, s, "/")
	if got := get(t, s, "/").Header().Get("X-Cache"); got != "" {
		t.Errorf("X-Cache = %q with caching disabled", got)
	}
	s.Invalidate()
}

func TestAssets(t *testing.T) {
	s := newTestSite(t, nil)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/styles.css", http.StatusOK, "text/css", ".progress-fill"},
		{"/assets/bootstrap.js", http.StatusOK, "text/javascript", "client.wasm"},
		{"/healthz", http.StatusOK, "text/plain", "ok"},
		{"/images/post4.jpg", http.StatusOK, "", "jpeg"},
		{"/assets/client.wasm", http.StatusOK, "", "asm"},
		{"/logo.svg", http.StatusOK, "", "<svg>"},
		{"/images/missing.jpg", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestPostsAPI(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s, "/api/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var posts []PostSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 3 || posts[0].Slug != "sql-injection" || posts[0].URL != "/posts/sql-injection" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestLiveReload(t *testing.T) {
	tests := []struct {
		name string
		on   bool
	}{
		{"enabled", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSite(t, func(_ *config.Config, o *Options) { o.LiveReload = tt.on })
			body := get(t, s, "/").Body.String()
			if got := strings.Contains(body, "/__reload"); got != tt.on {
				t.Errorf("reload script present = %v", got)
			}
		})
	}
}

func TestExport(t *testing.T) {
	s := newTestSite(t, nil)
	dir := t.TempDir()

	n, err := s.Export(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	files := []string{
		"index.html",
		"about/index.html",
		"posts/sql-injection/index.html",
		"posts/human-factors/index.html",
		"posts/rsa/index.html",
		"styles.css",
		"assets/bootstrap.js",
		"logo.svg",
		"404.html",
	}
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if n != len(files) {
		t.Errorf("written = %d, want %d", n, len(files))
	}
	for _, skipped := range []string{"healthz", "api/posts/index.html"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(skipped))); err == nil {
			t.Errorf("%s should not be exported", skipped)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "posts", "sql-injection", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `id="page-data"`) {
		t.Error("exported article should carry page data")
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"/about", filepath.Join("about", "index.html")},
		{"/posts/rsa", filepath.Join("posts", "rsa", "index.html")},
		{"/styles.css", "styles.css"},
		{"/assets/bootstrap.js", filepath.Join("assets", "bootstrap.js")},
	}
	for _, tt := range tests {
		if got := exportName(tt.path); got != tt.want {
			t.Errorf("exportName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEmbeddedContent(t *testing.T) {
	cfg := config.DefaultConfig()
	store, err := content.Load(content.Embedded(), ContentOptions(cfg, quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	s := New(cfg, store, Options{Logger: quietLogger()})

	for _, p := range store.All() {
		if rec := get(t, s, p.URL()); rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", p.URL(), rec.Code)
		}
	}
	doc := parse(t, get(t, s, "/posts/web-vulnerabilities"))
	if got := len(pageData(t, doc).Sections); got != 5 {
		t.Errorf("web-vulnerabilities sections = %d", got)
	}
}
