package site

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Routes that only make sense on a live server
var exportSkip = map[string]bool{
	"/healthz":   true,
	"/api/posts": true,
}

// ExportPaths lists every concrete path a static export writes. Slug routes
// expand to the loaded posts; catch-all routes belong to the static dir.
func (s *Site) ExportPaths() []string {
	var paths []string
	for _, route := range s.router.Routes() {
		if exportSkip[route.Path] {
			continue
		}
		switch {
		case route.Path == "/posts/[slug:slug]":
			for _, p := range s.Store().All() {
				paths = append(paths, p.URL())
			}
		case strings.Contains(route.Path, "["):
			continue
		case route.Raw && path.Ext(route.Path) == "":
			continue
		default:
			paths = append(paths, route.Path)
		}
	}
	return paths
}

// Export renders every page into dir: pages become <route>/index.html,
// files keep their name. A 404.html is written for static hosts.
// Progress is drawn to progress when it is non-nil.
func (s *Site) Export(dir string, progress io.Writer) (int, error) {
	paths := s.ExportPaths()
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(paths)+1,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Exporting pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	written := 0
	for _, p := range paths {
		bar.Describe(p)
		status, body, err := s.router.RenderPath(p)
		if err != nil {
			return written, err
		}
		if status != http.StatusOK {
			s.logger.Warn("skipping page", "path", p, "status", status)
			_ = bar.Add(1)
			continue
		}
		if err := writeFile(filepath.Join(dir, exportName(p)), body); err != nil {
			return written, err
		}
		written++
		_ = bar.Add(1)
	}

	// Any unmatched path renders the not-found page
	if _, body, err := s.router.RenderPath("/404"); err == nil && len(body) > 0 {
		if err := writeFile(filepath.Join(dir, "404.html"), body); err != nil {
			return written, err
		}
		written++
	}
	_ = bar.Add(1)
	_ = bar.Finish()

	return written, nil
}

// exportName maps a route path to its file under the export root
func exportName(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "index.html"
	}
	if path.Ext(p) != "" {
		return filepath.FromSlash(p)
	}
	return filepath.Join(filepath.FromSlash(p), "index.html")
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(name), err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
