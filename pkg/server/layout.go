package server

import (
	"strings"

	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// Layout is the interface that all layout components must implement
type Layout interface {
	// Wrap wraps the given page content with the layout
	Wrap(ctx Ctx, child *vdom.VNode) *vdom.VNode
}

// LayoutFunc is a function type that implements the Layout interface
type LayoutFunc func(ctx Ctx, child *vdom.VNode) *vdom.VNode

// Wrap implements the Layout interface for LayoutFunc
func (f LayoutFunc) Wrap(ctx Ctx, child *vdom.VNode) *vdom.VNode {
	return f(ctx, child)
}

// LayoutRegistry manages layouts for different routes
type LayoutRegistry struct {
	layouts map[string]Layout
}

// NewLayoutRegistry creates a new layout registry
func NewLayoutRegistry() *LayoutRegistry {
	return &LayoutRegistry{
		layouts: make(map[string]Layout),
	}
}

// Register registers a layout for a specific path pattern
func (r *LayoutRegistry) Register(pattern string, layout Layout) {
	r.layouts[pattern] = layout
}

// RegisterFunc registers a layout function for a specific path pattern
func (r *LayoutRegistry) RegisterFunc(pattern string, fn func(ctx Ctx, child *vdom.VNode) *vdom.VNode) {
	r.Register(pattern, LayoutFunc(fn))
}

// GetLayout returns the layout for a given path: an exact match, else the
// longest matching directory pattern, else the root layout.
func (r *LayoutRegistry) GetLayout(path string) Layout {
	if layout, ok := r.layouts[path]; ok {
		return layout
	}

	var best Layout
	bestLen := -1
	for pattern, layout := range r.layouts {
		if pattern == "/" || !matchesPattern(path, pattern) {
			continue
		}
		if len(pattern) > bestLen {
			best, bestLen = layout, len(pattern)
		}
	}
	if best != nil {
		return best
	}

	return r.layouts["/"]
}

// ApplyLayout applies the appropriate layout to a VNode. Documents that
// already start at <html> are left alone.
func (r *LayoutRegistry) ApplyLayout(ctx Ctx, content *vdom.VNode) *vdom.VNode {
	if content != nil && content.Tag == "html" {
		return content
	}
	if layout := r.GetLayout(ctx.Path()); layout != nil {
		return layout.Wrap(ctx, content)
	}
	return content
}

// matchesPattern checks if a path matches a pattern
// Patterns can include:
// - Exact matches: "/about"
// - Directory matches: "/posts/*" or "/posts/"
// - Root layout: "/"
func matchesPattern(path, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	if len(pattern) > 1 && strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	return path == pattern
}
