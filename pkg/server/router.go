package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/cyberinsights/inkwell/pkg/renderer/html"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// HandlerFunc is the signature for route handlers
type HandlerFunc func(ctx Ctx) (*vdom.VNode, error)

// APIHandlerFunc is the signature for API route handlers
type APIHandlerFunc func(ctx Ctx) (any, error)

// Middleware interface for before/after hooks
type Middleware interface {
	Before(ctx Ctx) error // return Stop() to abort chain
	After(ctx Ctx) error  // always called if Before succeeded
}

// PageCache stores rendered documents by path
type PageCache interface {
	Get(path string) ([]byte, bool)
	Set(path string, page []byte)
}

// RouteNode represents a node in the radix tree
type RouteNode struct {
	segment    string
	param      bool
	catchAll   bool
	paramName  string
	paramType  string // "string", "int", "slug"
	handler    HandlerFunc
	apiHandler APIHandlerFunc
	raw        http.Handler
	children   []*RouteNode
	middleware []Middleware
}

func (n *RouteNode) routable() bool {
	return n.handler != nil || n.apiHandler != nil || n.raw != nil
}

// Router manages all routes and middleware
type Router struct {
	root       *RouteNode
	notFound   HandlerFunc
	errorPage  HandlerFunc
	middleware []Middleware
	layouts    *LayoutRegistry
	cache      PageCache
	logger     *slog.Logger
	mu         sync.RWMutex
}

// Option configures a Router
type Option func(*Router)

// WithLogger sets the base logger for request contexts
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithLayouts wraps page output in the registry's layouts
func WithLayouts(layouts *LayoutRegistry) Option {
	return func(r *Router) { r.layouts = layouts }
}

// WithCache caches successful GET page renders
func WithCache(cache PageCache) Option {
	return func(r *Router) { r.cache = cache }
}

// NewRouter creates a new router instance
func NewRouter(opts ...Option) *Router {
	r := &Router{
		root: &RouteNode{
			children: make([]*RouteNode, 0),
		},
		middleware: make([]Middleware, 0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRoute registers a page handler for a path
func (r *Router) AddRoute(path string, handler HandlerFunc, middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.insert(path)
	node.handler = handler
	node.middleware = middleware
}

// AddAPIRoute registers an API handler for a path
func (r *Router) AddAPIRoute(path string, handler APIHandlerFunc, middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.insert(path)
	node.apiHandler = handler
	node.middleware = middleware
}

// Handle mounts a plain http.Handler. It bypasses middleware, layouts and
// the page cache.
func (r *Router) Handle(path string, handler http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(path).raw = handler
}

func (r *Router) insert(path string) *RouteNode {
	node := r.root
	for _, segment := range splitPath(path) {
		node = r.findOrCreateChild(node, segment)
	}
	return node
}

// Use adds global middleware
func (r *Router) Use(middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// SetNotFound sets the 404 handler
func (r *Router) SetNotFound(handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = handler
}

// SetErrorPage sets the 500 error handler
func (r *Router) SetErrorPage(handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorPage = handler
}

// Match finds a handler for the given path. Unmatched paths return the
// not-found handler, which may be nil.
func (r *Router) Match(path string) (HandlerFunc, map[string]string, []Middleware) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, params := r.lookup(path)
	if node == nil || (node.handler == nil && node.apiHandler == nil) {
		return r.notFound, map[string]string{}, r.middleware
	}

	// Collect middleware from root to matched node
	allMiddleware := append([]Middleware{}, r.middleware...)
	allMiddleware = append(allMiddleware, node.middleware...)

	// Wrap API handler as regular handler if needed
	if node.apiHandler != nil {
		return wrapAPIHandler(node.apiHandler), params, allMiddleware
	}

	return node.handler, params, allMiddleware
}

func (r *Router) lookup(path string) (*RouteNode, map[string]string) {
	params := make(map[string]string)
	node, matched := r.matchNode(r.root, splitPath(path), params)
	if !matched || !node.routable() {
		return nil, params
	}
	return node, params
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	node, _ := r.lookup(req.URL.Path)
	r.mu.RUnlock()
	if node != nil && node.raw != nil {
		node.raw.ServeHTTP(w, req)
		return
	}

	cacheable := r.cache != nil && (req.Method == http.MethodGet || req.Method == http.MethodHead)
	ctx := newContext(w, req, r.logger)
	page := r.render(ctx, cacheable)
	if page == nil || ctx.written() {
		return
	}
	writeDocument(w, ctx.StatusCode(), page)
}

func writeDocument(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

// pageFunc produces finished markup; nil means the response was written
type pageFunc func(c Ctx) ([]byte, error)

// render runs the middleware chain around the page: cached markup, the
// not-found page and handler output all pass through the same hooks.
func (r *Router) render(ctx *ctxImpl, cacheable bool) (page []byte) {
	defer func() {
		if err := recover(); err != nil {
			ctx.Logger().Error("panic in handler", "error", err)
			page = r.renderError(ctx, fmt.Errorf("internal server error: %v", err))
		}
	}()

	_, routed := r.routeFor(ctx.Path())
	handler, params, middleware := r.Match(ctx.Path())
	WithParams(ctx, params)

	final := pageFunc(func(c Ctx) ([]byte, error) {
		if cacheable {
			if cached, ok := r.cache.Get(ctx.Path()); ok {
				c.SetHeader("X-Cache", "HIT")
				return cached, nil
			}
		}
		if !routed {
			return r.renderNotFound(ctx), nil
		}

		vnode, err := handler(c)
		switch {
		case errors.Is(err, ErrNotFound):
			return r.renderNotFound(ctx), nil
		case err != nil:
			return r.renderError(ctx, err), nil
		case vnode == nil:
			// An API handler wrote the response
			return nil, nil
		}

		out, err := r.document(ctx, vnode)
		if err != nil {
			return r.renderError(ctx, fmt.Errorf("failed to render VNode: %w", err)), nil
		}
		if cacheable && ctx.StatusCode() == http.StatusOK {
			r.cache.Set(ctx.Path(), out)
			c.SetHeader("X-Cache", "MISS")
		}
		return out, nil
	})

	// Build middleware chain
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := final
		final = func(c Ctx) ([]byte, error) {
			// Execute Before hook
			if err := mw.Before(c); err != nil {
				if errors.Is(err, ErrStop) {
					return nil, nil // Middleware handled response
				}
				return nil, err
			}

			// Execute handler
			result, err := next(c)

			// Execute After hook
			if afterErr := mw.After(c); afterErr != nil {
				c.Logger().Error("error in After middleware", "error", afterErr)
			}

			return result, err
		}
	}

	page, err := final(ctx)
	if err != nil {
		return r.renderError(ctx, err)
	}
	return page
}

func (r *Router) routeFor(path string) (*RouteNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, _ := r.lookup(path)
	return node, node != nil && (node.handler != nil || node.apiHandler != nil)
}

// document applies layouts and serializes the tree. Trees rooted at <html>
// get a doctype.
func (r *Router) document(ctx Ctx, vnode *vdom.VNode) ([]byte, error) {
	if r.layouts != nil {
		vnode = r.layouts.ApplyLayout(ctx, vnode)
	}

	var buf bytes.Buffer
	if vnode.Tag == "html" {
		if err := html.RenderDocument(&buf, vnode); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := html.NewHTMLApplier(&buf).Apply(nil, vnode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Router) renderNotFound(ctx *ctxImpl) []byte {
	ctx.Status(http.StatusNotFound)

	r.mu.RLock()
	notFound := r.notFound
	r.mu.RUnlock()

	if notFound != nil {
		if vnode, err := notFound(ctx); err == nil && vnode != nil {
			if page, err := r.document(ctx, vnode); err == nil {
				return page
			}
		}
	}

	// Fallback response
	_ = ctx.Text(http.StatusNotFound, "Not Found")
	return nil
}

// renderError renders the error page
func (r *Router) renderError(ctx *ctxImpl, err error) []byte {
	ctx.Logger().Error("handler error", "error", err)
	ctx.Status(http.StatusInternalServerError)

	r.mu.RLock()
	errorPage := r.errorPage
	r.mu.RUnlock()

	if errorPage != nil {
		if vnode, pageErr := errorPage(ctx); pageErr == nil && vnode != nil {
			if page, renderErr := r.document(ctx, vnode); renderErr == nil {
				return page
			}
		}
	}

	// Fallback error response
	if !ctx.written() {
		_ = ctx.Text(http.StatusInternalServerError, "Internal Server Error")
	}
	return nil
}

// RenderPath renders path as a GET request and returns the status and body
func (r *Router) RenderPath(path string) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("render %s: %w", path, err)
	}
	w := &bufferWriter{header: make(http.Header)}
	r.ServeHTTP(w, req)
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.status, w.body.Bytes(), nil
}

// bufferWriter is an in-memory http.ResponseWriter for RenderPath
type bufferWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferWriter) Header() http.Header { return b.header }

func (b *bufferWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// findOrCreateChild finds or creates a child node
func (r *Router) findOrCreateChild(parent *RouteNode, segment string) *RouteNode {
	// Check if it's a parameter segment
	if strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]") {
		paramDef := segment[1 : len(segment)-1]

		// Check for catch-all
		if strings.HasPrefix(paramDef, "...") {
			paramName := paramDef[3:]
			for _, child := range parent.children {
				if child.catchAll && child.paramName == paramName {
					return child
				}
			}
			node := &RouteNode{
				segment:   segment,
				catchAll:  true,
				paramName: paramName,
				paramType: "string",
				children:  make([]*RouteNode, 0),
			}
			parent.children = append(parent.children, node)
			return node
		}

		paramName, paramType := parseParamDef(paramDef)

		for _, child := range parent.children {
			if child.param && child.paramName == paramName {
				return child
			}
		}

		node := &RouteNode{
			segment:   segment,
			param:     true,
			paramName: paramName,
			paramType: paramType,
			children:  make([]*RouteNode, 0),
		}
		parent.children = append(parent.children, node)
		return node
	}

	// Static segment
	for _, child := range parent.children {
		if !child.param && !child.catchAll && child.segment == segment {
			return child
		}
	}

	node := &RouteNode{
		segment:  segment,
		children: make([]*RouteNode, 0),
	}
	parent.children = append(parent.children, node)
	return node
}

// matchNode attempts to match a path against the tree
func (r *Router) matchNode(node *RouteNode, segments []string, params map[string]string) (*RouteNode, bool) {
	if len(segments) == 0 {
		return node, true
	}

	segment := segments[0]
	remaining := segments[1:]

	// Try static match first (highest priority)
	for _, child := range node.children {
		if !child.param && !child.catchAll && child.segment == segment {
			if result, ok := r.matchNode(child, remaining, params); ok && result.routable() {
				return result, true
			}
		}
	}

	// Try parameter match
	for _, child := range node.children {
		if child.param && validateParam(segment, child.paramType) {
			params[child.paramName] = segment
			if result, ok := r.matchNode(child, remaining, params); ok && result.routable() {
				return result, true
			}
			delete(params, child.paramName)
		}
	}

	// Try catch-all match (lowest priority)
	for _, child := range node.children {
		if child.catchAll {
			params[child.paramName] = strings.Join(segments, "/")
			return child, true
		}
	}

	return nil, false
}

// Helper functions

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

func parseParamDef(def string) (name, paramType string) {
	parts := strings.Split(def, ":")
	name = parts[0]
	paramType = "string"

	if len(parts) > 1 {
		paramType = parts[1]
	}

	return name, paramType
}

func validateParam(value, paramType string) bool {
	switch paramType {
	case "int":
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(value) > 0
	case "slug":
		// Lowercase words joined by hyphens
		if value == "" || value[0] == '-' || value[len(value)-1] == '-' {
			return false
		}
		for _, r := range value {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
		return true
	default:
		// String accepts anything except empty
		return len(value) > 0
	}
}

func wrapAPIHandler(handler APIHandlerFunc) HandlerFunc {
	return func(ctx Ctx) (*vdom.VNode, error) {
		result, err := handler(ctx)
		if err != nil {
			return nil, err
		}

		if err := ctx.JSON(http.StatusOK, result); err != nil {
			return nil, err
		}

		// Return nil to indicate response was handled
		return nil, nil
	}
}

// RouteEntry describes one registered route
type RouteEntry struct {
	Path   string     `json:"path"`
	Params []ParamDef `json:"params,omitempty"`
	// Raw routes are plain http.Handlers
	Raw bool `json:"raw,omitempty"`
}

// ParamDef represents a route parameter definition
type ParamDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Routes lists every registered route in registration order
func (r *Router) Routes() []RouteEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var routes []RouteEntry
	r.collectRoutes(r.root, "", &routes)
	return routes
}

func (r *Router) collectRoutes(node *RouteNode, path string, routes *[]RouteEntry) {
	currentPath := path
	if node.segment != "" {
		currentPath = path + "/" + node.segment
	}

	if node.routable() {
		entry := RouteEntry{Path: currentPath, Raw: node.raw != nil}
		if entry.Path == "" {
			entry.Path = "/"
		}
		for _, seg := range splitPath(currentPath) {
			if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
				paramDef := strings.TrimPrefix(seg[1:len(seg)-1], "...")
				name, paramType := parseParamDef(paramDef)
				entry.Params = append(entry.Params, ParamDef{Name: name, Type: paramType})
			}
		}
		*routes = append(*routes, entry)
	}

	for _, child := range node.children {
		r.collectRoutes(child, currentPath, routes)
	}
}
