package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Default glob patterns, relative to the content root
var (
	DefaultPostPatterns = []string{"posts/**/*.md"}
	DefaultPagePatterns = []string{"pages/*.md"}
)

// LoadOptions controls which files Load reads and how they render
type LoadOptions struct {
	PostPatterns []string
	PagePatterns []string
	// Drafts includes posts marked draft
	Drafts   bool
	Markdown Options
	Logger   *slog.Logger
}

// Store holds every loaded post, newest first. It is immutable once loaded.
type Store struct {
	posts  []*Post
	bySlug map[string]*Post
	pages  map[string]*Post
}

// Load reads posts and standalone pages from fsys
func Load(fsys fs.FS, opts LoadOptions) (*Store, error) {
	if len(opts.PostPatterns) == 0 {
		opts.PostPatterns = DefaultPostPatterns
	}
	if len(opts.PagePatterns) == 0 {
		opts.PagePatterns = DefaultPagePatterns
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := NewRenderer(opts.Markdown)

	postPaths, err := glob(fsys, opts.PostPatterns)
	if err != nil {
		return nil, err
	}
	s := &Store{
		bySlug: make(map[string]*Post),
		pages:  make(map[string]*Post),
	}
	for _, path := range postPaths {
		post, err := parseFile(fsys, path, r)
		if err != nil {
			return nil, err
		}
		if post.Draft && !opts.Drafts {
			logger.Debug("skipping draft", "path", path, "slug", post.Slug)
			continue
		}
		if prev, ok := s.bySlug[post.Slug]; ok {
			return nil, fmt.Errorf("%s: duplicate slug %q (also used by %s)", path, post.Slug, prev.Path)
		}
		s.bySlug[post.Slug] = post
		s.posts = append(s.posts, post)
	}

	pagePaths, err := glob(fsys, opts.PagePatterns)
	if err != nil {
		return nil, err
	}
	for _, path := range pagePaths {
		page, err := parseFile(fsys, path, r)
		if err != nil {
			return nil, err
		}
		if _, ok := s.pages[page.Slug]; ok {
			return nil, fmt.Errorf("%s: duplicate page slug %q", path, page.Slug)
		}
		s.pages[page.Slug] = page
	}

	sort.SliceStable(s.posts, func(i, j int) bool {
		a, b := s.posts[i], s.posts[j]
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return a.Slug < b.Slug
	})

	logger.Info("content loaded", "posts", len(s.posts), "pages", len(s.pages))
	return s, nil
}

func glob(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func parseFile(fsys fs.FS, path string, r *Renderer) (*Post, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	header, source, err := splitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fm, published, err := parseFrontMatter(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	body, sections, err := r.Render(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Post{
		FrontMatter: fm,
		Path:        path,
		Published:   published,
		Body:        body,
		Sections:    sections,
	}, nil
}

// All returns every post, newest first
func (s *Store) All() []*Post {
	return s.posts
}

// Featured returns the newest post marked featured, falling back to the
// newest post. It returns nil for an empty store.
func (s *Store) Featured() *Post {
	for _, p := range s.posts {
		if p.Featured {
			return p
		}
	}
	if len(s.posts) > 0 {
		return s.posts[0]
	}
	return nil
}

// BySlug looks a post up by slug
func (s *Store) BySlug(slug string) (*Post, error) {
	p, ok := s.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return p, nil
}

// Page returns a standalone page such as "about"
func (s *Store) Page(slug string) (*Post, error) {
	p, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: page %s", ErrNotFound, slug)
	}
	return p, nil
}
