package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidSlug is returned for slugs the post route would not match
var ErrInvalidSlug = errors.New("content: slug must be lowercase letters, digits and single hyphens")

// Slugify turns a title into a URL slug: "Fixing Web-App Bugs!" -> "fixing-web-app-bugs"
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ValidSlug reports whether s is usable as a post slug
func ValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// Draft describes a post to scaffold
type Draft struct {
	Title       string
	Slug        string
	Description string
	Authors     []string
	Featured    bool
	Date        time.Time
}

// Scaffold returns the Markdown source of a new post with a starter outline
func Scaffold(d Draft) ([]byte, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, errors.New("content: title is required")
	}
	if d.Slug == "" {
		d.Slug = Slugify(d.Title)
	}
	if !ValidSlug(d.Slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, d.Slug)
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}

	fm := FrontMatter{
		Title:       strings.TrimSpace(d.Title),
		Slug:        d.Slug,
		Date:        d.Date.Format(DateLayout),
		Description: d.Description,
		Featured:    d.Featured,
		Draft:       true,
	}
	for _, name := range d.Authors {
		if name = strings.TrimSpace(name); name != "" {
			fm.Authors = append(fm.Authors, Author{Name: name})
		}
	}

	header, err := MarshalFrontMatter(fm)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	body := "\n## Introduction\n\nWhat this post covers.\n\n## Conclusion\n\nWhat the reader should take away.\n"
	return append(header, body...), nil
}

// WritePost scaffolds d into dir/posts/<slug>.md. Existing files are never
// overwritten.
func WritePost(dir string, d Draft) (string, error) {
	if d.Slug == "" {
		d.Slug = Slugify(d.Title)
	}
	data, err := Scaffold(d)
	if err != nil {
		return "", err
	}

	name := filepath.Join(dir, "posts", d.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}
