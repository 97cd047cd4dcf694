// Package content loads the blog's Markdown articles: YAML front matter,
// goldmark-rendered bodies split into sections, and the table of contents
// derived from their level-2 headings.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cyberinsights/inkwell/pkg/behavior"
	"github.com/cyberinsights/inkwell/pkg/components"
)

// DateLayout is the front matter date format
const DateLayout = "2006-01-02"

// DisplayDateLayout is how dates appear on cards and article headers
const DisplayDateLayout = "January 02, 2006"

var (
	// ErrNotFound is returned when no post has the requested slug
	ErrNotFound = errors.New("content: post not found")

	errNoFrontMatter = errors.New("missing front matter")
)

// Author is one entry of a post's author grid
type Author struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
	Bio   string `yaml:"bio"`
}

// FrontMatter is the YAML header of a Markdown file
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Subtitle    string   `yaml:"subtitle,omitempty"`
	Image       string   `yaml:"image,omitempty"`
	Featured    bool     `yaml:"featured,omitempty"`
	Draft       bool     `yaml:"draft,omitempty"`
	Authors     []Author `yaml:"authors,omitempty"`
}

// Post is a loaded article or page
type Post struct {
	FrontMatter

	// Path is the file the post was loaded from
	Path      string
	Published time.Time
	// Body is the rendered HTML, with each level-2 heading and the content
	// after it wrapped in a <section> carrying the heading's id
	Body     string
	Sections []behavior.TOCEntry
}

// DisplayDate formats the publication date for readers
func (p *Post) DisplayDate() string {
	if p.Published.IsZero() {
		return p.Date
	}
	return p.Published.Format(DisplayDateLayout)
}

// URL is the post's route
func (p *Post) URL() string {
	return "/posts/" + p.Slug
}

// ComponentAuthors converts the author list for the article layout
func (p *Post) ComponentAuthors() []components.Author {
	out := make([]components.Author, len(p.Authors))
	for i, a := range p.Authors {
		out[i] = components.Author{Name: a.Name, Image: a.Image, Bio: a.Bio}
	}
	return out
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body
func splitFrontMatter(data []byte) (header, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, nil, errNoFrontMatter
	}
	rest := data[4:]

	end := bytes.Index(rest, []byte("\n---\n"))
	switch {
	case end >= 0:
		return rest[:end+1], rest[end+5:], nil
	case bytes.HasSuffix(rest, []byte("\n---")):
		return rest[:len(rest)-3], nil, nil
	case bytes.HasPrefix(rest, []byte("---\n")):
		return nil, rest[4:], nil
	}
	return nil, nil, fmt.Errorf("unterminated front matter")
}

// parseFrontMatter decodes and validates a header
func parseFrontMatter(header []byte) (FrontMatter, time.Time, error) {
	var fm FrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return FrontMatter{}, time.Time{}, fmt.Errorf("invalid front matter: %w", err)
	}
	if fm.Title == "" {
		return FrontMatter{}, time.Time{}, fmt.Errorf("front matter: title is required")
	}
	if fm.Slug == "" {
		return FrontMatter{}, time.Time{}, fmt.Errorf("front matter: slug is required")
	}
	if !ValidSlug(fm.Slug) {
		return FrontMatter{}, time.Time{}, fmt.Errorf("front matter: slug %q: %w", fm.Slug, ErrInvalidSlug)
	}

	var published time.Time
	if fm.Date != "" {
		t, err := time.Parse(DateLayout, fm.Date)
		if err != nil {
			return FrontMatter{}, time.Time{}, fmt.Errorf("front matter: bad date %q: %w", fm.Date, err)
		}
		published = t
	}
	return fm, published, nil
}

// MarshalFrontMatter renders a header block for a new post
func MarshalFrontMatter(fm FrontMatter) ([]byte, error) {
	out, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(out)
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}
