package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader string
		wantBody   string
		wantErr    bool
	}{
		{"basic", "---\ntitle: A\n---\nbody\n", "title: A\n", "body\n", false},
		{"crlf", "---\r\ntitle: A\r\n---\r\nbody", "title: A\n", "body", false},
		{"no body", "---\ntitle: A\n---", "title: A\n", "", false},
		{"empty header", "---\n---\nbody", "", "body", false},
		{"missing", "# Just markdown\n", "", "", true},
		{"unterminated", "---\ntitle: A\n", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, err := splitFrontMatter([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if string(header) != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	fm, published, err := parseFrontMatter([]byte("title: Post\nslug: post\ndate: 2025-04-27\nfeatured: true\nauthors:\n  - name: A\n"))
	if err != nil {
		t.Fatal(err)
	}
	if fm.Date != "2025-04-27" || published.Year() != 2025 || published.Month() != 4 {
		t.Errorf("date = %q / %v", fm.Date, published)
	}
	if !fm.Featured || len(fm.Authors) != 1 {
		t.Errorf("fm = %+v", fm)
	}

	for _, bad := range []string{"slug: x\n", "title: x\n", "title: x\nslug: x\ndate: yesterday\n", "title: [\n", "title: x\nslug: Hello_World\n"} {
		if _, _, err := parseFrontMatter([]byte(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRenderer_WrapsSections(t *testing.T) {
	src := "Lead paragraph.\n\n## Intro {#intro}\n\nFirst.\n\n### Detail\n\nMore.\n\n## Second Part\n\nSecond.\n"
	body, sections, err := NewRenderer(Options{}).Render([]byte(src))
	if err != nil {
		t.Fatal(err)
	}

	if len(sections) != 2 || sections[0].ID != "intro" || sections[0].Title != "Intro" {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[1].ID != "second-part" {
		t.Errorf("auto heading id = %q", sections[1].ID)
	}

	doc := parseHTML(t, body)
	if doc.Find("section").Length() != 2 {
		t.Fatalf("expected 2 sections in %s", body)
	}
	intro := doc.Find("section#intro")
	if intro.AttrOr("aria-labelledby", "") != "intro-heading" {
		t.Error("section should be labelled by its heading")
	}
	if intro.Find("h2#intro-heading").Length() != 1 || intro.Find("h3").Length() != 1 {
		t.Error("heading and subsections belong to the section")
	}
	if intro.Find("p").Length() != 2 {
		t.Errorf("intro paragraphs = %d", intro.Find("p").Length())
	}
	if doc.Find("section p:contains('Lead paragraph')").Length() != 0 {
		t.Error("content before the first heading stays outside sections")
	}
	if doc.Find("section#second-part p").Text() != "Second." {
		t.Error("second section content")
	}
}

func TestRenderer_ZoomableImages(t *testing.T) {
	r := NewRenderer(Options{Placeholder: "/images/fallback.jpg"})
	body, _, err := r.Render([]byte(`![Tor *network* map](/images/tor.png "Onion routing")`))
	if err != nil {
		t.Fatal(err)
	}

	doc := parseHTML(t, body)
	wrapper := doc.Find("span[data-zoomable]")
	if wrapper.Length() != 1 {
		t.Fatalf("no zoomable wrapper in %s", body)
	}
	if wrapper.AttrOr("data-src", "") != "/images/tor.png" {
		t.Error("data-src")
	}
	if wrapper.AttrOr("data-placeholder", "") != "/images/fallback.jpg" {
		t.Error("placeholder should come from options")
	}
	img := wrapper.Find("img.zoomable-image")
	if img.AttrOr("alt", "") != "Tor network map" {
		t.Errorf("alt = %q", img.AttrOr("alt", ""))
	}
	if img.AttrOr("width", "") != "500" || !img.HasClass("object-contain") {
		t.Error("default size and class")
	}
	if doc.Find(".zoom-overlay").Length() != 0 {
		t.Error("server markup starts unzoomed")
	}
	if doc.Find(".image-caption").Text() != "Onion routing" {
		t.Error("title becomes the caption")
	}
}

func TestRenderer_DangerousImage(t *testing.T) {
	body, _, err := NewRenderer(Options{}).Render([]byte(`![x](javascript:alert(1))`))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "<img") || strings.Contains(body, "javascript:") {
		t.Errorf("dangerous image rendered: %s", body)
	}
}

func TestRenderer_HighlightsCode(t *testing.T) {
	body, _, err := NewRenderer(Options{}).Render([]byte("```go\nfunc main() {}\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	doc := parseHTML(t, body)
	if doc.Find("pre").Length() != 1 || doc.Find("pre span").Length() == 0 {
		t.Errorf("expected highlighted code, got %s", body)
	}
}

func post(front, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + front + "---\n" + body)}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/a.md":      post("title: A\nslug: a\ndate: 2025-01-01\nfeatured: true\n", "## One\n\nx\n"),
		"posts/2025/b.md": post("title: B\nslug: b\ndate: 2025-03-01\n", "text\n"),
		"posts/c.md":      post("title: C\nslug: c\ndate: 2025-05-01\ndraft: true\n", "wip\n"),
		"posts/notes.txt": &fstest.MapFile{Data: []byte("ignored")},
		"pages/about.md":  post("title: About\nslug: about\n", "hi\n"),
		"drafts/loose.md": post("title: L\nslug: l\n", ""),
	}

	store, err := Load(fsys, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	all := store.All()
	if len(all) != 2 || all[0].Slug != "b" || all[1].Slug != "a" {
		t.Fatalf("posts not sorted newest first: %v", slugs(all))
	}
	if store.Featured().Slug != "a" {
		t.Error("featured flag should win over recency")
	}
	if p, err := store.BySlug("a"); err != nil || len(p.Sections) != 1 || p.URL() != "/posts/a" {
		t.Errorf("BySlug(a) = %+v, %v", p, err)
	}
	if _, err := store.BySlug("c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("draft should be hidden, got %v", err)
	}
	if _, err := store.Page("about"); err != nil {
		t.Error(err)
	}
	if p, _ := store.BySlug("b"); p.DisplayDate() != "March 01, 2025" {
		t.Errorf("display date = %q", p.DisplayDate())
	}

	withDrafts, err := Load(fsys, LoadOptions{Drafts: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(withDrafts.All()) != 3 || withDrafts.All()[0].Slug != "c" {
		t.Errorf("drafts = %v", slugs(withDrafts.All()))
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantMsg string
	}{
		{
			name: "duplicate slug",
			fsys: fstest.MapFS{
				"posts/a.md": post("title: A\nslug: same\n", ""),
				"posts/b.md": post("title: B\nslug: same\n", ""),
			},
			wantMsg: "duplicate slug",
		},
		{
			name:    "missing title",
			fsys:    fstest.MapFS{"posts/bad.md": post("slug: bad\n", "")},
			wantMsg: "posts/bad.md",
		},
		{
			name:    "slug outside the article route",
			fsys:    fstest.MapFS{"posts/hello.md": post("title: Hello\nslug: Hello_World\n", "")},
			wantMsg: "posts/hello.md",
		},
		{
			name:    "no front matter",
			fsys:    fstest.MapFS{"posts/plain.md": &fstest.MapFile{Data: []byte("# Plain\n")}},
			wantMsg: "missing front matter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys, LoadOptions{})
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_RejectsUnroutableSlug(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"posts/ok.md":    post("title: OK\nslug: ok\n", ""),
		"posts/hello.md": post("title: Hello\nslug: Hello_World\n", ""),
	}, LoadOptions{})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("err = %v, want ErrInvalidSlug", err)
	}
	if !strings.Contains(err.Error(), "posts/hello.md") || !strings.Contains(err.Error(), "Hello_World") {
		t.Errorf("err = %v, want file and slug named", err)
	}
}

func TestEmbedded(t *testing.T) {
	store, err := Load(Embedded(), LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(store.All()) != 5 {
		t.Fatalf("embedded posts = %v", slugs(store.All()))
	}
	if store.Featured().Slug != "human-factors" {
		t.Errorf("featured = %s", store.Featured().Slug)
	}

	p, err := store.BySlug("web-vulnerabilities")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"introduction", "sql-injection", "csrf-protection", "xss-protection", "conclusion"}
	if len(p.Sections) != len(want) {
		t.Fatalf("sections = %+v", p.Sections)
	}
	for i, id := range want {
		if p.Sections[i].ID != id {
			t.Errorf("section %d = %s, want %s", i, p.Sections[i].ID, id)
		}
	}
	if len(p.ComponentAuthors()) != 4 {
		t.Error("expected four authors")
	}

	if _, err := store.Page("about"); err != nil {
		t.Error(err)
	}
}

func TestMarshalFrontMatter(t *testing.T) {
	out, err := MarshalFrontMatter(FrontMatter{Title: "New: Post", Slug: "new-post", Date: "2025-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	header, _, err := splitFrontMatter(out)
	if err != nil {
		t.Fatal(err)
	}
	fm, _, err := parseFrontMatter(header)
	if err != nil {
		t.Fatal(err)
	}
	if fm.Title != "New: Post" || fm.Slug != "new-post" {
		t.Errorf("fm = %+v", fm)
	}
}

func slugs(posts []*Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}
