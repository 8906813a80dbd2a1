package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/eringen/inkwell/toc"
)

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "<h1 id=\"heading-1\">Heading 1</h1>\n"},
		{"## Heading 2", "<h2 id=\"heading-2\">Heading 2</h2>\n"},
		{"### Heading 3", "<h3 id=\"heading-3\">Heading 3</h3>\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		RenderMarkdown(&buf, tt.input)
		got := buf.String()
		if got != tt.expected {
			t.Errorf("RenderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseHeadingIndex(t *testing.T) {
	src := "# Title\n\nIntro text.\n\n## Getting Started\n\nSome text.\n\n### Install `inkwell`\n\n## FAQ: Why?\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := []toc.Heading{
		{Depth: 1, Text: "Title", Slug: "title"},
		{Depth: 2, Text: "Getting Started", Slug: "getting-started"},
		{Depth: 3, Text: "Install inkwell", Slug: "install-inkwell"},
		{Depth: 2, Text: "FAQ: Why?", Slug: "faq-why"},
	}
	if len(doc.Headings) != len(expected) {
		t.Fatalf("Headings = %+v, want %+v", doc.Headings, expected)
	}
	for i, h := range expected {
		if doc.Headings[i] != h {
			t.Errorf("Headings[%d] = %+v, want %+v", i, doc.Headings[i], h)
		}
	}
	for _, h := range expected {
		if !strings.Contains(doc.HTML, `id="`+h.Slug+`"`) {
			t.Errorf("HTML should carry id %q: %q", h.Slug, doc.HTML)
		}
	}
}

func TestParseDuplicateHeadingsGetSuffix(t *testing.T) {
	src := "## Example\n\n## Example\n\n## Example\n"
	got := Headings([]byte(src))
	want := []string{"example", "example-1", "example-2"}
	if len(got) != len(want) {
		t.Fatalf("Headings = %+v, want %d entries", got, len(want))
	}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Errorf("Headings[%d].Slug = %q, want %q", i, got[i].Slug, slug)
		}
	}
}

func TestParseNoHeadings(t *testing.T) {
	doc, err := Parse([]byte("just a paragraph"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Headings) != 0 {
		t.Errorf("Headings = %+v, want none", doc.Headings)
	}
	if doc.HTML != "<p>just a paragraph</p>\n" {
		t.Errorf("HTML = %q", doc.HTML)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Background & Motivation", "background--motivation"},
		{"snake_case-and-kebab", "snake_case-and-kebab"},
		{"Ünïcödé Straße", "ünïcödé-straße"},
		{"What's new in v1.2?", "whats-new-in-v12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.expected {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSluggerAvoidsCollisionWithSuffixedSlug(t *testing.T) {
	s := NewSlugger()
	got := []string{s.Slug("a"), s.Slug("a-1"), s.Slug("a")}
	want := []string{"a", "a-1", "a-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d = %q, want %q", i, got[i], want[i])
		}
	}
	s.Reset()
	if got := s.Slug("a"); got != "a" {
		t.Errorf("after Reset Slug(a) = %q, want a", got)
	}
}

func TestRenderMarkdownLinkClass(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<p><a href="https://en.wikipedia.org/wiki/Some_Article_Title" class="underline decoration-2 underline-offset-4">Wikipedia</a></p>` + "\n",
		},
		{
			"Visit [link](https://example.com/my_page) for info",
			`<p>Visit <a href="https://example.com/my_page" class="underline decoration-2 underline-offset-4">link</a> for info</p>` + "\n",
		},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		RenderMarkdown(&buf, tt.input)
		if got := buf.String(); got != tt.expected {
			t.Errorf("RenderMarkdown(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownDropsUnsafeContent(t *testing.T) {
	var buf bytes.Buffer
	RenderMarkdown(&buf, "<script>alert(1)</script>\n\n[x](javascript:alert(1))")
	got := buf.String()
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should not be rendered: %q", got)
	}
	if strings.Contains(got, "javascript:") {
		t.Errorf("dangerous URL should be dropped: %q", got)
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&quot;hello&quot;)") {
		t.Errorf("code block should escape content: %q", got)
	}
}

func TestRenderMarkdownList(t *testing.T) {
	input := "- item 1\n- item 2"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	expected := "<ul>\n<li>item 1</li>\n<li>item 2</li>\n</ul>\n"
	if got := buf.String(); got != expected {
		t.Errorf("RenderMarkdown(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	input := "| a | b |\n|---|---|\n| 1 | 2 |"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("RenderMarkdown should render GFM tables: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("## Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "<h2 id=\"hi\">Hi</h2>\n" {
		t.Errorf("Markdown component = %q", buf.String())
	}
}
