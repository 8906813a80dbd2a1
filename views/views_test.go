package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
	"github.com/eringen/inkwell/toc"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

var testCfg = inkwell.SiteConfig{Name: "Notes", URL: "https://example.com", Author: "Ada"}

func TestPostWrapsBodyInRegion(t *testing.T) {
	post := inkwell.BlogPost{
		Slug:    "hello",
		Title:   "Hello",
		PubDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Content: "## Intro\n\ntext\n",
	}
	nav := toc.New("w1", []toc.Heading{{Depth: 2, Text: "Intro", Slug: "intro"}})
	out := render(t, Post(testCfg, post, nav))

	for _, want := range []string{
		`data-toc="w1"`,
		`data-toc-region="w1"`,
		`<h2 id="intro">Intro</h2>`,
		`<a href="#intro">Intro</a>`,
		`<script src="/public/toc.js" defer></script>`,
		`"@type":"BlogPosting"`,
		`<link rel="canonical" href="https://example.com/blog/hello/">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, `data-toc="w1"`) > strings.Index(out, `data-toc-region="w1"`) {
		t.Errorf("expected nav before the region")
	}
}

func TestHomeEscapesTitles(t *testing.T) {
	out := render(t, Home(testCfg, []inkwell.BlogPost{{Slug: "x", Title: "<b>bold</b>"}}))
	if strings.Contains(out, "<b>bold</b>") {
		t.Fatalf("title not escaped: %s", out)
	}
	if !strings.Contains(out, `href="/blog/x/"`) {
		t.Fatalf("missing post link: %s", out)
	}
}

func TestHomeEmpty(t *testing.T) {
	out := render(t, Home(testCfg, nil))
	if !strings.Contains(out, "No posts yet.") {
		t.Fatalf("expected empty state, got %s", out)
	}
}

func TestAdminFormIncludesCSRFToken(t *testing.T) {
	out := render(t, AdminForm(inkwell.BlogPost{Title: "T", Published: true}, "tok\"en"))
	if !strings.Contains(out, `name="_csrf" value="tok&#34;en"`) {
		t.Fatalf("csrf token not escaped into form: %s", out)
	}
	if !strings.Contains(out, `value="1" checked`) {
		t.Fatalf("published box not checked: %s", out)
	}
}

func TestAdminLoginError(t *testing.T) {
	if out := render(t, AdminLogin(true, "t")); !strings.Contains(out, "Invalid password.") {
		t.Fatalf("expected error message: %s", out)
	}
	if out := render(t, AdminLogin(false, "t")); strings.Contains(out, "Invalid password.") {
		t.Fatalf("unexpected error message: %s", out)
	}
}

func TestFuncsFillsEveryView(t *testing.T) {
	v := Funcs(testCfg)
	if v.Home == nil || v.Post == nil || v.TOC == nil || v.AdminLogin == nil ||
		v.AdminDashboard == nil || v.AdminFormPartial == nil || v.NotFound == nil || v.ServerError == nil {
		t.Fatalf("Funcs left a view unset: %+v", v)
	}
	if out := render(t, v.NotFound()); !strings.Contains(out, "Not found") {
		t.Fatalf("unexpected not found page: %s", out)
	}
}
