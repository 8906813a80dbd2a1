// Package views holds the default page components for an inkwell site.
// Sites that want their own markup pass a different inkwell.ViewFuncs.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
	"github.com/eringen/inkwell/toc"
)

// Funcs returns the default view set bound to cfg.
func Funcs(cfg inkwell.SiteConfig) inkwell.ViewFuncs {
	return inkwell.ViewFuncs{
		Home: func(posts []inkwell.BlogPost, siteURL string) templ.Component {
			return Home(cfg, posts)
		},
		Post: func(post inkwell.BlogPost, nav *toc.Widget, siteURL string) templ.Component {
			return Post(cfg, post, nav)
		},
		TOC:              toc.Nav,
		AdminLogin:       AdminLogin,
		AdminDashboard:   AdminDashboard,
		AdminFormPartial: AdminForm,
		NotFound: func() templ.Component {
			return Message(cfg, "Not found", "The page you were looking for does not exist.")
		},
		ServerError: func() templ.Component {
			return Message(cfg, "Something went wrong", "Please try again in a moment.")
		},
	}
}

// Layout wraps body in the site chrome. jsonLD is emitted verbatim inside
// an application/ld+json script when non-empty.
func Layout(cfg inkwell.SiteConfig, meta inkwell.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := meta.Title
		if title == "" {
			title = cfg.Name
		} else if title != cfg.Name {
			title += " | " + cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + esc(title) + `</title>`)
		if desc != "" {
			b.WriteString(`<meta name="description" content="` + esc(desc) + `">`)
			b.WriteString(`<meta property="og:description" content="` + esc(desc) + `">`)
		}
		b.WriteString(`<meta property="og:title" content="` + esc(title) + `">`)
		b.WriteString(`<meta property="og:type" content="` + esc(ogType) + `">`)
		if meta.URL != "" {
			b.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `">`)
			b.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `">`)
		}
		if img := inkwell.AbsoluteURL(cfg.URL, meta.Image); img != "" {
			b.WriteString(`<meta property="og:image" content="` + esc(img) + `">`)
		}
		b.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(cfg.Name) + `" href="/feed.xml">`)
		if jsonLD != "" {
			// JSON-LD must not close the script element early.
			b.WriteString(`<script type="application/ld+json">` + strings.ReplaceAll(jsonLD, "</", `<\/`) + `</script>`)
		}
		b.WriteString(`<script src="/public/toc.js" defer></script>`)
		b.WriteString(`</head><body><header class="site-header"><a href="/">` + esc(cfg.Name) + `</a></header><main>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer class="site-footer"><a href="/feed.xml">RSS</a></footer></body></html>`)
		return err
	})
}

// Message renders a bare page with a heading and one paragraph.
func Message(cfg inkwell.SiteConfig, title, text string) templ.Component {
	return Layout(cfg, inkwell.PageMeta{Title: title}, "", raw(`<h1>`+esc(title)+`</h1><p>`+esc(text)+`</p>`))
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}
