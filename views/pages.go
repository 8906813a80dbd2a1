package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
	"github.com/eringen/inkwell/markdown"
	"github.com/eringen/inkwell/toc"
)

// Home lists published posts, newest first.
func Home(cfg inkwell.SiteConfig, posts []inkwell.BlogPost) templ.Component {
	var b strings.Builder
	b.WriteString(`<h1>` + esc(cfg.Name) + `</h1>`)
	if cfg.Description != "" {
		b.WriteString(`<p class="site-description">` + esc(cfg.Description) + `</p>`)
	}
	if len(posts) == 0 {
		b.WriteString(`<p>No posts yet.</p>`)
	} else {
		b.WriteString(`<ul class="post-list">`)
		for _, p := range posts {
			b.WriteString(`<li class="post-item"><a href="/blog/` + esc(inkwell.PathEscape(p.Slug)) + `/">` + esc(p.Title) + `</a>`)
			b.WriteString(` <time datetime="` + esc(p.Date()) + `">` + esc(p.Date()) + `</time>`)
			if p.Description != "" {
				b.WriteString(`<p>` + esc(p.Description) + `</p>`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}
	meta := inkwell.PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         inkwell.BuildURL(cfg.URL),
		OGType:      "website",
	}
	return Layout(cfg, meta, inkwell.WebsiteJsonLD(cfg), raw(b.String()))
}

// Post renders an article with its table of contents. The markdown body is
// wrapped in the widget's observation region.
func Post(cfg inkwell.SiteConfig, post inkwell.BlogPost, nav *toc.Widget) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="post"><header><h1>` + esc(post.Title) + `</h1>`)
		b.WriteString(`<time datetime="` + esc(post.Date()) + `">` + esc(post.Date()) + `</time>`)
		if post.Image != "" {
			b.WriteString(`<img class="hero" src="` + esc(post.Image) + `" alt="">`)
		}
		b.WriteString(`</header>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if nav != nil {
			if err := toc.Nav(nav).Render(ctx, w); err != nil {
				return err
			}
			if err := toc.Region(nav.ID(), markdown.Markdown(post.Content)).Render(ctx, w); err != nil {
				return err
			}
		} else if err := markdown.Markdown(post.Content).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
	meta := inkwell.PageMeta{
		Title:       post.Title,
		Description: post.Description,
		URL:         inkwell.BuildURL(cfg.URL, "blog", post.Slug),
		OGType:      "article",
		Image:       post.Image,
	}
	return Layout(cfg, meta, inkwell.BlogPostingJsonLD(post, cfg), body)
}
