package toc

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Links renders headings as a flat list of in-page links. The item whose
// slug equals active carries the "active" class.
func Links(headings []Heading, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeList(&b, "", headings, active, true)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Nav renders the full widget: toggle button and link list. The list is
// hidden while the widget is collapsed.
func Nav(wd *Widget) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := html.EscapeString(wd.ID())
		expanded := wd.Expanded()
		state := strconv.FormatBool(expanded)

		var b strings.Builder
		b.WriteString(`<nav class="toc" id="toc-` + id + `" data-toc="` + id + `" data-expanded="` + state + `" aria-label="Table of contents">`)
		b.WriteString(`<button type="button" class="toc-toggle" data-toc-toggle aria-expanded="` + state + `" aria-controls="toc-` + id + `-list">Contents</button>`)
		writeList(&b, "toc-"+wd.ID()+"-list", wd.Headings(), wd.Active(), expanded)
		b.WriteString(`</nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Region wraps body in the scoped observation region of widget id. Only
// headings inside the region are observed by the browser script.
func Region(id string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="toc-region" data-toc-region="`+html.EscapeString(id)+`">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeList(b *strings.Builder, id string, headings []Heading, active string, visible bool) {
	b.WriteString(`<ul class="toc-list"`)
	if id != "" {
		b.WriteString(` id="` + html.EscapeString(id) + `"`)
	}
	if !visible {
		b.WriteString(` hidden`)
	}
	b.WriteString(`>`)
	for _, h := range headings {
		slug := html.EscapeString(h.Slug)
		if active != "" && h.Slug == active {
			b.WriteString(`<li class="toc-item active" data-depth="` + strconv.Itoa(h.Depth) + `">`)
			b.WriteString(`<a href="#` + slug + `" aria-current="location">`)
		} else {
			b.WriteString(`<li class="toc-item" data-depth="` + strconv.Itoa(h.Depth) + `">`)
			b.WriteString(`<a href="#` + slug + `">`)
		}
		b.WriteString(html.EscapeString(h.Text))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul>`)
}
