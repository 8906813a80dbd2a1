// Package markdown renders post bodies to HTML and extracts their heading
// index. Every rendered heading carries the id its index entry links to.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/eringen/inkwell/toc"
)

const linkClass = "underline decoration-2 underline-offset-4"

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(linkClassTransformer{}, 100)),
	),
)

// Document is a rendered post body with its heading index.
type Document struct {
	HTML     string
	Headings []toc.Heading
}

// Parse renders src and returns the HTML together with every heading in
// document order.
func Parse(src []byte) (Document, error) {
	doc := engine.Parser().Parse(text.NewReader(src))
	headings := assignHeadingIDs(doc, src)

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, src, doc); err != nil {
		return Document{}, err
	}
	return Document{HTML: buf.String(), Headings: headings}, nil
}

// Headings returns the heading index of src without keeping the HTML.
func Headings(src []byte) []toc.Heading {
	doc := engine.Parser().Parse(text.NewReader(src))
	return assignHeadingIDs(doc, src)
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of md to buf. A render
// failure leaves whatever was written so far.
func RenderMarkdown(buf *bytes.Buffer, md string) {
	src := []byte(md)
	doc := engine.Parser().Parse(text.NewReader(src))
	assignHeadingIDs(doc, src)
	_ = engine.Renderer().Render(buf, src, doc)
}

// assignHeadingIDs slugs every heading's text, sets it as the heading's id
// attribute and returns the resulting index.
func assignHeadingIDs(doc ast.Node, src []byte) []toc.Heading {
	slugger := NewSlugger()
	headings := []toc.Heading{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := nodeText(h, src)
		slug := slugger.Slug(title)
		h.SetAttributeString("id", []byte(slug))
		headings = append(headings, toc.Heading{
			Depth: h.Level,
			Text:  title,
			Slug:  slug,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// nodeText concatenates the text content below n.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}

type linkClassTransformer struct{}

func (linkClassTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := n.(*ast.Link); ok && entering {
			link.SetAttributeString("class", []byte(linkClass))
		}
		return ast.WalkContinue, nil
	})
}
