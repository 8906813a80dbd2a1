package inkwell

import (
	"time"

	"github.com/eringen/inkwell/toc"
)

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Slug        string
	Title       string
	Description string
	PubDate     time.Time
	Image       string
	Link        string
	Content     string
	Headings    []toc.Heading
	Published   bool
}

// Date formats PubDate the way posts display and feeds it to the admin form.
func (p BlogPost) Date() string {
	if p.PubDate.IsZero() {
		return ""
	}
	return p.PubDate.Format(dateLayout)
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

const dateLayout = "2006-01-02"
