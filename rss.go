package inkwell

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// buildFeed converts published posts to an RSS 2.0 document. Posts are
// expected newest first.
func buildFeed(cfg SiteConfig, posts []BlogPost) rssXML {
	base := cfg.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := BuildURL(base, "blog", p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			GUID:        postURL,
		}
		if !p.PubDate.IsZero() {
			item.PubDate = p.PubDate.Format(time.RFC1123Z)
		}
		if img := AbsoluteURL(base, p.Image); img != "" {
			item.Enclosure = &rssEnclosure{URL: img, Type: imageMIME(p.Image)}
		}
		items = append(items, item)
	}
	channel := rssChannel{
		Title:       cfg.Name,
		Link:        base,
		Description: cfg.Description,
		Items:       items,
	}
	if len(posts) > 0 && !posts[0].PubDate.IsZero() {
		channel.LastBuildDate = posts[0].PubDate.Format(time.RFC1123Z)
	}
	return rssXML{Version: "2.0", Channel: channel}
}

func (a *App) renderRSS(c echo.Context, posts []BlogPost) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(buildFeed(a.Config, posts))
}
