package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eringen/inkwell/markdown"
	"github.com/eringen/inkwell/toc"
)

// ErrNoFrontMatter is returned for a post that does not start with a
// "---" fenced front-matter block.
var ErrNoFrontMatter = errors.New("missing front matter")

// Entry is one validated post of the collection.
type Entry struct {
	Slug     string
	Path     string // source file, empty for entries parsed from memory
	Meta     Meta
	Body     string
	HTML     string
	Headings []toc.Heading
}

// Collection is the ordered set of posts loaded from a directory.
type Collection struct {
	Dir     string
	Entries []Entry
}

// Get returns the entry with the given slug.
func (c *Collection) Get(slug string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entry{}, false
}

// SplitFrontMatter separates the leading "---" block of src from the body.
func SplitFrontMatter(src []byte) (frontMatter, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return nil, nil, ErrNoFrontMatter
	}
	rest := src[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---")) {
		return nil, bytes.TrimPrefix(rest[3:], []byte("\n")), nil
	}
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, ErrNoFrontMatter
	}
	frontMatter = rest[:end+1]
	body = rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return frontMatter, body, nil
}

// Parse validates the front matter of src and renders its body.
func Parse(slug string, src []byte) (Entry, error) {
	fm, body, err := SplitFrontMatter(src)
	if err != nil {
		return Entry{}, err
	}
	meta, err := Decode(fm)
	if err != nil {
		return Entry{}, err
	}
	doc, err := markdown.Parse(body)
	if err != nil {
		return Entry{}, fmt.Errorf("render body: %w", err)
	}
	return Entry{
		Slug:     slug,
		Meta:     meta,
		Body:     string(body),
		HTML:     doc.HTML,
		Headings: doc.Headings,
	}, nil
}

// SlugFromPath derives an entry slug from its file name.
func SlugFromPath(path string) string {
	name := filepath.Base(path)
	return markdown.Slug(strings.TrimSuffix(name, filepath.Ext(name)))
}

// Load parses every Markdown file in dir. Entries are ordered newest first.
// Files that fail validation are reported together in the returned error,
// alongside the collection of entries that did load.
func Load(dir string) (*Collection, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	c := &Collection{Dir: dir}
	var errs []error
	seen := make(map[string]string)
	for _, f := range files {
		if f.IsDir() || !isMarkdown(f.Name()) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		slug := SlugFromPath(path)
		if prev, dup := seen[slug]; dup {
			errs = append(errs, fmt.Errorf("%s: slug %q already used by %s", f.Name(), slug, prev))
			continue
		}
		entry, err := Parse(slug, src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		entry.Path = path
		seen[slug] = f.Name()
		c.Entries = append(c.Entries, entry)
	}
	sort.SliceStable(c.Entries, func(i, j int) bool {
		a, b := c.Entries[i], c.Entries[j]
		if !a.Meta.PubDate.Equal(b.Meta.PubDate) {
			return a.Meta.PubDate.After(b.Meta.PubDate)
		}
		return a.Slug < b.Slug
	})
	return c, errors.Join(errs...)
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
