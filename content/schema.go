// Package content defines the blog collection: the front-matter schema every
// post must satisfy and a loader for a directory of Markdown posts.
package content

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"gopkg.in/yaml.v3"
)

// MaxDescriptionLength is the longest description accepted, measured in
// UTF-16 code units so it agrees with browser-side length checks.
const MaxDescriptionLength = 160

const descriptionTooLong = "For SEO juices, keep below 160 characters"

// Meta is a validated front-matter record.
type Meta struct {
	Title       string
	Description string
	PubDate     time.Time
	Image       string // empty when the post has no image
}

// Issue describes one field that failed validation.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every issue found in a front-matter record.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return "invalid front matter: " + strings.Join(parts, "; ")
}

// Has reports whether field has an issue.
func (e *ValidationError) Has(field string) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// yamlDate marks a pubDate written as an unquoted YAML timestamp. The
// schema expects a string, so such values fail validation.
type yamlDate string

// Decode parses YAML front matter and validates it.
func Decode(raw []byte) (Meta, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Meta{}, fmt.Errorf("parse front matter: %w", err)
	}
	fields := map[string]interface{}{}
	if len(doc.Content) == 0 {
		return Validate(fields)
	}
	root := doc.Content[0]
	if err := root.Decode(&fields); err != nil {
		return Meta{}, fmt.Errorf("parse front matter: %w", err)
	}
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]
			if k.Value == "pubDate" && v.ShortTag() == "!!timestamp" {
				fields["pubDate"] = yamlDate(v.Value)
			}
		}
	}
	return Validate(fields)
}

// Validate checks decoded front-matter fields against the blog schema.
// Unknown fields are ignored.
func Validate(fields map[string]interface{}) (Meta, error) {
	var meta Meta
	var issues []Issue
	add := func(field, msg string) {
		issues = append(issues, Issue{Field: field, Message: msg})
	}

	if s, msg := requiredString(fields, "title"); msg != "" {
		add("title", msg)
	} else {
		meta.Title = s
	}

	if s, msg := requiredString(fields, "description"); msg != "" {
		add("description", msg)
	} else if DescriptionLength(s) > MaxDescriptionLength {
		add("description", descriptionTooLong)
	} else {
		meta.Description = s
	}

	switch v := fields["pubDate"].(type) {
	case nil:
		add("pubDate", "required")
	case string:
		t, err := ParseDate(v)
		if err != nil {
			add("pubDate", err.Error())
		} else {
			meta.PubDate = t
		}
	case yamlDate:
		add("pubDate", fmt.Sprintf("expected string, got unquoted date %s; quote it", string(v)))
	default:
		add("pubDate", fmt.Sprintf("expected string, got %T", v))
	}

	switch v := fields["image"].(type) {
	case nil:
	case string:
		meta.Image = v
	default:
		add("image", fmt.Sprintf("expected string, got %T", v))
	}

	if len(issues) > 0 {
		return Meta{}, &ValidationError{Issues: issues}
	}
	return meta, nil
}

func requiredString(fields map[string]interface{}, key string) (string, string) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", "required"
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Sprintf("expected string, got %T", v)
	}
	return s, ""
}

// DescriptionLength returns the length of s in UTF-16 code units.
func DescriptionLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate converts a pubDate string to a time. Dates without a zone are
// taken as UTC; a bare date is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
