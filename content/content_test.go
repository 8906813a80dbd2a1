package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validFields() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Hello",
		"description": "A short description",
		"pubDate":     "2024-01-01",
	}
}

func TestValidateDescriptionLength(t *testing.T) {
	tests := []struct {
		length int
		valid  bool
	}{
		{0, true},
		{159, true},
		{160, true},
		{161, false},
		{300, false},
	}
	for _, tt := range tests {
		fields := validFields()
		fields["description"] = strings.Repeat("a", tt.length)
		_, err := Validate(fields)
		if tt.valid && err != nil {
			t.Errorf("length %d: unexpected error %v", tt.length, err)
		}
		if !tt.valid {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("length %d: error = %v, want *ValidationError", tt.length, err)
			}
			if !verr.Has("description") {
				t.Errorf("length %d: issues = %+v, want description issue", tt.length, verr.Issues)
			}
			if verr.Issues[0].Message != "For SEO juices, keep below 160 characters" {
				t.Errorf("message = %q", verr.Issues[0].Message)
			}
		}
	}
}

func TestValidateDescriptionCountsUTF16Units(t *testing.T) {
	// Each emoji is two UTF-16 code units.
	fields := validFields()
	fields["description"] = strings.Repeat("😀", 80)
	if _, err := Validate(fields); err != nil {
		t.Errorf("160 code units should pass: %v", err)
	}
	fields["description"] = strings.Repeat("😀", 80) + "a"
	if _, err := Validate(fields); err == nil {
		t.Error("161 code units should fail")
	}
}

func TestValidatePubDate(t *testing.T) {
	meta, err := Validate(validFields())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !meta.PubDate.Equal(want) {
		t.Errorf("PubDate = %v, want %v", meta.PubDate, want)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:30:00Z", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-03-05T10:30:00+02:00", time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)},
		{"2024-03-05T10:30:00", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"July 4, 2023", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"Jul 4 2023", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{" 2024-01-01 ", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.expected) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Error("ParseDate(yesterday) should fail")
	}
}

func TestValidateRequiredAndTypes(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(map[string]interface{})
		field string
	}{
		{"missing title", func(f map[string]interface{}) { delete(f, "title") }, "title"},
		{"null title", func(f map[string]interface{}) { f["title"] = nil }, "title"},
		{"numeric title", func(f map[string]interface{}) { f["title"] = 42 }, "title"},
		{"missing description", func(f map[string]interface{}) { delete(f, "description") }, "description"},
		{"list description", func(f map[string]interface{}) { f["description"] = []interface{}{"a"} }, "description"},
		{"missing pubDate", func(f map[string]interface{}) { delete(f, "pubDate") }, "pubDate"},
		{"bad pubDate", func(f map[string]interface{}) { f["pubDate"] = "not a date" }, "pubDate"},
		{"numeric pubDate", func(f map[string]interface{}) { f["pubDate"] = 2024 }, "pubDate"},
		{"numeric image", func(f map[string]interface{}) { f["image"] = 1 }, "image"},
	}
	for _, tt := range tests {
		fields := validFields()
		tt.edit(fields)
		_, err := Validate(fields)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: error = %v, want *ValidationError", tt.name, err)
			continue
		}
		if !verr.Has(tt.field) {
			t.Errorf("%s: issues = %+v, want %s issue", tt.name, verr.Issues, tt.field)
		}
	}
}

func TestValidateOptionalImage(t *testing.T) {
	meta, err := Validate(validFields())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if meta.Image != "" {
		t.Errorf("Image = %q, want empty", meta.Image)
	}
	fields := validFields()
	fields["image"] = "hero.png"
	fields["draft"] = true
	meta, err = Validate(fields)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if meta.Image != "hero.png" {
		t.Errorf("Image = %q, want hero.png", meta.Image)
	}
}

func TestValidateReportsEveryIssue(t *testing.T) {
	_, err := Validate(map[string]interface{}{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(verr.Issues) != 3 {
		t.Errorf("Issues = %+v, want 3", verr.Issues)
	}
	if !strings.Contains(err.Error(), "title: required") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDecodeYAML(t *testing.T) {
	raw := []byte("title: \"Hello: World\"\ndescription: Short\npubDate: \"2024-01-01\"\nimage: /public/a.jpg\n")
	meta, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if meta.Title != "Hello: World" || meta.Description != "Short" || meta.Image != "/public/a.jpg" {
		t.Errorf("Decode = %+v", meta)
	}
	if !meta.PubDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PubDate = %v", meta.PubDate)
	}

	if _, err := Decode([]byte("title: [unclosed")); err == nil {
		t.Error("Decode should fail on malformed YAML")
	}
}

func TestDecodeRejectsNonStringDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unquoted date", "title: T\ndescription: d\npubDate: 2024-01-01\n"},
		{"unquoted datetime", "title: T\ndescription: d\npubDate: 2024-01-01T10:00:00Z\n"},
		{"number", "title: T\ndescription: d\npubDate: 20240101\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			var verr *ValidationError
			if !errors.As(err, &verr) || !verr.Has("pubDate") {
				t.Fatalf("Decode(%q) err = %v, want pubDate issue", tt.raw, err)
			}
		})
	}
}

func TestValidateRejectsTimeValue(t *testing.T) {
	fields := validFields()
	fields["pubDate"] = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := Validate(fields)
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("pubDate") {
		t.Fatalf("Validate err = %v, want pubDate issue", err)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		fm   string
		body string
		err  error
	}{
		{"basic", "---\ntitle: x\n---\nbody\n", "title: x\n", "body\n", nil},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody", "title: x\n", "body", nil},
		{"no body", "---\ntitle: x\n---", "title: x\n", "", nil},
		{"empty block", "---\n---\nbody", "", "body", nil},
		{"missing", "# just markdown", "", "", ErrNoFrontMatter},
		{"unterminated", "---\ntitle: x\n", "", "", ErrNoFrontMatter},
	}
	for _, tt := range tests {
		fm, body, err := SplitFrontMatter([]byte(tt.src))
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.err)
			continue
		}
		if string(fm) != tt.fm || string(body) != tt.body {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tt.name, fm, body, tt.fm, tt.body)
		}
	}
}

func TestParseEntry(t *testing.T) {
	src := "---\ntitle: Post\ndescription: d\npubDate: \"2024-02-03\"\n---\n## First\n\ntext\n\n### Second\n"
	e, err := Parse("post", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.Slug != "post" || e.Meta.Title != "Post" {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Headings) != 2 || e.Headings[0].Slug != "first" || e.Headings[1].Depth != 3 {
		t.Errorf("Headings = %+v", e.Headings)
	}
	if !strings.Contains(e.HTML, `<h2 id="first">First</h2>`) {
		t.Errorf("HTML = %q", e.HTML)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadCollection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "older-post.md", "---\ntitle: Older\ndescription: d\npubDate: \"2023-05-01\"\n---\n## A\n")
	writeFile(t, dir, "Newer Post.markdown", "---\ntitle: Newer\ndescription: d\npubDate: \"2024-05-01\"\n---\nbody\n")
	writeFile(t, dir, "broken.md", "---\ntitle: Broken\ndescription: "+strings.Repeat("x", 161)+"\npubDate: \"2024-01-01\"\n---\n")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err == nil {
		t.Fatal("Load should report the broken post")
	}
	if !strings.Contains(err.Error(), "broken.md") {
		t.Errorf("error should name the file: %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("joined error should unwrap to *ValidationError: %v", err)
	}
	if len(c.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(c.Entries))
	}
	if c.Entries[0].Slug != "newer-post" || c.Entries[1].Slug != "older-post" {
		t.Errorf("order = %q, %q; want newest first", c.Entries[0].Slug, c.Entries[1].Slug)
	}
	if _, ok := c.Get("older-post"); !ok {
		t.Error("Get(older-post) should find the entry")
	}
	if e, _ := c.Get("older-post"); e.Path != filepath.Join(dir, "older-post.md") {
		t.Errorf("Path = %q", e.Path)
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load should fail for a missing directory")
	}
}
