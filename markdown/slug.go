package markdown

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger turns heading text into unique, fragment-safe ids. It follows the
// conventions of GitHub's anchor slugs so links written by hand keep working:
// text is lowercased, punctuation is dropped, each space becomes a hyphen and
// repeated slugs get a numeric suffix.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns a Slugger with no slugs issued.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns the id for text, unique among the slugs this Slugger issued.
func (s *Slugger) Slug(text string) string {
	base := Slug(text)
	slug := base
	for {
		if _, taken := s.seen[slug]; !taken {
			break
		}
		s.seen[base]++
		slug = base + "-" + strconv.Itoa(s.seen[base])
	}
	s.seen[slug] = 0
	return slug
}

// Reset forgets every issued slug.
func (s *Slugger) Reset() {
	s.seen = make(map[string]int)
}

// Slug converts text to a fragment id without de-duplication.
func Slug(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
