package inkwell

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/eringen/inkwell/content"
)

// Importer copies a content collection into the store. Local hero images
// are resized into the static uploads directory on the way.
type Importer struct {
	Store     *Store
	StaticDir string
}

// ImportDir loads the collection in dir and imports every valid entry. It
// returns the number of posts saved; invalid files are reported in the
// error without stopping the import.
func (imp *Importer) ImportDir(dir string) (int, error) {
	coll, loadErr := content.Load(dir)
	if coll == nil {
		return 0, loadErr
	}
	n, err := imp.Import(coll)
	return n, errors.Join(loadErr, err)
}

// Import saves every entry of coll as a published post.
func (imp *Importer) Import(coll *content.Collection) (int, error) {
	var errs []error
	saved := 0
	for _, e := range coll.Entries {
		post := PostFromEntry(e)
		if isLocalImage(e.Meta.Image) && imp.StaticDir != "" {
			base := coll.Dir
			if e.Path != "" {
				base = filepath.Dir(e.Path)
			}
			public, _, err := importHeroImage(imp.StaticDir, filepath.Join(base, filepath.FromSlash(e.Meta.Image)), e.Slug)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: hero image: %w", e.Slug, err))
			} else {
				post.Image = public
			}
		}
		if err := imp.Store.SavePost(post); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Slug, err))
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

// PostFromEntry converts a collection entry to a published BlogPost.
func PostFromEntry(e content.Entry) BlogPost {
	return BlogPost{
		Slug:        e.Slug,
		Title:       e.Meta.Title,
		Description: e.Meta.Description,
		PubDate:     e.Meta.PubDate,
		Image:       e.Meta.Image,
		Link:        "/blog/" + e.Slug,
		Content:     e.Body,
		Headings:    e.Headings,
		Published:   true,
	}
}
