package inkwell

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eringen/inkwell/toc"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for blog posts
// and their heading index.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    pub_date TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS headings (
    post_slug TEXT NOT NULL,
    position INTEGER NOT NULL,
    depth INTEGER NOT NULL,
    text TEXT NOT NULL,
    slug TEXT NOT NULL,
    PRIMARY KEY (post_slug, position)
);
`)
	return err
}

const postColumns = `slug, title, description, pub_date, image, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (BlogPost, error) {
	var slug, title, description, pubDate, image, content string
	var published int
	if err := row.Scan(&slug, &title, &description, &pubDate, &image, &content, &published); err != nil {
		return BlogPost{}, err
	}
	date, err := time.Parse(time.RFC3339, pubDate)
	if err != nil {
		return BlogPost{}, fmt.Errorf("post %q: pub_date: %w", slug, err)
	}
	return BlogPost{
		Slug:        slug,
		Title:       title,
		Description: description,
		PubDate:     date.UTC(),
		Image:       image,
		Content:     content,
		Link:        "/blog/" + slug,
		Published:   published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by publication date descending.
// Headings are not loaded; use GetPost for a single post with its index.
func (s *Store) ListPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY pub_date DESC, slug`)
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY pub_date DESC, slug`)
}

// GetPost returns a single published post by slug, headings included.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
	if err != nil {
		return BlogPost{}, err
	}
	p.Headings, err = s.ListHeadings(slug)
	return p, err
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
	if err != nil {
		return BlogPost{}, err
	}
	p.Headings, err = s.ListHeadings(slug)
	return p, err
}

// ListHeadings returns the heading index of a post in document order.
func (s *Store) ListHeadings(slug string) ([]toc.Heading, error) {
	rows, err := s.db.Query(`SELECT depth, text, slug FROM headings WHERE post_slug = ? ORDER BY position`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	headings := []toc.Heading{}
	for rows.Next() {
		var h toc.Heading
		if err := rows.Scan(&h.Depth, &h.Text, &h.Slug); err != nil {
			return nil, err
		}
		headings = append(headings, h)
	}
	return headings, rows.Err()
}

// SavePost upserts a blog post and replaces its heading index.
func (s *Store) SavePost(p BlogPost) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	published := 0
	if p.Published {
		published = 1
	}
	if _, err := tx.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			pub_date = excluded.pub_date,
			image = excluded.image,
			content = excluded.content,
			published = excluded.published`,
		p.Slug, p.Title, p.Description, p.PubDate.UTC().Format(time.RFC3339), p.Image, p.Content, published); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM headings WHERE post_slug = ?`, p.Slug); err != nil {
		return err
	}
	for i, h := range p.Headings {
		if _, err := tx.Exec(`INSERT INTO headings (post_slug, position, depth, text, slug) VALUES (?, ?, ?, ?, ?)`,
			p.Slug, i, h.Depth, h.Text, h.Slug); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeletePost removes a post and its heading index.
func (s *Store) DeletePost(slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM headings WHERE post_slug = ?`, slug); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return err
	}
	return tx.Commit()
}
