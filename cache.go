package inkwell

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published blog posts with TTL.
// Heading indexes are cached per post on first access.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	full    map[string]BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.full = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	c.posts = posts
	c.full = make(map[string]BlogPost)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// ListPosts returns published posts, newest first.
func (c *PostCache) ListPosts() ([]BlogPost, error) {
	return c.ensureLoaded()
}

// GetPost returns a single published post by slug with its heading index.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	found := false
	for _, p := range posts {
		if p.Slug == slug {
			found = true
			break
		}
	}
	if !found {
		return BlogPost{}, ErrNotFound
	}

	c.mu.RLock()
	p, ok := c.full[slug]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err = c.store.GetPost(slug)
	if err != nil {
		return BlogPost{}, err
	}
	c.mu.Lock()
	if c.full != nil {
		c.full[slug] = p
	}
	c.mu.Unlock()
	return p, nil
}
