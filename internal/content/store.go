// internal/content/store.go
package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store enumerates and loads post source documents from a single directory.
// The directory is indexed once; a Store reflects the content as it was on
// first use and is safe for concurrent use.
type Store struct {
	dir string

	once     sync.Once
	index    map[string]string // slug -> file path
	posts    []Post            // metadata only, in listing order
	indexErr error
}

// NewStore returns a Store reading posts from dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// ListPosts returns every post sorted newest first (ties by slug).
// Bodies are loaded only when includeBody is set.
func (s *Store) ListPosts(includeBody bool) ([]Post, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	if !includeBody {
		return posts, nil
	}
	for i, p := range posts {
		full, err := s.readPost(s.index[p.Slug], true)
		if err != nil {
			return nil, err
		}
		posts[i] = full
	}
	return posts, nil
}

// Slugs returns the slug of every post in listing order.
func (s *Store) Slugs() ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	slugs := make([]string, len(s.posts))
	for i, p := range s.posts {
		slugs[i] = p.Slug
	}
	return slugs, nil
}

// Resolve returns the post for slug with its full body.
func (s *Store) Resolve(slug string) (Post, error) {
	if err := s.load(); err != nil {
		return Post{}, err
	}
	path, ok := s.index[slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: %q", ErrPostNotFound, slug)
	}
	return s.readPost(path, true)
}

func (s *Store) load() error {
	s.once.Do(func() {
		s.index, s.posts, s.indexErr = s.scan()
	})
	return s.indexErr
}

// scan reads the front matter of every post file and checks slug uniqueness.
func (s *Store) scan() (map[string]string, []Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read content directory %s: %w", s.dir, err)
	}

	index := make(map[string]string)
	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !IsPostFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		post, err := s.readPost(path, false)
		if err != nil {
			return nil, nil, err
		}
		if other, dup := index[post.Slug]; dup {
			return nil, nil, &LoadError{
				File: path,
				Err:  fmt.Errorf("slug %q is already used by %s", post.Slug, filepath.Base(other)),
			}
		}
		index[post.Slug] = path
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})
	log.Printf("component=content action=indexed dir=%s posts=%d", s.dir, len(posts))
	return index, posts, nil
}

func (s *Store) readPost(path string, includeBody bool) (Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, &LoadError{File: path, Err: err}
	}
	post, err := parsePost(filepath.Base(path), raw, includeBody)
	if err != nil {
		return Post{}, &LoadError{File: path, Err: err}
	}
	return post, nil
}
