// internal/content/post.go
package content

import (
	"errors"
	"fmt"
	"time"
)

// ErrPostNotFound is returned by Resolve when no source document produces the slug.
var ErrPostNotFound = errors.New("post not found")

// Post is a single blog entry as read from its source document.
type Post struct {
	Slug        string
	Title       string
	Description string
	Body        string // empty unless loaded with body
	FileName    string
	Tags        []string
	PublishedAt time.Time
	UpdatedAt   time.Time // zero when the post was never revised
	Draft       bool
	OriginalURL string // set for content cross-posted from elsewhere
	Image       string
}

// Updated reports whether the post carries a revision date.
func (p Post) Updated() bool {
	return !p.UpdatedAt.IsZero()
}

// LoadError reports a source document that cannot become a Post.
// It is always fatal for a build.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
