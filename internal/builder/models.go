// internal/builder/models.go
package builder

import (
	"html/template"
	"time"

	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/seo"
)

// Page is one rendered output file, addressed relative to the output directory.
type Page struct {
	Slug string
	Path string
	HTML []byte
}

// PageData is the struct passed to templates.
type PageData struct {
	Site    config.SiteConfig
	Title   string
	Lang    string
	Meta    *seo.PageMetadata // nil on listing pages
	JSONLD  template.JS
	Post    *content.Post
	Content template.HTML
	Posts   []PostSummary
}

// PostSummary is a post as shown in the blog listing.
type PostSummary struct {
	Slug        string
	Path        string
	Title       string
	Description string
	PublishedAt time.Time
	Tags        []string
	Draft       bool
}
