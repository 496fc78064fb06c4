// internal/builder/render.go
package builder

import (
	"bytes"
	"context"
	"html/template"
	"path"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/document"
	"github.com/farskid/farzadyz.me/internal/seo"
)

// Renderer binds posts, their compiled documents and metadata into pages.
// It performs no I/O.
type Renderer struct {
	site   config.SiteConfig
	tmpl   *Templates
	binder document.Binder
}

// NewRenderer returns a Renderer using tmpl and resolving embedded components through binder.
func NewRenderer(site config.SiteConfig, tmpl *Templates, binder document.Binder) *Renderer {
	return &Renderer{site: site, tmpl: tmpl, binder: binder}
}

// PostPath is the output path of a post page.
func PostPath(slug string) string {
	return path.Join("blog", slug, "index.html")
}

// Render produces the page for one post.
func (r *Renderer) Render(ctx context.Context, post content.Post, doc *document.Document, meta seo.PageMetadata) (Page, error) {
	body, err := templ.ToGoHTML(ctx, doc.Component(r.binder))
	if err != nil {
		return Page{}, err
	}

	data := PageData{
		Site:    r.site,
		Title:   meta.Title,
		Lang:    lang(r.site.Locale),
		Meta:    &meta,
		JSONLD:  template.JS(meta.JSONLD),
		Post:    &post,
		Content: body,
	}
	var buf bytes.Buffer
	// "main" is the name of the template defined within the layout file.
	if err := r.tmpl.post.ExecuteTemplate(&buf, "main", data); err != nil {
		return Page{}, err
	}
	return Page{Slug: post.Slug, Path: PostPath(post.Slug), HTML: buf.Bytes()}, nil
}

// RenderIndex produces the blog listing for posts, in the order given.
func (r *Renderer) RenderIndex(ctx context.Context, posts []content.Post) (Page, error) {
	caser := cases.Title(language.English)
	summaries := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = caser.String(t)
		}
		summaries = append(summaries, PostSummary{
			Slug:        p.Slug,
			Path:        "/blog/" + p.Slug,
			Title:       p.Title,
			Description: p.Description,
			PublishedAt: p.PublishedAt,
			Tags:        tags,
			Draft:       p.Draft,
		})
	}

	data := PageData{
		Site:  r.site,
		Title: "Blog | " + r.site.Title,
		Lang:  lang(r.site.Locale),
		Posts: summaries,
	}
	var buf bytes.Buffer
	if err := r.tmpl.index.ExecuteTemplate(&buf, "main", data); err != nil {
		return Page{}, err
	}
	return Page{Path: path.Join("blog", "index.html"), HTML: buf.Bytes()}, nil
}

// lang turns a locale such as "en_US" into an HTML lang value ("en").
func lang(locale string) string {
	if locale == "" {
		return "en"
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}
