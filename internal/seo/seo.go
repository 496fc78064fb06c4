// internal/seo/seo.go
package seo

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/util"
)

const twitterShareEndpoint = "https://twitter.com/share"

// OpenGraph holds the og:* properties of a page.
type OpenGraph struct {
	Type        string
	Title       string
	Description string
	URL         string
	SiteName    string
	Image       string
	Locale      string
}

// TwitterCard holds the twitter:* card properties of a page.
type TwitterCard struct {
	Card        string
	Site        string
	Creator     string
	Title       string
	Description string
	Image       string
}

// Article holds the article:* properties of a post page. Times are RFC 3339.
type Article struct {
	PublishedTime string
	ModifiedTime  string // empty when the post was never revised
	Authors       []string
	Tags          []string
}

// Social lists the author's social accounts referenced by the metadata.
type Social struct {
	Twitter struct {
		Handle string
	}
}

// PageMetadata is everything a post page says about itself to browsers,
// crawlers and social platforms.
type PageMetadata struct {
	Title       string // document <title>
	Description string
	URL         string // where the page lives on this site
	Canonical   string // the original location for cross-posted content
	SiteName    string
	Locale      string
	OpenGraph   OpenGraph
	Twitter     TwitterCard
	Article     Article
	Social      Social
	ShareURL    string
	EditURL     string
	JSONLD      string
}

// MetaTag is one <meta> element of the page head. Attr is "name" or "property".
type MetaTag struct {
	Attr    string
	Key     string
	Content string
}

// Compose derives the metadata of post. It depends only on its arguments.
func Compose(post content.Post, site config.SiteConfig) PageMetadata {
	postURL := site.PostURL(post.Slug)
	handle := site.TwitterHandle()

	description := post.Description
	if description == "" {
		description = site.Description
	}
	canonical := postURL
	if post.OriginalURL != "" {
		canonical = post.OriginalURL
	}
	image := absoluteImage(site, post.Image)
	if image == "" {
		image = absoluteImage(site, site.Image)
	}
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}

	tags := append([]string{}, post.Tags...)
	meta := PageMetadata{
		Title:       post.Title + " | " + site.Title,
		Description: description,
		URL:         postURL,
		Canonical:   canonical,
		SiteName:    site.Title,
		Locale:      site.Locale,
		OpenGraph: OpenGraph{
			Type:        "article",
			Title:       post.Title,
			Description: description,
			URL:         postURL,
			SiteName:    site.Title,
			Image:       image,
			Locale:      site.Locale,
		},
		Twitter: TwitterCard{
			Card:        card,
			Site:        handle,
			Creator:     handle,
			Title:       post.Title,
			Description: description,
			Image:       image,
		},
		Article: Article{
			PublishedTime: util.ISODate(post.PublishedAt),
			ModifiedTime:  util.ISODate(post.UpdatedAt),
			Authors:       []string{site.Author},
			Tags:          tags,
		},
		ShareURL: ShareURL(post.Title, handle, postURL, post.Tags),
		EditURL:  site.EditURL(post.FileName),
	}
	meta.Social.Twitter.Handle = handle
	meta.JSONLD = blogPostingJSONLD(meta, site)
	return meta
}

// ShareURL builds the Twitter intent link for a post. Parameters keep the
// order text, url, hashtags.
func ShareURL(title, handle, postURL string, tags []string) string {
	var b strings.Builder
	b.WriteString(twitterShareEndpoint)
	b.WriteString("?text=")
	b.WriteString(url.QueryEscape("Check out: " + title + " by " + handle))
	b.WriteString("&url=")
	b.WriteString(url.QueryEscape(postURL))
	b.WriteString("&hashtags=")
	b.WriteString(url.QueryEscape(strings.Join(tags, ",")))
	return b.String()
}

// HeadTags lists the <meta> elements for the page head in a stable order.
func (m PageMetadata) HeadTags() []MetaTag {
	tags := []MetaTag{
		{"name", "description", m.Description},
		{"property", "og:type", m.OpenGraph.Type},
		{"property", "og:title", m.OpenGraph.Title},
		{"property", "og:description", m.OpenGraph.Description},
		{"property", "og:url", m.OpenGraph.URL},
		{"property", "og:site_name", m.OpenGraph.SiteName},
		{"property", "og:locale", m.OpenGraph.Locale},
		{"property", "og:image", m.OpenGraph.Image},
		{"name", "twitter:card", m.Twitter.Card},
		{"name", "twitter:site", m.Twitter.Site},
		{"name", "twitter:creator", m.Twitter.Creator},
		{"name", "twitter:title", m.Twitter.Title},
		{"name", "twitter:description", m.Twitter.Description},
		{"name", "twitter:image", m.Twitter.Image},
		{"property", "article:published_time", m.Article.PublishedTime},
		{"property", "article:modified_time", m.Article.ModifiedTime},
	}
	for _, a := range m.Article.Authors {
		tags = append(tags, MetaTag{"property", "article:author", a})
	}
	for _, t := range m.Article.Tags {
		tags = append(tags, MetaTag{"property", "article:tag", t})
	}

	out := tags[:0]
	for _, t := range tags {
		if t.Content != "" {
			out = append(out, t)
		}
	}
	return out
}

func absoluteImage(site config.SiteConfig, image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}
	if u, err := url.Parse(image); err == nil && u.IsAbs() {
		return image
	}
	return site.URL(image)
}

// blogPostingJSONLD produces a Schema.org BlogPosting block for the page.
func blogPostingJSONLD(m PageMetadata, site config.SiteConfig) string {
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      m.OpenGraph.Title,
		"description":   m.Description,
		"datePublished": m.Article.PublishedTime,
		"url":           m.URL,
		"author": map[string]string{
			"@type": "Person",
			"name":  site.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   m.Canonical,
		},
	}
	if m.Article.ModifiedTime != "" {
		data["dateModified"] = m.Article.ModifiedTime
	}
	if m.OpenGraph.Image != "" {
		data["image"] = m.OpenGraph.Image
	}
	if len(m.Article.Tags) > 0 {
		data["keywords"] = strings.Join(m.Article.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
