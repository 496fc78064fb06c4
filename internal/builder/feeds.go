// internal/builder/feeds.go
package builder

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

func buildSitemap(site config.SiteConfig, posts []content.Post) sitemapURLSet {
	urls := []sitemapURL{
		{Loc: site.URL("/")},
		{Loc: site.URL("/blog")},
	}
	for _, p := range posts {
		lastMod := p.PublishedAt
		if p.Updated() {
			lastMod = p.UpdatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     site.PostURL(p.Slug),
			LastMod: lastMod.Format("2006-01-02"),
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func buildRSS(site config.SiteConfig, posts []content.Post) rssXML {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := site.PostURL(p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     p.PublishedAt.Format("Mon, 02 Jan 2006 15:04:05 -0700"),
			GUID:        postURL,
			Categories:  p.Tags,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        site.URL("/blog"),
			Description: site.Description,
			Language:    lang(site.Locale),
			Items:       items,
		},
	}
}

// writeFeeds writes sitemap.xml and rss.xml and returns the bytes written.
func writeFeeds(outputDir string, site config.SiteConfig, posts []content.Post) (int64, error) {
	var total int64
	for name, doc := range map[string]interface{}{
		"sitemap.xml": buildSitemap(site, posts),
		"rss.xml":     buildRSS(site, posts),
	} {
		var buf bytes.Buffer
		buf.WriteString(xml.Header)
		enc := xml.NewEncoder(&buf)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return 0, err
		}
		if err := os.WriteFile(filepath.Join(outputDir, name), buf.Bytes(), 0644); err != nil {
			return 0, err
		}
		total += int64(buf.Len())
	}
	return total, nil
}

