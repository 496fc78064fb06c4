package seo

import (
	"encoding/json"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
)

var testSite = config.SiteConfig{
	Title:       "Farzad YZ",
	Author:      "Farzad Yousefzadeh",
	BaseURL:     "https://farzadyz.me",
	Description: "Site description",
	Twitter:     "farzad_yz",
	Repository:  "https://github.com/farskid/farzadyz.me",
	Branch:      "main",
	ContentDir:  "content/posts",
	Locale:      "en_US",
}

func helloPost() content.Post {
	return content.Post{
		Slug:        "hello-world",
		Title:       "Hello",
		FileName:    "hello-world.mdx",
		Tags:        []string{"intro"},
		PublishedAt: time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestComposeHelloWorld(t *testing.T) {
	m := Compose(helloPost(), testSite)

	if m.URL != "https://farzadyz.me/blog/hello-world" {
		t.Errorf("URL = %q", m.URL)
	}
	if m.Canonical != m.URL {
		t.Errorf("Canonical = %q, want URL", m.Canonical)
	}
	if m.Title != "Hello | Farzad YZ" || m.OpenGraph.Title != "Hello" {
		t.Errorf("titles = %q / %q", m.Title, m.OpenGraph.Title)
	}
	if m.Description != "Site description" {
		t.Errorf("Description should fall back to the site description, got %q", m.Description)
	}
	if !reflect.DeepEqual(m.Article.Authors, []string{"Farzad Yousefzadeh"}) {
		t.Errorf("Authors = %v", m.Article.Authors)
	}
	if !reflect.DeepEqual(m.Article.Tags, []string{"intro"}) {
		t.Errorf("Tags = %v", m.Article.Tags)
	}
	if m.Article.PublishedTime != "2021-01-10T00:00:00Z" || m.Article.ModifiedTime != "" {
		t.Errorf("article times = %q / %q", m.Article.PublishedTime, m.Article.ModifiedTime)
	}
	if m.Social.Twitter.Handle != "@farzad_yz" || m.Twitter.Card != "summary" {
		t.Errorf("twitter = %+v handle %q", m.Twitter, m.Social.Twitter.Handle)
	}
	if m.EditURL != "https://github.com/farskid/farzadyz.me/edit/main/content/posts/hello-world.mdx" {
		t.Errorf("EditURL = %q", m.EditURL)
	}
}

func TestComposeIsPure(t *testing.T) {
	post := helloPost()
	post.UpdatedAt = time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	post.Image = "/img/hello.png"

	first := Compose(post, testSite)
	second := Compose(post, testSite)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Compose is not pure:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(helloPost().Tags, post.Tags) {
		t.Error("Compose mutated its input")
	}
}

func TestComposeCrossPostedAndImage(t *testing.T) {
	post := helloPost()
	post.OriginalURL = "https://dev.to/farskid/hello"
	post.UpdatedAt = time.Date(2021, 2, 1, 12, 0, 0, 0, time.UTC)
	post.Image = "/img/hello.png"
	post.Description = "Own description"

	m := Compose(post, testSite)
	if m.Canonical != "https://dev.to/farskid/hello" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	if m.URL != "https://farzadyz.me/blog/hello-world" {
		t.Errorf("URL should stay on this site, got %q", m.URL)
	}
	if m.OpenGraph.Image != "https://farzadyz.me/img/hello.png" || m.Twitter.Card != "summary_large_image" {
		t.Errorf("image = %q card = %q", m.OpenGraph.Image, m.Twitter.Card)
	}
	if m.Article.ModifiedTime != "2021-02-01T12:00:00Z" {
		t.Errorf("ModifiedTime = %q", m.Article.ModifiedTime)
	}
	if m.Description != "Own description" {
		t.Errorf("Description = %q", m.Description)
	}
}

func TestShareURL(t *testing.T) {
	got := ShareURL("State & you", "@farzad_yz", "https://farzadyz.me/blog/x", []string{"xstate", "react"})
	want := "https://twitter.com/share?text=Check+out%3A+State+%26+you+by+%40farzad_yz&url=https%3A%2F%2Ffarzadyz.me%2Fblog%2Fx&hashtags=xstate%2Creact"
	if got != want {
		t.Errorf("ShareURL =\n%s\nwant\n%s", got, want)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("hashtags") != "xstate,react" {
		t.Errorf("hashtags = %q", u.Query().Get("hashtags"))
	}
}

func TestHeadTags(t *testing.T) {
	m := Compose(helloPost(), testSite)
	tags := m.HeadTags()

	index := make(map[string]string)
	for _, tag := range tags {
		if tag.Content == "" {
			t.Errorf("empty meta tag %s emitted", tag.Key)
		}
		index[tag.Key] = tag.Content
	}
	if index["og:url"] != "https://farzadyz.me/blog/hello-world" {
		t.Errorf("og:url = %q", index["og:url"])
	}
	if index["article:tag"] != "intro" {
		t.Errorf("article:tag = %q", index["article:tag"])
	}
	if _, ok := index["article:modified_time"]; ok {
		t.Error("modified time should be omitted for unrevised posts")
	}
	if _, ok := index["og:image"]; ok {
		t.Error("og:image should be omitted without an image")
	}
}

func TestJSONLD(t *testing.T) {
	m := Compose(helloPost(), testSite)
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(m.JSONLD), &data); err != nil {
		t.Fatalf("JSONLD is not valid JSON: %v", err)
	}
	if data["@type"] != "BlogPosting" || data["headline"] != "Hello" || data["keywords"] != "intro" {
		t.Errorf("unexpected JSON-LD: %s", m.JSONLD)
	}
	if strings.Contains(m.JSONLD, "dateModified") {
		t.Error("dateModified should be omitted")
	}
}
