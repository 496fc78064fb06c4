// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/farskid/farzadyz.me/internal/builder"
	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
)

// ArchetypePath is the post template looked up relative to the site root.
// The built-in archetype is used when it does not exist.
var ArchetypePath = filepath.Join("archetypes", "post.mdx")

// now is replaced in tests.
var now = time.Now

// CreateNewSite lays out a new site in dir: site.yaml, a sample post, the
// default theme, an archetype and a stylesheet.
func CreateNewSite(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, "site.yaml")); err == nil {
		return fmt.Errorf("%s already contains a site.yaml", dir)
	}
	fmt.Println("Scaffolding new site in:", dir)

	site := config.SiteConfig{
		Title:       "My Blog",
		Author:      "Your Name",
		BaseURL:     "https://example.com",
		Description: "Notes on software.",
		Twitter:     "yourhandle",
		Branch:      "main",
		ContentDir:  filepath.ToSlash(filepath.Join("content", "posts")),
		Template:    builder.DefaultTemplate,
		Locale:      "en_US",
	}
	siteYAML, err := yaml.Marshal(site)
	if err != nil {
		return err
	}
	sample, err := renderArchetype(defaultArchetype, "Hello World", site.Author, now())
	if err != nil {
		return err
	}

	files := map[string][]byte{
		"site.yaml":                     siteYAML,
		"content/posts/hello-world.mdx": bytes.Replace(sample, []byte("draft: true"), []byte("draft: false"), 1),
		"archetypes/post.mdx":           []byte(defaultArchetype),
		"static/css/style.css":          []byte(staticCSSContent),
		"static/images/.keep":           nil,
	}
	for path, data := range files {
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(path)), data); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}

	themeDir := filepath.Join(dir, "templates", builder.DefaultTemplate)
	if err := fs.WalkDir(builder.DefaultThemeFS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(builder.DefaultThemeFS(), path)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(themeDir, filepath.FromSlash(path)), data)
	}); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}

	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", dir)
	fmt.Println("  farzadyz new post \"My first post\"")
	fmt.Println("  farzadyz serve")
	return nil
}

// CreateNewPost writes a draft post titled title into contentDir and returns its path.
// The file name is the slug of the title; an existing post is never overwritten.
func CreateNewPost(contentDir, title string, site config.SiteConfig) (string, error) {
	slug := content.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q does not produce a slug", title)
	}
	path := filepath.Join(contentDir, slug+".mdx")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("post %s already exists", path)
	}

	archetype := defaultArchetype
	if data, err := os.ReadFile(ArchetypePath); err == nil {
		archetype = string(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("could not read archetype file %s: %w", ArchetypePath, err)
	}

	out, err := renderArchetype(archetype, title, site.Author, now())
	if err != nil {
		return "", err
	}
	if err := writeFile(path, out); err != nil {
		return "", err
	}
	fmt.Println("Created:", path)
	return path, nil
}

func renderArchetype(archetype, title, author string, date time.Time) ([]byte, error) {
	tmpl, err := template.New("archetype").Funcs(template.FuncMap{
		"yaml": yamlScalar,
	}).Parse(archetype)
	if err != nil {
		return nil, fmt.Errorf("failed to parse archetype: %w", err)
	}
	data := struct {
		Title  string
		Author string
		Date   string
	}{
		Title:  title,
		Author: author,
		Date:   date.Format("2006-01-02"),
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("failed to execute archetype template: %w", err)
	}
	return out.Bytes(), nil
}

// yamlScalar quotes s as needed to keep it a single YAML string.
func yamlScalar(s string) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

const defaultArchetype = `---
title: {{ yaml .Title }}
description: ""
tags: []
publishedAt: {{ .Date }}
draft: true
---

Write something meaningful here.

<Callout type="info">
Components such as **Callout**, YouTube, Tweet, Gist, Figure and Kbd can be embedded directly.
</Callout>
`

const staticCSSContent = `body {
  font-family: system-ui, sans-serif;
  max-width: 720px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
.site-header { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 2em; }
.site-header nav a { margin-left: 1em; }
.site-footer { text-align: center; font-size: 0.9em; color: #555; margin-top: 3em; }
.post-title { margin-bottom: 0.2em; }
.post-links { display: flex; justify-content: space-between; align-items: center; }
.post-actions a { margin-left: 1em; }
.badge { font-size: 0.6em; padding: 0.1em 0.5em; border-radius: 4px; vertical-align: middle; }
.badge-draft { background: #fff3cd; color: #856404; }
.tags { list-style: none; padding: 0; display: flex; gap: 0.5em; }
.tag { font-size: 0.8em; background: #eee; padding: 0 0.5em; border-radius: 4px; }
.callout { border-left: 4px solid; padding: 0.5em 1em; margin: 1em 0; }
.callout-info { border-color: #0d6efd; background: #e7f1ff; }
.callout-tip { border-color: #198754; background: #e8f5ee; }
.callout-warning { border-color: #ffc107; background: #fff8e1; }
.callout-danger { border-color: #dc3545; background: #fdecea; }
.embed-youtube { position: relative; padding-bottom: 56.25%; height: 0; }
.embed-youtube iframe { position: absolute; width: 100%; height: 100%; border: 0; }
figure img { max-width: 100%; }
pre { overflow-x: auto; padding: 1em; border-radius: 6px; }
kbd { border: 1px solid #ccc; border-radius: 3px; padding: 0 0.3em; font-size: 0.9em; }
`
