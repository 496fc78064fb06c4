package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func setupContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePost(t, dir, "hello-world.mdx", `---
title: Hello
description: First post
tags: [intro]
publishedAt: 2021-01-10
---

Hello **world**.
`)
	writePost(t, dir, "Étude Of State Machines.md", `---
title: "Études"
tags:
  - xstate
  - " "
  - statecharts
publishedAt: 2021-06-01
updatedAt: 2021-07-01
draft: true
originalURL: https://dev.to/farskid/etudes
---

Body.
`)
	writePost(t, dir, "notes.txt", "not a post")
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestListPostsOrderAndMetadata(t *testing.T) {
	s := NewStore(setupContentDir(t))

	posts, err := s.ListPosts(false)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	first := posts[0]
	if first.Slug != "etude-of-state-machines" {
		t.Errorf("first slug = %q, want newest post first", first.Slug)
	}
	if first.Body != "" {
		t.Error("body should be empty when includeBody is false")
	}
	if !first.Draft {
		t.Error("expected draft flag")
	}
	if len(first.Tags) != 2 || first.Tags[0] != "xstate" || first.Tags[1] != "statecharts" {
		t.Errorf("Tags = %v, want [xstate statecharts]", first.Tags)
	}
	if !first.Updated() || !first.UpdatedAt.Equal(time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("UpdatedAt = %v", first.UpdatedAt)
	}
	if first.OriginalURL != "https://dev.to/farskid/etudes" {
		t.Errorf("OriginalURL = %q", first.OriginalURL)
	}

	second := posts[1]
	if second.Slug != "hello-world" || second.Title != "Hello" || second.FileName != "hello-world.mdx" {
		t.Errorf("unexpected second post: %+v", second)
	}
	if second.Updated() {
		t.Error("hello-world has no updatedAt")
	}
}

func TestListPostsWithBody(t *testing.T) {
	s := NewStore(setupContentDir(t))
	posts, err := s.ListPosts(true)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	for _, p := range posts {
		if strings.TrimSpace(p.Body) == "" {
			t.Errorf("post %s has an empty body", p.Slug)
		}
	}
}

func TestSlugsAreUniqueAndNormalized(t *testing.T) {
	dir := setupContentDir(t)
	s := NewStore(dir)
	slugs, err := s.Slugs()
	if err != nil {
		t.Fatalf("Slugs failed: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	seen := make(map[string]bool)
	for _, slug := range slugs {
		if seen[slug] {
			t.Errorf("duplicate slug %q", slug)
		}
		seen[slug] = true
	}
	for _, e := range entries {
		if e.IsDir() || !IsPostFile(e.Name()) {
			continue
		}
		if !seen[SlugFromFileName(e.Name())] {
			t.Errorf("file %s has no matching slug", e.Name())
		}
	}
}

func TestResolve(t *testing.T) {
	s := NewStore(setupContentDir(t))

	post, err := s.Resolve("hello-world")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(post.Body, "Hello **world**.") {
		t.Errorf("Body = %q", post.Body)
	}

	_, err = s.Resolve("missing")
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestDuplicateSlugIsLoadError(t *testing.T) {
	dir := t.TempDir()
	post := "---\ntitle: A\npublishedAt: 2021-01-01\n---\nbody\n"
	writePost(t, dir, "same-post.md", post)
	writePost(t, dir, "Same Post.mdx", post)

	_, err := NewStore(dir).ListPosts(false)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "same-post") {
		t.Errorf("error should name the slug: %v", err)
	}
}

func TestMalformedPosts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no-front-matter.md", "just text\n", "missing front matter"},
		{"no-title.md", "---\npublishedAt: 2021-01-01\n---\nx\n", "\"title\""},
		{"no-date.md", "---\ntitle: T\n---\nx\n", "\"publishedAt\""},
		{"bad-date.md", "---\ntitle: T\npublishedAt: someday\n---\nx\n", "invalid publishedAt"},
		{"bad-yaml.md", "---\ntitle: [unclosed\n---\nx\n", "front matter"},
		{"bad-origin.md", "---\ntitle: T\npublishedAt: 2021-01-01\noriginalURL: /relative\n---\nx\n", "originalURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePost(t, dir, tt.name, tt.content)
			_, err := NewStore(dir).ListPosts(false)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if loadErr.File != filepath.Join(dir, tt.name) {
				t.Errorf("LoadError.File = %q", loadErr.File)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMissingDirectory(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "nope")).Slugs(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestResolveAppliesEditorialMarks(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		notWant []string
	}{
		{
			name:    "accepted and removed marks",
			body:    "Hello {+brave +}world{- old-}.\n",
			want:    []string{"Hello brave world."},
			notWant: []string{"{+", "old", "-}"},
		},
		{
			name:    "comments dropped, highlights kept",
			body:    "Keep{> note to self<} this {=part=}.\n",
			want:    []string{"Keep this part."},
			notWant: []string{"note to self", "{="},
		},
		{
			name: "fenced code is left alone",
			body: "Counter:\n\n```jsx\n<button onClick={() => {++count}}>+</button>\n```\n\n```js\nfor (;;) {--i}\n```\n",
			want: []string{
				"<button onClick={() => {++count}}>+</button>",
				"for (;;) {--i}",
			},
		},
		{
			name: "inline code is left alone",
			body: "Use `{-x-}` and `{+y+}` {+here+}.\n",
			want: []string{"Use `{-x-}` and `{+y+}` here."},
		},
		{
			name: "indented code is left alone",
			body: "Example:\n\n    const next = {=state=};\n\nDone.\n",
			want: []string{"    const next = {=state=};"},
		},
		{
			name:    "code inside a deletion goes with it",
			body:    "Before {-`gone()`-}after.\n",
			want:    []string{"Before after."},
			notWant: []string{"gone()"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePost(t, dir, "marks.md", "---\ntitle: Marks\npublishedAt: 2021-01-01\n---\n\n"+tt.body)

			post, err := NewStore(dir).Resolve("marks")
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(post.Body, w) {
					t.Errorf("body %q does not contain %q", post.Body, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(post.Body, nw) {
					t.Errorf("body %q should not contain %q", post.Body, nw)
				}
			}
		})
	}
}

func TestReservedMaskCharacterIsLoadError(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "odd.md", "---\ntitle: Odd\npublishedAt: 2021-01-01\n---\n\nprivate \uE000 rune\n")

	_, err := NewStore(dir).Resolve("odd")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestStoreDir(t *testing.T) {
	if got := NewStore("content/posts").Dir(); got != "content/posts" {
		t.Errorf("Dir = %q", got)
	}
}
