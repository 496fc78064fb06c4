package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const siteYAML = `title: Farzad YZ
author: Farzad Yousefzadeh
baseurl: https://farzadyz.me/
description: Thoughts on state machines and the web.
twitter: farzad_yz
repository: https://github.com/farskid/farzadyz.me
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, siteYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://farzadyz.me" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.BaseURL)
	}
	if cfg.ContentDir != "content/posts" || cfg.Branch != "main" || cfg.Template != "default" || cfg.Locale != "en_US" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FARZADYZ_AUTHOR", "Someone Else")
	cfg, err := Load(writeConfig(t, siteYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Author != "Someone Else" {
		t.Errorf("Author = %q, want env override", cfg.Author)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeConfig(t, siteYAML)
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("FARZADYZ_LOCALE=de_DE\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("FARZADYZ_LOCALE") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locale != "de_DE" {
		t.Errorf("Locale = %q, want value from .env", cfg.Locale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "site.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestValidate(t *testing.T) {
	valid := SiteConfig{Title: "T", Author: "A", Twitter: "t", BaseURL: "https://example.com"}
	tests := []struct {
		field  string
		mutate func(*SiteConfig)
	}{
		{"title", func(c *SiteConfig) { c.Title = "" }},
		{"author", func(c *SiteConfig) { c.Author = " " }},
		{"twitter", func(c *SiteConfig) { c.Twitter = "" }},
		{"baseurl", func(c *SiteConfig) { c.BaseURL = "" }},
		{"baseurl", func(c *SiteConfig) { c.BaseURL = "farzadyz.me" }},
	}
	for _, tt := range tests {
		cfg := valid
		tt.mutate(&cfg)
		var cerr *ConfigError
		if err := cfg.Validate(); !errors.As(err, &cerr) || cerr.Field != tt.field {
			t.Errorf("Validate() = %v, want ConfigError on %s", err, tt.field)
		}
	}
}

func TestURLs(t *testing.T) {
	cfg := SiteConfig{
		BaseURL:    "https://farzadyz.me",
		Twitter:    "farzad_yz",
		Repository: "https://github.com/farskid/farzadyz.me",
		Branch:     "main",
		ContentDir: "content/posts/",
	}
	if got := cfg.PostURL("hello-world"); got != "https://farzadyz.me/blog/hello-world" {
		t.Errorf("PostURL = %q", got)
	}
	if got := cfg.URL("/rss.xml"); got != "https://farzadyz.me/rss.xml" {
		t.Errorf("URL = %q", got)
	}
	if got := cfg.URL(""); got != "https://farzadyz.me/" {
		t.Errorf("URL(\"\") = %q", got)
	}
	if got := cfg.TwitterHandle(); got != "@farzad_yz" {
		t.Errorf("TwitterHandle = %q", got)
	}
	want := "https://github.com/farskid/farzadyz.me/edit/main/content/posts/hello-world.mdx"
	if got := cfg.EditURL("hello-world.mdx"); got != want {
		t.Errorf("EditURL = %q, want %q", got, want)
	}
	cfg.Repository = ""
	if cfg.EditURL("x.md") != "" {
		t.Error("EditURL should be empty without a repository")
	}
}
