// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override site.yaml keys,
// e.g. FARZADYZ_BASEURL.
const EnvPrefix = "FARZADYZ"

// SiteConfig holds the site-wide constants from site.yaml.
// The `yaml` tags are used when scaffolding; viper decodes via `mapstructure`.
type SiteConfig struct {
	Title       string `yaml:"title" mapstructure:"title"`
	Author      string `yaml:"author" mapstructure:"author"`
	BaseURL     string `yaml:"baseurl" mapstructure:"baseurl"`
	Description string `yaml:"description" mapstructure:"description"`
	Twitter     string `yaml:"twitter" mapstructure:"twitter"`       // handle, with or without "@"
	Repository  string `yaml:"repository" mapstructure:"repository"` // e.g. https://github.com/farskid/farzadyz.me
	Branch      string `yaml:"branch" mapstructure:"branch"`
	ContentDir  string `yaml:"contentdir" mapstructure:"contentdir"`
	Template    string `yaml:"template" mapstructure:"template"`
	Locale      string `yaml:"locale" mapstructure:"locale"`
	Image       string `yaml:"image" mapstructure:"image"` // default social card image
}

var defaults = map[string]string{
	"title":       "",
	"author":      "",
	"baseurl":     "",
	"description": "",
	"twitter":     "",
	"repository":  "",
	"branch":      "main",
	"contentdir":  "content/posts",
	"template":    "default",
	"locale":      "en_US",
	"image":       "",
}

// ConfigError reports a missing or invalid site setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("site config: %s %s", e.Field, e.Reason)
}

// Load reads the site config at path. A .env file next to it, when present,
// is loaded into the environment first; FARZADYZ_* variables override file values.
func Load(path string) (SiteConfig, error) {
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("could not load %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Repository = strings.TrimRight(strings.TrimSpace(cfg.Repository), "/")
	return cfg, nil
}

// Validate checks the settings every page depends on.
func (c SiteConfig) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ConfigError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(c.Author) == "" {
		return &ConfigError{Field: "author", Reason: "is required"}
	}
	if strings.TrimSpace(c.Twitter) == "" {
		return &ConfigError{Field: "twitter", Reason: "is required"}
	}
	if c.BaseURL == "" {
		return &ConfigError{Field: "baseurl", Reason: "is required"}
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigError{Field: "baseurl", Reason: fmt.Sprintf("%q is not an absolute http(s) URL", c.BaseURL)}
	}
	return nil
}

// PostURL returns the canonical address of the post with slug.
func (c SiteConfig) PostURL(slug string) string {
	return c.BaseURL + "/blog/" + slug
}

// URL joins path onto the base URL.
func (c SiteConfig) URL(path string) string {
	if path == "" || path == "/" {
		return c.BaseURL + "/"
	}
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// TwitterHandle returns the Twitter handle with a leading "@".
func (c SiteConfig) TwitterHandle() string {
	h := strings.TrimSpace(c.Twitter)
	if h == "" || strings.HasPrefix(h, "@") {
		return h
	}
	return "@" + h
}

// EditURL links to the source of a post file on the repository host.
// It is empty when no repository is configured.
func (c SiteConfig) EditURL(fileName string) string {
	if c.Repository == "" {
		return ""
	}
	return fmt.Sprintf("%s/edit/%s/%s/%s", c.Repository, c.Branch, filepath.ToSlash(filepath.Clean(c.ContentDir)), fileName)
}
