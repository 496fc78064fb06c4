// cmd/farzadyz/root.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/builder"
	"github.com/farskid/farzadyz.me/internal/config"
)

// Site layout, relative to the directory holding the config file.
const (
	templateDir = "templates"
	staticDir   = "static"
	outputDir   = "public"
	configFile  = "site.yaml"
)

type appConfig struct {
	configPath string
	debug      bool
	unsafe     bool
}

// loadSite switches to the directory holding the config file, so the site
// layout and the configured content directory resolve against it, then reads
// and validates the config.
func (a *appConfig) loadSite() (config.SiteConfig, error) {
	if dir := filepath.Dir(a.configPath); dir != "." {
		if err := os.Chdir(dir); err != nil {
			return config.SiteConfig{}, fmt.Errorf("could not enter site directory: %w", err)
		}
		a.configPath = filepath.Base(a.configPath)
	}
	site, err := config.Load(a.configPath)
	if err != nil {
		return config.SiteConfig{}, fmt.Errorf("failed to load site config: %w", err)
	}
	if err := site.Validate(); err != nil {
		return config.SiteConfig{}, err
	}
	return site, nil
}

func (a *appConfig) buildOptions() builder.BuildOptions {
	return builder.BuildOptions{
		Unsafe: a.unsafe,
		Debug:  a.debug,
	}
}

func newRootCmd() *cobra.Command {
	app := &appConfig{}
	root := &cobra.Command{
		Use:   "farzadyz",
		Short: "farzadyz builds the farzadyz.me blog",
		Long: `farzadyz turns a directory of Markdown/MDX posts into a static blog:
post pages with social metadata, a listing, sitemap and RSS feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.configPath, "config", configFile, "site config file")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "verbose build logging")
	root.PersistentFlags().BoolVar(&app.unsafe, "unsafe", false, "disable HTML sanitization, allowing all raw HTML in posts")

	root.AddCommand(
		newGenCmd(app),
		newServeCmd(app),
		newSlugsCmd(app),
		newShowCmd(app),
		newNewCmd(app),
	)
	return root
}
