// cmd/farzadyz/gen.go
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/builder"
)

func newGenCmd(app *appConfig) *cobra.Command {
	var drafts bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the site into " + outputDir + "/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.buildOptions()
			opts.CleanDestination = true
			opts.Drafts = drafts
			fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render("--- Generating site from content ---"))
			return runBuild(cmd, app, opts)
		},
	}
	cmd.Flags().BoolVar(&drafts, "drafts", false, "publish posts marked as drafts")
	return cmd
}

// runBuild loads the config and templates and builds the whole site.
// The config is re-read on every call so serve picks up edits to it.
func runBuild(cmd *cobra.Command, app *appConfig, opts builder.BuildOptions) error {
	site, err := app.loadSite()
	if err != nil {
		return err
	}
	tmpl, err := builder.LoadTemplates(templateDir, site.Template)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	res, err := builder.BuildSite(cmd.Context(), outputDir, staticDir, site, tmpl, opts)
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Generated %d pages (%s) into %s/\n",
		successStyle.Render("✓"), res.Pages, humanize.Bytes(uint64(res.Bytes)), outputDir)
	if res.Drafts > 0 {
		fmt.Fprintln(out, draftStyle.Render(fmt.Sprintf("  %d draft(s) left out, use --drafts to publish them", res.Drafts)))
	}
	fmt.Fprintln(out, mutedStyle.Render("  build "+res.BuildID))
	return nil
}
