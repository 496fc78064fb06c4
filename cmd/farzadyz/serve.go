// cmd/farzadyz/serve.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/builder"
	"github.com/farskid/farzadyz.me/internal/server"
)

func newServeCmd(app *appConfig) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local dev server with auto-rebuild and live reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}
			buildFunc := func(opts builder.BuildOptions) error {
				fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render("--- Building site ---"))
				return runBuild(cmd, app, opts)
			}
			return server.Run(cmd.Context(), server.Options{
				Port:      port,
				OutputDir: outputDir,
				Watch:     []string{site.ContentDir, templateDir, staticDir, app.configPath, ".env"},
			}, buildFunc, app.buildOptions())
		},
	}
	cmd.Flags().IntVar(&port, "port", 1313, "port for the local development server")
	return cmd
}
