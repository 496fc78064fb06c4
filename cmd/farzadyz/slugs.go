// cmd/farzadyz/slugs.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/content"
)

func newSlugsCmd(app *appConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "List the slug of every post, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}
			slugs, err := content.NewStore(site.ContentDir).Slugs()
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}
}
