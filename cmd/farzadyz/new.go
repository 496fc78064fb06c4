// cmd/farzadyz/new.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/scaffold"
)

func newNewCmd(app *appConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a new site or post",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "site <dir>",
			Short: "Create a new site scaffold",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return scaffold.CreateNewSite(args[0])
			},
		},
		&cobra.Command{
			Use:   "post <title>",
			Short: "Create a draft post from the archetype",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				site, err := app.loadSite()
				if err != nil {
					return err
				}
				path, err := scaffold.CreateNewPost(site.ContentDir, strings.Join(args, " "), site)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓"), "Draft ready at", path)
				return nil
			},
		},
	)
	return cmd
}
