// cmd/farzadyz/show.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/farskid/farzadyz.me/internal/builder"
	"github.com/farskid/farzadyz.me/internal/components"
	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/document"
)

func newShowCmd(app *appConfig) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the rendered page of one post",
		Long: `Print the rendered page of one post to stdout. With --json the
serialized document is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := app.loadSite()
			if err != nil {
				return err
			}
			if asJSON {
				post, err := content.NewStore(site.ContentDir).Resolve(args[0])
				if err != nil {
					return err
				}
				serializer := document.NewSerializer(components.Default().Set(), document.Options{Unsafe: app.unsafe})
				doc, err := serializer.Serialize(post)
				if err != nil {
					return err
				}
				return doc.Encode(cmd.OutOrStdout())
			}

			tmpl, err := builder.LoadTemplates(templateDir, site.Template)
			if err != nil {
				return err
			}
			page, err := builder.RenderPost(cmd.Context(), site, tmpl, args[0], app.buildOptions())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(page.HTML)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the serialized document as JSON")
	return cmd
}
