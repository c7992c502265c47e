package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anotherclibrary/acsite/pkg/codec"
	"github.com/anotherclibrary/acsite/pkg/render"
)

func newTreeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the rendered page",
		Long: `Print the rendered page as an encoded content tree (json, yaml, msgpack),
as Markdown, or as an HTML document.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := page(a.cfg.Site)
			w := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "html":
				return render.Document(w, doc)
			case "markdown", "md":
				return render.Markdown(w, doc.Body)
			}

			c, err := codec.DefaultRegistry.Get(format)
			if err != nil {
				return fmt.Errorf("format %q: %w", format, err)
			}
			data, err := c.Encode(&doc)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, msgpack, markdown or html")
	return cmd
}
