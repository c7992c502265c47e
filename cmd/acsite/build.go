package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anotherclibrary/acsite/internal/build"
)

func newBuildCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = a.cfg.Build.OutDir
			}
			res, err := build.Export(cmd.Context(), build.Options{
				OutDir:   out,
				Document: page(a.cfg.Site),
				Meta:     injector(a.cfg.Site),
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides build.out_dir)")
	return cmd
}
