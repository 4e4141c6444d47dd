package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project's remote monitors as monitor files",
		Long: `Writes every remote monitor of the project into the monitor directory, one
JSON file per monitor. The project tag and the notification suffix are
removed so that a following sync has nothing to do.

Existing files are kept unless --overwrite is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd, opts)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.Export(cmd.Context(), overwrite)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range result.Written {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
			for _, path := range result.Skipped {
				fmt.Fprintf(out, "skipped %s (exists)\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing monitor files")
	return cmd
}
