package cmd

import (
	"github.com/spf13/cobra"

	"alertstate/internal/formatting"
	"alertstate/internal/observe"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what sync would change without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatting.ParseFormat(output)
			if err != nil {
				return err
			}

			// Observations would mix with machine readable output.
			planOpts := *opts
			planOpts.quiet = true

			application, err := newApplication(cmd, &planOpts)
			if err != nil {
				return err
			}
			defer application.Close()

			plan, err := application.Plan(cmd.Context())
			if err != nil {
				return err
			}

			return formatting.New(formatting.Options{
				Format:  format,
				Color:   !opts.noColor && observe.ColorEnabled(cmd.OutOrStdout()),
				Details: details,
			}).FormatPlan(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&details, "details", false, "print diffs and payloads below the table")
	return cmd
}
