package cmd

import (
	"github.com/spf13/cobra"

	"alertstate/pkg/logging"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the remote monitors with the monitor files",
		Long: `Loads the monitor files, lists the project's remote monitors and applies
the creates, updates and deletes needed to make them match.

Throttled calls are retried up to 3 times with a 60 second cooldown. Calls
that still fail are reported and skipped; the command itself still succeeds.

With --watch the command keeps running and reconciles again whenever a
monitor file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd, opts)
			if err != nil {
				return err
			}
			defer application.Close()

			if watch {
				return application.Watch(cmd.Context())
			}

			summary, err := application.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Abandoned > 0 {
				logging.Warn("Sync", "%d of %d changes could not be applied", summary.Abandoned, summary.Planned)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and reconcile on file changes")
	return cmd
}
