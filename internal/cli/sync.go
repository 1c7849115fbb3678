package cli

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Trigger a full synchronization of game data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Syncer.TriggerFullSync(cmd.Context()); err != nil {
				return err
			}

			out.Print(SyncResult{Completed: true})
			return nil
		},
	}
}
