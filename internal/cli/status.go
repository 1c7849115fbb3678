package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted link configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Store.LoadSettings(cmd.Context())
			if err != nil {
				return err
			}

			out.Print(StatusResult{
				GuildName:     settings.GuildName,
				CredentialSet: settings.Credential != "",
				Valid:         settings.Valid,
				MappedPlayers: len(settings.IDMap),
				LastSyncAt:    settings.LastSyncAt,
			})
			return nil
		},
	}
}
