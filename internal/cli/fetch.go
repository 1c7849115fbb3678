package cli

import (
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Resolve Discord ids for players that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := app.Reconciler.Load(ctx)
			if err != nil {
				return err
			}
			if cfg.Credential != "" {
				m.Credential = cfg.Credential
			}

			if err := app.Reconciler.Fetch(ctx, m); err != nil {
				return err
			}

			result := FetchResult{
				GuildName: m.GuildName,
				Players:   playerViews(m.Players),
			}

			if save {
				saved, err := app.Reconciler.Save(ctx, m)
				if err != nil {
					return err
				}
				result.Saved = true
				out.Print(result)
				out.Print(SaveResult{
					Valid:             saved.Valid,
					CredentialChanged: saved.CredentialChanged,
					Invalid:           playerViews(saved.Invalid),
				})
				return nil
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Validate and persist the resolved mappings")
	return cmd
}
