package cli

import (
	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Validate the current mappings and persist the configuration",
		Long: `save validates every staged Discord id against the identity service,
persists the configuration, and notifies the push channel. Ids set in the
players file count as operator-entered and are validated as-is.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := app.Reconciler.Load(ctx)
			if err != nil {
				return err
			}
			if cfg.Credential != "" {
				m.Credential = cfg.Credential
			}

			result, err := app.Reconciler.Save(ctx, m)
			if err != nil {
				return err
			}

			out.Print(SaveResult{
				Valid:             result.Valid,
				CredentialChanged: result.CredentialChanged,
				Invalid:           playerViews(result.Invalid),
			})
			return nil
		},
	}
}
