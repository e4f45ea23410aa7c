package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Privileged maintenance commands",
	}

	cmd.AddCommand(newAdminResetLegalFlagsCmd())

	return cmd
}

func newAdminResetLegalFlagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-legal-flags",
		Short: "Clear accepted privacy and terms flags on every account",
		Long: `Clears the accepted-privacy and accepted-terms flags on every
account, forcing each player to re-accept on next login. Run this
after publishing a new privacy policy or terms of service.

Requires a token carrying the admin claim.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResetResult

			if err := client.Post("/api/v1/admin/reset-legal-flags", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
