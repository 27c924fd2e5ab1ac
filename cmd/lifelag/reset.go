package main

import (
	"github.com/lifelag/lifelag/internal/cli"
	"github.com/lifelag/lifelag/internal/config"
	"github.com/spf13/cobra"
)

func resetPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password with a generated temporary one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return cli.RunResetPasswordCommand(cmd.OutOrStdout(), cfg.DBPath, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the account to reset")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
