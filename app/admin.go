package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephleon/leonweb/internal/auth"
	"github.com/josephleon/leonweb/internal/db"
	"github.com/josephleon/leonweb/internal/uniuri"
)

func init() { //nolint: gochecknoinits
	setPasswordCmd.Flags().StringVarP(&newPassword, "password", "p", "", "New password, generated if empty")

	totpCmd.AddCommand(totpEnableCmd, totpDisableCmd)
	adminCmd.AddCommand(setPasswordCmd, totpCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	newPassword string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	setPasswordCmd = &cobra.Command{
		Use:   "set-password <username>",
		Short: "Set the password of an administrator, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := localProvider()
			if err != nil {
				return err
			}

			password := newPassword
			if password == "" {
				if password, err = uniuri.Password(); err != nil {
					return err
				}
			}

			created, err := provider.EnsureAdministrator(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			if !created {
				if err = provider.SetPassword(cmd.Context(), args[0], password); err != nil {
					return err
				}
			}

			if newPassword == "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "new password of %s: %s\n", args[0], password)

				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "password of %s updated\n", args[0])

			return err
		},
	}

	totpCmd = &cobra.Command{
		Use:   "totp",
		Short: "Manage the one-time code second factor of an administrator",
	}

	totpEnableCmd = &cobra.Command{
		Use:   "enable <username>",
		Short: "Enroll a TOTP secret and print its provisioning URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := localProvider()
			if err != nil {
				return err
			}

			key, err := provider.EnableTOTP(cmd.Context(), args[0], rootCmd.Name())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "secret: %s\nurl: %s\n", key.Secret(), key.URL())

			return err
		},
	}

	totpDisableCmd = &cobra.Command{
		Use:   "disable <username>",
		Short: "Remove the TOTP secret of an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := localProvider()
			if err != nil {
				return err
			}

			if err = provider.DisableTOTP(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "totp disabled for %s\n", args[0])

			return err
		},
	}
)

func localProvider() (*auth.LocalProvider, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	return auth.NewLocalProvider(conn), nil
}
