package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(genkeyCmd)
}

var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Print a new cookie encryption key for Webserver.SecretKey",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), encryptcookie.GenerateKey())

		return err
	},
}
