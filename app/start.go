package app

import (
	"github.com/spf13/cobra"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the leonweb web service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.Option
			if devMode {
				opts = append(opts, config.WithDevMode())
			}

			cfg, err := loadConfig(opts...)
			if err != nil {
				return err
			}

			d, err := daemon.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
