// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "leonweb",
	Short: "leonweb serves the website, its contact form and the admin back office",
	Long: `leonweb serves a small website with a blog, a JSON contact form endpoint
and an admin back office to manage contact messages and blog posts.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var configPath string // Path to the directory holding main.toml

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig(opts ...config.Option) (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath, opts...)
	if err != nil {
		return nil, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
