package main

import (
	"github.com/danmuck/asayer/internal/config"
	"github.com/danmuck/asayer/internal/logging"
	"github.com/spf13/cobra"
)

var configPath string

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "asayerctl",
		Short:         "Drive and inspect the asayer tracker client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.ConfigureRuntime()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config (defaults apply when empty)")
	root.AddCommand(demoCmd(), sinkCmd(), configCmd())
	return root
}

// loadConfig returns the file config, or defaults with siteID when no file
// was given. override forces siteID over the file value.
func loadConfig(siteID string, override bool) (config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		cfg.SiteID = siteID
		return cfg, config.Validate(cfg)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if override {
		cfg.SiteID = siteID
	}
	return cfg, nil
}
