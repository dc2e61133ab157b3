package main

import (
	"github.com/spf13/cobra"

	"github.com/UCSIG/attiny85-time-switch/internal/config"
	"github.com/UCSIG/attiny85-time-switch/internal/logging"
)

// commandContext loads the configuration once and shares it across
// subcommands.
type commandContext struct {
	configPath *string
	cfg        *config.Config
}

func newCommandContext(configPath *string) *commandContext {
	return &commandContext{configPath: configPath}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.LoadOrDefault(*c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "calibgen",
		Short:         "Generate sleep-clock calibration files from the chip table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newVerifyCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
