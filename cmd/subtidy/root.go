package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squash/subtidy/internal/config"
	"github.com/squash/subtidy/pkg/log"
)

// commandContext carries lazily-loaded configuration shared by subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.InitLogger(log.ParseLevel(cfg.System.LogLevel))
	c.cfg = cfg
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "subtidy",
		Short:         "Canonicalize directories of subtitle files",
		Long: "subtidy reduces a directory of subtitle files from multiple sources\n" +
			"to a minimal, correctly labeled, non-redundant set: exact and fuzzy\n" +
			"dedupe, WebVTT to SRT conversion, dialect and SDH relabeling, and\n" +
			"filename cleanup.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newSweepCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
