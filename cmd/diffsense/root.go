package main

import (
	"fmt"
	"os"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for diffsense.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diffsense",
		Short: "Structured text comparison with semantic insights",
		Long: `diffsense compares two texts at character, word, line, sentence or
paragraph granularity and produces an ordered change list with aggregate
statistics, optional semantic similarity annotations, and change insights.

Large inputs are processed in chunks with incremental progress. The serve
command exposes the same engine over an HTTP API with response caching and
request throttling.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML/JSON configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(NewMergeCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the global configuration and builds the process logger from
// the flags shared by every subcommand.
func setup(cmd *cobra.Command) (*config.GlobalConfig, zerolog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogConfig.Level = "debug"
	}

	log, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}
