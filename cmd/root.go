// Package cmd implements the CLI commands for mfformat using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/mfformat/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	flagVerbose bool

	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mfformat",
	Short: "mfformat — turn micropub h-entries into static site files",
	Long: `mfformat converts micropub/microformats2 h-entries into the files a static
site generator publishes: a front matter document, its path, its permalink and
the renamed media attachments.

Usage:
  mfformat convert <entry.json> [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mfformat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func initialize() error {
	var err error
	if flagVerbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	appConfig, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if appConfig.Source != "" {
		logger.Info("Using config file", zap.String("path", appConfig.Source))
	} else {
		logger.Debug("No config file found, using defaults and environment")
	}
	return nil
}
