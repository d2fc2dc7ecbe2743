package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trilemma-dev/Required-sub000/config"
	"github.com/trilemma-dev/Required-sub000/logging"
)

var rootFlags = struct {
	verbose    *bool
	configPath *string
}{}

var (
	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reqlang",
	Short: "Parse, describe, and evaluate code-signing requirement expressions",
	Long: `reqlang tokenizes, parses, and evaluates the code-signing requirement
language (the expression grammar behind "anchor apple generic and
certificate leaf[subject.OU] = ..."-style strings).`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(*rootFlags.verbose)
		if err != nil {
			return err
		}

		cfg, err = config.Load(*rootFlags.configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	rootFlags.configPath = rootCmd.PersistentFlags().StringP("config", "c", "", "path to a reqlang config YAML file (optional)")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
