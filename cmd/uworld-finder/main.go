// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uworld-finder CLI. It reads the
// tags of selected Anki notes, sorts the UWorld question IDs they carry into
// Step 1, Step 2, Step 3, COMLEX 1 and COMLEX 2 lists, and prints or exports
// those lists.
package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashklab/uworld-finder/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the uworld-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "uworld-finder",
	Short: "Find the UWorld questions behind a set of Anki notes",
	Long: `uworld-finder reads tags from Anki notes (a collection file or a YAML
record file), extracts UWorld question IDs from AnKing-style tags, and
prints one sorted, de-duplicated list per question bank: Step 1, Step 2,
Step 3, COMLEX 1 and COMLEX 2.

The lists are ready to paste into a custom UWorld test.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		if err := logging.Initialize(logging.Options{JSON: logJSON, Verbose: verbose}); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logging.Logger.Debugw("using config file", "path", used)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uworld-finder.yaml or ~/.config/uworld-finder/uworld-finder.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON instead of console text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("uworld-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uworld-finder"))
		}
	}

	viper.SetEnvPrefix("UWORLD_FINDER")
	viper.AutomaticEnv()

	viper.SetDefault("with_spaces", true)
	viper.SetDefault("format", "text")

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		for _, hint := range errors.GetAllHints(err) {
			rootCmd.PrintErrln("hint:", hint)
		}
		os.Exit(1)
	}
}
