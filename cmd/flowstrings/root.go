// Root command for the flowstrings CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/emberlink/flowstrings/internal/paths"
	"github.com/emberlink/flowstrings/pkg/flowstrings"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagRegistry  string
	flagJSON      bool
	flagDebug     bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configDataDir  string
	configRegistry string
)

var rootCmd = &cobra.Command{
	Use:          "flowstrings",
	Short:        "flowstrings validates, renders, and indexes integration string tables",
	Version:      flowstrings.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configRegistry = cfg.GetString(cfgKeyRegistry)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "index data directory (default: $(CWD)/.flowstrings-db)")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "common registry JSON file (default: built-in registry)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logs")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(watchCmd)
}

// resolveDataDir returns the index data directory following the precedence:
// --data-dir flag > config.yaml data_dir > FLOWSTRINGS_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > FLOWSTRINGS_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
