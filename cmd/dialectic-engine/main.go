// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dialectic-engine CLI.
// Implements: prd007-cli; docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dialectic-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "dialectic-engine",
	Short: "Structured disagreement resolution with auditable elimination",
	Long: `dialectic-engine runs dialectical elimination protocols: candidate
solutions are subjected to typed adversarial challenges, survivors are
derived by auditable rules, and adoption is gated on argued proof
obligations. Finalized outcomes land in an append-only registry.

Author a run document (YAML) and execute it with "run". Inspect prior
results with "outcomes" and the protocol catalogues with "protocols".`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dialectic-engine.yaml or ~/.config/dialectic-engine/config.yaml)")
	rootCmd.PersistentFlags().String("state-dir", "", "base directory for engine state (default: state)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dialectic-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dialectic-engine"))
		}
	}

	viper.SetEnvPrefix("DIALECTIC_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// settings resolves configuration from flags, config file, and environment.
func settings() types.EngineSettings {
	s := types.EngineSettings{
		Engine: types.EngineConfig{
			MaxRevisions: viper.GetInt("engine.max_revisions"),
		},
		Registry: types.RegistryConfig{
			StateDir:   viper.GetString("registry.state_dir"),
			MaxResults: viper.GetInt("registry.max_results"),
		},
	}
	if dir, _ := rootCmd.PersistentFlags().GetString("state-dir"); dir != "" {
		s.Registry.StateDir = dir
	}
	if s.Registry.StateDir == "" {
		s.Registry.StateDir = "state"
	}
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
