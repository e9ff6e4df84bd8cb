// Copyright Iowa State University, 2026. All rights reserved.

// Package main is the entry point for the logkpredict CLI: stability
// constant (log K) prediction for metal-ligand complexes, compatible with
// HostDesigner input records.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the logkpredict CLI.
var rootCmd = &cobra.Command{
	Use:   "logkpredict",
	Short: "Stability constant prediction for metal-ligand complexes",
	Long: `logkpredict converts a HostDesigner metal-ligand record into the input
artifacts of a trained chemprop model and reports the predicted stability
constant (log K).

The pipeline parses the record, rewrites coordination bonds as dative
bonds, evaluates the pinned molecular descriptor window, assembles the
feature table, and invokes chemprop_predict over the result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env may carry LOGKPREDICT_DIR; absence is not an error.
		if err := godotenv.Load(); err == nil {
			fmt.Fprintln(os.Stderr, "Loaded environment from .env")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./logkpredict.yaml or ~/.config/logkpredict/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("logkpredict")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "logkpredict"))
		}
	}

	viper.SetEnvPrefix("LOGKPREDICT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
