// Package cmd wires shipwright's Cobra command tree: a root command plus
// install/remove/upgrade/plan/export/watch subcommands, each a thin wrapper
// over internal/planner and internal/report.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "shipwright",
	Short: "Feature-aware dependency planner for a source-based package manager",
	Long:  "shipwright computes install/remove/export plans for ports and their optional features, without building or fetching anything itself.",
}

// Execute runs the root command, printing any error to stderr and exiting
// non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .shipwright.yaml)")
	rootCmd.PersistentFlags().String("port-root", "", "directory containing one subdirectory per port")
	rootCmd.PersistentFlags().String("status-db", "", "path to the status database")
	rootCmd.PersistentFlags().String("triplet", "", "default triplet for specs that don't name one")
	rootCmd.PersistentFlags().BoolP("recursive", "r", false, "allow plans that require removing installed packages")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	viper.BindPFlag("port_root", rootCmd.PersistentFlags().Lookup("port-root"))
	viper.BindPFlag("status_db_path", rootCmd.PersistentFlags().Lookup("status-db"))
	viper.BindPFlag("triplet", rootCmd.PersistentFlags().Lookup("triplet"))
	viper.BindPFlag("recursive", rootCmd.PersistentFlags().Lookup("recursive"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".shipwright")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SHIPWRIGHT")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults plus flags/env.
	_ = viper.ReadInConfig()
}
