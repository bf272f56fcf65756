// Package config loads shipwright's runtime settings from .shipwright.yaml,
// SHIPWRIGHT_* environment variables, and CLI flags, in that ascending
// precedence order.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a shipwright invocation.
type Config struct {
	PortRoot     string `mapstructure:"port_root"`
	StatusDBPath string `mapstructure:"status_db_path"`
	Triplet      string `mapstructure:"triplet"`
	Recursive    bool   `mapstructure:"recursive"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("port_root", "ports")
	viper.SetDefault("status_db_path", ".shipwright/status.db")
	viper.SetDefault("triplet", "x64-linux")
	viper.SetDefault("recursive", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
