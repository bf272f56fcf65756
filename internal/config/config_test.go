package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"PortRoot", cfg.PortRoot, "ports"},
		{"StatusDBPath", cfg.StatusDBPath, ".shipwright/status.db"},
		{"Triplet", cfg.Triplet, "x64-linux"},
		{"Recursive", cfg.Recursive, false},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "port_root",
			envKey: "SHIPWRIGHT_PORT_ROOT",
			envVal: "/srv/ports",
			field:  func(c Config) any { return c.PortRoot },
			want:   "/srv/ports",
		},
		{
			name:   "triplet",
			envKey: "SHIPWRIGHT_TRIPLET",
			envVal: "arm64-osx",
			field:  func(c Config) any { return c.Triplet },
			want:   "arm64-osx",
		},
		{
			name:   "recursive",
			envKey: "SHIPWRIGHT_RECURSIVE",
			envVal: "true",
			field:  func(c Config) any { return c.Recursive },
			want:   true,
		},
		{
			name:   "verbose",
			envKey: "SHIPWRIGHT_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix("SHIPWRIGHT")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoadDefaultsAreNotZero(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.PortRoot == "" {
		t.Error("PortRoot should not be empty")
	}
	if cfg.StatusDBPath == "" {
		t.Error("StatusDBPath should not be empty")
	}
	if cfg.Triplet == "" {
		t.Error("Triplet should not be empty")
	}
}
