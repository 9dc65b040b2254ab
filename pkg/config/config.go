// Package config loads and validates the fstage configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config captures every configurable aspect of the mount pipeline.
//
// Configuration sources (highest precedence first):
//  1. CLI flags
//  2. Environment variables (FSTAGE_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Mount contains the mount pipeline settings
	Mount MountConfig `mapstructure:"mount"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// MountConfig contains the mount pipeline settings.
type MountConfig struct {
	// StagingRoot is the directory every mount point is prefixed with.
	// Mount targets are staging_root + mountPoint.
	StagingRoot string `mapstructure:"staging_root" validate:"required,startswith=/"`

	// DefaultOptions is the system-wide merge base for per-partition
	// mount options. Immutable for the process lifetime.
	DefaultOptions string `mapstructure:"default_options" validate:"required"`

	// SSDOptions are appended to the resolved options when the backing
	// disk reports itself non-rotational.
	SSDOptions string `mapstructure:"ssd_options"`

	// Filesystem is the type passed to mount.
	Filesystem string `mapstructure:"filesystem" validate:"required"`

	// Apply enables directory creation and execution of the planned
	// mount commands. When false (the default) the pipeline computes and
	// logs every plan without touching the system.
	Apply bool `mapstructure:"apply"`

	// FstabPreview enables the post-batch fstab preview, and its write
	// to <staging_root>/etc/fstab when Apply is also set.
	FstabPreview bool `mapstructure:"fstab_preview"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: path to a config file (empty string uses the default
//     location and tolerates absence)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment variable support and the config file
// search path.
func setupViper(v *viper.Viper, configPath string) {
	// Example: FSTAGE_MOUNT_STAGING_ROOT=/mnt/target
	v.SetEnvPrefix("FSTAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for AutomaticEnv to surface them
	// through Unmarshal; register each with its zero value. Real
	// defaults are applied after unmarshalling.
	v.SetDefault("logging.level", "")
	v.SetDefault("mount.staging_root", "")
	v.SetDefault("mount.default_options", "")
	v.SetDefault("mount.ssd_options", "")
	v.SetDefault("mount.filesystem", "")
	v.SetDefault("mount.apply", false)
	v.SetDefault("mount.fstab_preview", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists. A missing
// file is acceptable; defaults take over.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path, following
// XDG_CONFIG_HOME with a ~/.config fallback.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fstage")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "fstage")
}
