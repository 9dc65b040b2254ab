package config

import "strings"

// Default values for the mount pipeline.
const (
	DefaultStagingRoot  = "/tmp/fstage-root"
	DefaultMountOptions = "defaults,noatime"
	DefaultSSDOptions   = "ssd,discard=async"
	DefaultFilesystem   = "btrfs"
)

// GetDefaultConfig returns a fully populated default configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyMountDefaults(&cfg.Mount)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)
}

// applyMountDefaults sets mount pipeline defaults. Apply and FstabPreview
// deliberately default to false: a fresh install of fstage plans and logs
// but never mounts.
func applyMountDefaults(cfg *MountConfig) {
	if cfg.StagingRoot == "" {
		cfg.StagingRoot = DefaultStagingRoot
	}
	if cfg.DefaultOptions == "" {
		cfg.DefaultOptions = DefaultMountOptions
	}
	if cfg.SSDOptions == "" {
		cfg.SSDOptions = DefaultSSDOptions
	}
	if cfg.Filesystem == "" {
		cfg.Filesystem = DefaultFilesystem
	}
}
