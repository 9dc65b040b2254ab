package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, DefaultStagingRoot, cfg.Mount.StagingRoot)
	assert.Equal(t, DefaultMountOptions, cfg.Mount.DefaultOptions)
	assert.False(t, cfg.Mount.Apply, "apply must default to off")
	assert.False(t, cfg.Mount.FstabPreview)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
mount:
  staging_root: /mnt/target
  default_options: defaults,noatime,compress=zstd
  apply: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level, "log level is normalized to uppercase")
	assert.Equal(t, "/mnt/target", cfg.Mount.StagingRoot)
	assert.Equal(t, "defaults,noatime,compress=zstd", cfg.Mount.DefaultOptions)
	assert.True(t, cfg.Mount.Apply)
	assert.Equal(t, DefaultFilesystem, cfg.Mount.Filesystem, "unset fields keep defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FSTAGE_MOUNT_STAGING_ROOT", "/mnt/envroot")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/envroot", cfg.Mount.StagingRoot)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(*Config) {},
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "LOUD" },
			wantErr: "oneof",
		},
		{
			name:    "relative staging root",
			mutate:  func(cfg *Config) { cfg.Mount.StagingRoot = "mnt" },
			wantErr: "startswith",
		},
		{
			name:    "whitespace in options",
			mutate:  func(cfg *Config) { cfg.Mount.DefaultOptions = "defaults, noatime" },
			wantErr: "must not contain whitespace",
		},
		{
			name:    "staging root is /",
			mutate:  func(cfg *Config) { cfg.Mount.StagingRoot = "/" },
			wantErr: "refusing to stage",
		},
		{
			name:    "empty default options",
			mutate:  func(cfg *Config) { cfg.Mount.DefaultOptions = "" },
			wantErr: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
