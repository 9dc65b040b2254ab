// Package cli wires the mount pipeline to the command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/config"
)

var (
	// Global flags
	configPath string
	logLevel   string
)

// rootCmd is the root command for fstage.
var rootCmd = &cobra.Command{
	Use:     "fstage",
	Version: "dev",
	Short:   "Plan and execute filesystem mounts for a staged root",
	Long: `fstage reads a partition manifest and mounts each partition under a
staging root, parents before children, after verifying device identity
and refusing symlinked mount targets.

By default fstage only plans: every mount command is computed and logged
but nothing is created or mounted. Use 'apply' to execute the plans.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI. A returned error means a fatal condition; the
// caller exits non-zero. Per-partition failures never surface here.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	return cfg, nil
}
