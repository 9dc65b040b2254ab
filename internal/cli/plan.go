package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cubbit/fstage/pkg/hostcmd"
	"github.com/cubbit/fstage/pkg/mount"
)

var planCmd = &cobra.Command{
	Use:   "plan <manifest>",
	Short: "Compute and log mount plans without touching the system",
	Long: `Plan loads the partition manifest, validates every entry and logs the
mount command each one would run. Nothing is created or mounted,
regardless of the apply setting in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// plan never executes, whatever the config says.
		cfg.Mount.Apply = false

		batch := mount.NewBatch(cfg.Mount, hostcmd.NewExecRunner())
		result, err := batch.RunFile(context.Background(), args[0])
		if err != nil {
			return err
		}

		dumpTree(result.Doc)
		printSummary(result)
		return nil
	},
}
