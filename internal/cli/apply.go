package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cubbit/fstage/pkg/hostcmd"
	"github.com/cubbit/fstage/pkg/manifest"
	"github.com/cubbit/fstage/pkg/mount"
)

var applyYes bool

var applyCmd = &cobra.Command{
	Use:   "apply <manifest>",
	Short: "Execute the mount plans against the system",
	Long: `Apply loads the partition manifest and runs the full pipeline with
execution enabled: target directories are created and the planned mount
commands run against the host. A confirmation prompt guards the run
unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Mount.Apply = true

		doc, entries, err := manifest.Load(args[0])
		if err != nil {
			return err
		}

		if !applyYes {
			confirm := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Mount %d partitions under %s?", len(entries), cfg.Mount.StagingRoot),
				Default: false,
			}
			if err := survey.AskOne(prompt, &confirm); err != nil {
				return err
			}
			if !confirm {
				return fmt.Errorf("apply cancelled")
			}
		}

		batch := mount.NewBatch(cfg.Mount, hostcmd.NewExecRunner())

		bar := progressbar.Default(int64(len(entries)), "Mounting partitions")
		batch.AfterEntry = func(mount.Outcome) {
			bar.Add(1)
		}

		result := batch.Run(context.Background(), doc, entries)

		dumpTree(result.Doc)
		printSummary(result)
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "skip the confirmation prompt")
}
