package mount

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/hostcmd"
)

// FstabLines renders an fstab-style line for every executed plan, for
// review after the batch. The source column prefers UUID= identification
// when blkid can resolve one, falling back to the device path.
func FstabLines(ctx context.Context, runner hostcmd.Runner, plans []Plan) []string {
	lines := make([]string, 0, len(plans))
	for _, plan := range plans {
		source := plan.Entry.Device
		if out, err := runner.Output(ctx, "blkid", "-s", "UUID", "-o", "value", plan.Entry.Device); err == nil {
			if uuid := strings.TrimSpace(out); uuid != "" {
				source = "UUID=" + uuid
			}
		}

		options := plan.Options
		if plan.Subvolume != "" {
			options = "subvol=" + plan.Subvolume + "," + options
		}

		pass := 2
		if plan.Entry.MountPoint == "/" {
			pass = 1
		}

		lines = append(lines, fmt.Sprintf("%s %s %s %s 0 %d",
			source, plan.Entry.MountPoint, plan.Filesystem, options, pass))
	}
	return lines
}

// WriteFstab writes the rendered lines to <stagingRoot>/etc/fstab.
func WriteFstab(stagingRoot string, lines []string) error {
	path := filepath.Join(stagingRoot, "etc", "fstab")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	content := "# /etc/fstab: generated by fstage\n" +
		"# <file system> <mount point> <type> <options> <dump> <pass>\n" +
		strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write fstab: %w", err)
	}

	logger.Info("wrote %d fstab entries to %s", len(lines), path)
	return nil
}
