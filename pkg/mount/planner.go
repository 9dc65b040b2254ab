package mount

import (
	"context"
	"errors"

	"github.com/kballard/go-shellquote"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/config"
	"github.com/cubbit/fstage/pkg/device"
	"github.com/cubbit/fstage/pkg/hostcmd"
	"github.com/cubbit/fstage/pkg/manifest"
	"github.com/cubbit/fstage/pkg/tree"
)

// DefaultSubvolume is the marker used when an entry names no subvolume of
// its own.
const DefaultSubvolume = "@"

// ErrSymlinkTarget is returned when a mount target turns out to be a
// symbolic link. Mounting through one could redirect a privileged mount
// outside the staging tree, so the plan is refused outright.
var ErrSymlinkTarget = errors.New("mount target is a symbolic link")

// Plan is the fully resolved set of parameters for one mount operation.
// A Plan is determined entirely by its source entry and the process-wide
// defaults; it is never reused across partitions.
type Plan struct {
	// Entry is the partition entry the plan was derived from.
	Entry manifest.Entry

	// Target is the resolved mount target: staging root + mount point.
	Target string

	// Subvolume is the entry's subvolume or DefaultSubvolume. Empty for
	// filesystems without subvolume support.
	Subvolume string

	// Options is the merged option string handed to mount -o.
	Options string

	// Filesystem is the type handed to mount -t.
	Filesystem string

	// Command is the shell-quoted command line logged as the plan of
	// record. Execution uses the argv form, never this string.
	Command string
}

// Planner resolves mount options and builds and executes mount plans.
type Planner struct {
	cfg    config.MountConfig
	runner hostcmd.Runner

	// rotational reports whether a device's disk spins; swapped out in
	// tests to avoid sysfs.
	rotational func(string) bool
}

// NewPlanner returns a Planner using cfg's defaults and the given runner
// for every interaction with the host.
func NewPlanner(cfg config.MountConfig, runner hostcmd.Runner) *Planner {
	return &Planner{cfg: cfg, runner: runner, rotational: device.IsRotational}
}

// ResolveOptions merges the process-wide default options with the entry's
// overrides. Per-partition options fully replace the defaults when
// present; there is no flag-level union, and an override also suppresses
// the SSD augmentation below. Every override of an existing default is
// emitted as an audit event. When the entry has no options of its own and
// the backing disk is non-rotational, the configured SSD options are
// appended to the defaults.
func (p *Planner) ResolveOptions(entry manifest.Entry) string {
	base := tree.NewMapping()
	base.Set("flags", tree.Scalar(p.cfg.DefaultOptions))

	overlay := tree.NewMapping()
	if entry.Options != "" {
		overlay.Set("flags", tree.Scalar(entry.Options))
	}

	merged, events := tree.Merge(base, overlay)
	for _, event := range events {
		logger.Info("%s", event)
	}

	flags := ""
	if node, ok := merged.Get("flags"); ok {
		if s, ok := node.Value().(string); ok {
			flags = s
		}
	}

	if entry.Options == "" && p.cfg.SSDOptions != "" && !p.rotational(entry.Device) {
		logger.Debug("%s is on a non-rotational disk, appending %s", entry.Device, p.cfg.SSDOptions)
		flags = flags + "," + p.cfg.SSDOptions
	}
	return flags
}

// BuildPlan computes the full mount plan for an entry without touching
// the system.
func (p *Planner) BuildPlan(entry manifest.Entry) Plan {
	plan := Plan{
		Entry: entry,
		// Plain concatenation, not filepath.Join: the mount point always
		// starts with a slash and the staging root must stay a prefix.
		Target:     p.cfg.StagingRoot + entry.MountPoint,
		Options:    p.ResolveOptions(entry),
		Filesystem: p.cfg.Filesystem,
	}
	if entry.Filesystem != "" {
		plan.Filesystem = entry.Filesystem
	}

	if plan.Filesystem == "btrfs" {
		plan.Subvolume = entry.Subvolume
		if plan.Subvolume == "" {
			plan.Subvolume = DefaultSubvolume
		}
	}

	plan.Command = shellquote.Join(mountArgs(plan)...)
	return plan
}

// mountArgs is the single place the mount argument order is defined.
func mountArgs(plan Plan) []string {
	options := plan.Options
	if plan.Subvolume != "" {
		options = "subvol=" + plan.Subvolume + "," + options
	}
	return []string{
		"mount",
		"-t", plan.Filesystem,
		"-o", options,
		plan.Entry.Device,
		plan.Target,
	}
}

// Execute enforces the symlink gate, logs the plan of record, and - only
// when apply mode is enabled - creates the target directory and runs the
// mount command. With apply off (the default) the plan is fully computed
// and logged but the system is never touched.
func (p *Planner) Execute(ctx context.Context, plan Plan) error {
	isLink, err := p.runner.IsSymlink(plan.Target)
	if err != nil {
		return err
	}
	if isLink {
		logger.Error("security alert: mount target %s is a symbolic link, refusing to mount", plan.Target)
		return ErrSymlinkTarget
	}

	logger.Info("mount plan: %s", plan.Command)

	if !p.cfg.Apply {
		logger.Info("apply disabled, not mounting %s", plan.Target)
		return nil
	}

	if err := p.runner.MkdirAll(plan.Target); err != nil {
		return err
	}
	args := mountArgs(plan)
	return p.runner.Run(ctx, args[0], args[1:]...)
}
