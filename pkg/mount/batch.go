package mount

import (
	"context"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/config"
	"github.com/cubbit/fstage/pkg/hostcmd"
	"github.com/cubbit/fstage/pkg/manifest"
	"github.com/cubbit/fstage/pkg/tree"
)

// Outcome is the explicit per-entry result of one batch iteration.
// Failures are values here, never panics: one bad entry cannot stop the
// partitions after it.
type Outcome struct {
	// Entry is the partition entry this outcome belongs to.
	Entry manifest.Entry

	// Plan is the computed mount plan, nil for skipped and swap entries.
	Plan *Plan

	// Skipped is true for entries missing a device or - swap excepted -
	// a mount point; such entries are passed over silently.
	Skipped bool

	// Err holds the failure reason, nil on success.
	Err error
}

// Failed reports whether the entry's processing ended in an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// Result collects everything a batch run produced.
type Result struct {
	// Doc is the decoded manifest tree, kept for the audit dump.
	Doc *tree.Node

	// Outcomes holds one entry per manifest entry, in processing order.
	Outcomes []Outcome
}

// Plans returns the successfully executed mount plans in batch order.
func (r *Result) Plans() []Plan {
	var plans []Plan
	for _, outcome := range r.Outcomes {
		if outcome.Plan != nil && !outcome.Failed() {
			plans = append(plans, *outcome.Plan)
		}
	}
	return plans
}

// Failures returns the outcomes that ended in an error.
func (r *Result) Failures() []Outcome {
	var failed []Outcome
	for _, outcome := range r.Outcomes {
		if outcome.Failed() {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// Batch orchestrates the whole pipeline over a partition list: ordering,
// per-entry validation, planning and execution with per-entry isolation.
type Batch struct {
	cfg     config.MountConfig
	runner  hostcmd.Runner
	planner *Planner

	// AfterEntry, when set, is invoked once per processed entry. The cli
	// layer hooks progress reporting here.
	AfterEntry func(Outcome)
}

// NewBatch returns a Batch bound to the given configuration and runner.
func NewBatch(cfg config.MountConfig, runner hostcmd.Runner) *Batch {
	return &Batch{
		cfg:     cfg,
		runner:  runner,
		planner: NewPlanner(cfg, runner),
	}
}

// RunFile loads a manifest and runs the batch over it. A load or decode
// failure is the only fatal path; everything after decoding is isolated
// per entry.
func (b *Batch) RunFile(ctx context.Context, path string) (*Result, error) {
	doc, entries, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return b.Run(ctx, doc, entries), nil
}

// Run processes the entries in mount order. Parents are mounted before
// children by sorting on mount point depth first; the loop itself needs
// no further coordination. Each entry's failure is logged as a critical
// error and the batch continues.
func (b *Batch) Run(ctx context.Context, doc *tree.Node, entries []manifest.Entry) *Result {
	sorted := make([]manifest.Entry, len(entries))
	copy(sorted, entries)
	manifest.SortByDepth(sorted)

	result := &Result{Doc: doc}
	for _, entry := range sorted {
		outcome := b.processEntry(ctx, entry)
		if outcome.Failed() {
			logger.Error("critical error on %s (%s): %v", entry.MountPoint, entry.Device, outcome.Err)
		}
		result.Outcomes = append(result.Outcomes, outcome)
		if b.AfterEntry != nil {
			b.AfterEntry(outcome)
		}
	}

	if b.cfg.FstabPreview {
		b.previewFstab(ctx, result)
	}

	return result
}

func (b *Batch) processEntry(ctx context.Context, entry manifest.Entry) Outcome {
	// Swap partitions are activated, not mounted, so the device alone is
	// enough; a mount point is not required.
	if entry.IsSwap() {
		if entry.Device == "" {
			return Outcome{Entry: entry, Skipped: true}
		}
		if err := manifest.Validate(entry); err != nil {
			return Outcome{Entry: entry, Err: err}
		}
		if err := b.planner.ActivateSwap(ctx, entry); err != nil {
			return Outcome{Entry: entry, Err: err}
		}
		return Outcome{Entry: entry}
	}

	if !entry.Complete() {
		return Outcome{Entry: entry, Skipped: true}
	}
	if err := manifest.Validate(entry); err != nil {
		return Outcome{Entry: entry, Err: err}
	}

	Preflight(ctx, b.runner, entry)

	plan := b.planner.BuildPlan(entry)
	if err := b.planner.Execute(ctx, plan); err != nil {
		return Outcome{Entry: entry, Plan: &plan, Err: err}
	}
	return Outcome{Entry: entry, Plan: &plan}
}

// previewFstab logs an fstab-style line per successful plan and, in
// apply mode, writes them under the staging root.
func (b *Batch) previewFstab(ctx context.Context, result *Result) {
	plans := result.Plans()
	if len(plans) == 0 {
		return
	}

	lines := FstabLines(ctx, b.runner, plans)
	for _, line := range lines {
		logger.Info("fstab: %s", line)
	}

	if b.cfg.Apply {
		if err := WriteFstab(b.cfg.StagingRoot, lines); err != nil {
			logger.Error("fstab write failed: %v", err)
		}
	}
}
