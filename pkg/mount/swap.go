package mount

import (
	"context"

	"github.com/kballard/go-shellquote"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/manifest"
)

// ActivateSwap handles entries describing swap partitions, which are
// enabled with swapon rather than mounted. The plan is logged like any
// other; execution follows the same apply gate.
func (p *Planner) ActivateSwap(ctx context.Context, entry manifest.Entry) error {
	logger.Info("swap plan: %s", shellquote.Join("swapon", entry.Device))

	if !p.cfg.Apply {
		logger.Info("apply disabled, not enabling swap on %s", entry.Device)
		return nil
	}

	return p.runner.Run(ctx, "swapon", entry.Device)
}
