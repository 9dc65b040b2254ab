package mount

import (
	"context"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/device"
	"github.com/cubbit/fstage/pkg/hostcmd"
	"github.com/cubbit/fstage/pkg/manifest"
)

// Preflight runs the pre-mount checks on one partition entry.
//
// The checks are instrumentation: identity verification when a UUID is
// expected, a trust notice for mapper devices, and the examination
// context. None of them can veto the subsequent mount; a discrepancy is
// surfaced in the audit log and the batch moves on.
func Preflight(ctx context.Context, runner hostcmd.Runner, entry manifest.Entry) {
	if entry.UUID != "" {
		VerifyUUID(ctx, runner, entry.Device, entry.UUID)
	}

	if entry.IsMapper() {
		// Contents behind an unlocked mapper node are taken on trust;
		// there is no further cryptographic check to make here.
		logger.Info("mapper device %s: trusting unlocked contents", entry.Device)
	}

	logger.Info("examining %s on %s (disk %s)",
		entry.MountPoint, entry.Device, device.ParentBlockDevice(entry.Device))

	if entry.Subvolume == "" {
		logger.Info("no subvolume named for %s, default applies", entry.MountPoint)
	}
}
