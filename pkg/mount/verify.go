// Package mount implements the validation-and-planning pipeline that
// turns a sorted partition list into executed (or logged) mount commands.
package mount

import (
	"context"
	"strings"

	"github.com/cubbit/fstage/internal/logger"
	"github.com/cubbit/fstage/pkg/hostcmd"
)

// VerifyUUID queries the actual filesystem UUID of device and compares it
// to expected. A match is confirmed at info level; a mismatch is reported
// at warn level with device, expected and actual values.
//
// The check is advisory: it never fails the pipeline. An empty or
// unreadable result counts as a mismatch.
func VerifyUUID(ctx context.Context, runner hostcmd.Runner, device, expected string) bool {
	out, err := runner.Output(ctx, "blkid", "-s", "UUID", "-o", "value", device)
	if err != nil {
		logger.Warn("uuid query failed for %s: %v", device, err)
	}

	actual := strings.TrimSpace(out)
	if actual == expected {
		logger.Info("uuid verified for %s: %s", device, expected)
		return true
	}

	logger.Warn("uuid mismatch on %s: expected %q, found %q", device, expected, actual)
	return false
}
