package hostcmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/cubbit/fstage/internal/logger"
)

// ExecRunner runs commands against the real operating system via os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by the host.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Error("command failed: %s %v\noutput: %s", name, args, string(output))
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(output), nil
}

func (r *ExecRunner) IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

func (r *ExecRunner) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}
