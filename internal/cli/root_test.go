package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FSTAGE_MOUNT_STAGING_ROOT", filepath.Join(t.TempDir(), "root"))

	path := filepath.Join(t.TempDir(), "partitions.json")
	input := `[{"device": "/dev/sda2", "mountPoint": "/"}, {"device": "/dev/sda3", "mountPoint": "/home"}]`
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	rootCmd.SetArgs([]string{"plan", path})
	require.NoError(t, rootCmd.Execute(), "per-entry problems must not fail the process")
}

func TestPlanCommand_MissingManifestIsFatal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"plan", filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, rootCmd.Execute())
}

func TestPlanCommand_UndecodableManifestIsFatal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "partitions.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	rootCmd.SetArgs([]string{"plan", path})
	require.Error(t, rootCmd.Execute())
}
