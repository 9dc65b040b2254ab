package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubbit/fstage/pkg/tree"
)

const sampleJSON = `[
  {"device": "/dev/sda2", "mountPoint": "/", "uuid": "ABCD-1234", "subvolume": "@"},
  {"device": "/dev/sda3", "mountPoint": "/home", "options": "rw,relatime"}
]`

func TestDecode_JSON(t *testing.T) {
	doc, entries, err := Decode([]byte(sampleJSON))
	require.NoError(t, err)
	require.Equal(t, tree.KindSequence, doc.Kind())
	require.Len(t, entries, 2)

	assert.Equal(t, "/dev/sda2", entries[0].Device)
	assert.Equal(t, "/", entries[0].MountPoint)
	assert.Equal(t, "ABCD-1234", entries[0].UUID)
	assert.Equal(t, "@", entries[0].Subvolume)
	assert.Equal(t, "rw,relatime", entries[1].Options)
	assert.Empty(t, entries[1].UUID)
}

func TestDecode_YAML(t *testing.T) {
	input := `
- device: /dev/nvme0n1p2
  mountPoint: /
- device: /dev/mapper/cryptswap
  mountPoint: /swap
  fs: linuxswap
`
	_, entries, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].IsMapper())
	assert.True(t, entries[1].IsSwap())
}

func TestDecode_OptionsList(t *testing.T) {
	input := `[{"device": "/dev/sda1", "mountPoint": "/boot", "options": ["umask=0077", "noatime"]}]`
	_, entries, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "umask=0077,noatime", entries[0].Options)
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode([]byte("{not json"))
	require.Error(t, err)
}

func TestDecode_RootNotArray(t *testing.T) {
	_, _, err := Decode([]byte(`{"device": "/dev/sda1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array")
}

func TestDecode_IncompleteEntriesKept(t *testing.T) {
	input := `[{"mountPoint": "/"}, {"device": "/dev/sda2", "mountPoint": "/home"}, "junk"]`
	_, entries, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.False(t, entries[0].Complete())
	assert.True(t, entries[1].Complete())
	assert.False(t, entries[2].Complete())
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open manifest")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partitions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	doc, entries, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Len(t, entries, 2)
}

func TestSortByDepth(t *testing.T) {
	entries := []Entry{
		{Device: "/dev/sda4", MountPoint: "/home/user"},
		{Device: "/dev/sda2", MountPoint: "/"},
		{Device: "/dev/sda3", MountPoint: "/var/log"},
	}
	SortByDepth(entries)

	assert.Equal(t, "/", entries[0].MountPoint)
	// /home/user and /var/log tie at two slashes and keep manifest order.
	assert.Equal(t, "/home/user", entries[1].MountPoint)
	assert.Equal(t, "/var/log", entries[2].MountPoint)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Entry{Device: "/dev/sda1", MountPoint: "/boot"}))
	assert.NoError(t, Validate(Entry{}), "missing fields are a skip, not a validation error")
	assert.Error(t, Validate(Entry{Device: "sda1", MountPoint: "/boot"}))
	assert.Error(t, Validate(Entry{Device: "/dev/sda1", MountPoint: "boot"}))
}

func TestEntryDepth(t *testing.T) {
	assert.Equal(t, 1, Entry{MountPoint: "/"}.Depth())
	assert.Equal(t, 2, Entry{MountPoint: "/var/log"}.Depth())
	assert.Equal(t, 0, Entry{}.Depth())
}
