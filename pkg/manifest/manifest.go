// Package manifest loads and orders the partition list that drives the
// mount pipeline.
//
// The manifest is a document (JSON, or YAML as a superset) holding an
// array of partition entries. Loading produces both the raw configuration
// tree, kept for the post-batch audit dump, and the decoded entries.
package manifest

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/cubbit/fstage/pkg/tree"
)

// Entry is one unit of mount configuration from the input document. It is
// constructed once at decode time and read-only thereafter.
type Entry struct {
	// Device is the block device or mapper path backing the mount.
	Device string `mapstructure:"device" validate:"omitempty,startswith=/"`

	// MountPoint is the absolute path under the target root.
	MountPoint string `mapstructure:"mountPoint" validate:"omitempty,startswith=/"`

	// UUID is the expected filesystem UUID, verified before mounting
	// when present.
	UUID string `mapstructure:"uuid" validate:"omitempty,printascii"`

	// Subvolume names an independently mountable namespace within the
	// device's filesystem.
	Subvolume string `mapstructure:"subvolume"`

	// Options carries comma-separated mount-option overrides. When set
	// it fully replaces the system-wide defaults.
	Options string `mapstructure:"options"`

	// Filesystem is the filesystem type ("btrfs" when empty). Entries
	// with "linuxswap" are activated with swapon instead of mounted.
	Filesystem string `mapstructure:"fs"`
}

// Complete reports whether the entry carries both fields the pipeline
// needs. Incomplete entries are skipped silently.
func (e Entry) Complete() bool {
	return e.Device != "" && e.MountPoint != ""
}

// IsMapper reports whether the device is a device-mapper node, typically
// an unlocked encrypted volume.
func (e Entry) IsMapper() bool {
	return strings.HasPrefix(e.Device, "/dev/mapper/")
}

// IsSwap reports whether the entry describes a swap partition.
func (e Entry) IsSwap() bool {
	return e.Filesystem == "linuxswap"
}

// Depth is the slash count of the mount point, the sort key that places
// parents before children.
func (e Entry) Depth() int {
	return strings.Count(e.MountPoint, "/")
}

var validate = validator.New()

// Validate checks the well-formedness of an entry's present fields. It
// never rejects missing optional fields; completeness is a separate,
// non-fatal concern.
func Validate(e Entry) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid partition entry: %w", err)
	}
	return nil
}

// Load reads and decodes a manifest file. It returns the raw document
// tree alongside the decoded entries. Errors from this function are the
// only fatal conditions in the pipeline.
func Load(path string) (*tree.Node, []Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open manifest: %w", err)
	}
	return Decode(data)
}

// Decode parses raw manifest text into the document tree and its entries.
func Decode(data []byte) (*tree.Node, []Entry, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("cannot decode manifest: %w", err)
	}

	doc, err := tree.FromAny(normalizeKeys(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot decode manifest: %w", err)
	}
	if doc.Kind() != tree.KindSequence {
		return nil, nil, fmt.Errorf("cannot decode manifest: document root is a %s, expected an array", doc.Kind())
	}

	entries := make([]Entry, 0, doc.Len())
	for i, item := range doc.Items() {
		if item.Kind() != tree.KindMapping {
			entries = append(entries, Entry{})
			continue
		}
		var entry Entry
		if err := decodeEntry(tree.ToAny(item), &entry); err != nil {
			return nil, nil, fmt.Errorf("cannot decode manifest: entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return doc, entries, nil
}

// decodeEntry maps a generic mapping onto an Entry. A decode hook joins
// list-valued options into the comma-separated form mount expects, since
// manifests produced by partitioning tools commonly carry options as an
// array.
func decodeEntry(src any, dst *Entry) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		DecodeHook:       joinStringSliceHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

func joinStringSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.String {
		return data, nil
	}
	items, ok := data.([]any)
	if !ok {
		return data, nil
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	return strings.Join(parts, ","), nil
}

// normalizeKeys converts the map[any]any mappings some YAML decoders
// produce into the string-keyed form tree.FromAny accepts.
func normalizeKeys(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[fmt.Sprintf("%v", key)] = normalizeKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[key] = normalizeKeys(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, normalizeKeys(item))
		}
		return out
	default:
		return v
	}
}

// SortByDepth orders entries ascending by mount point depth, so a parent
// directory is always mounted before anything below it. The sort is
// stable: entries at equal depth keep their manifest order.
func SortByDepth(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Depth() < entries[j].Depth()
	})
}
