package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cubbit/fstage/pkg/mount"
	"github.com/cubbit/fstage/pkg/tree"
)

var (
	branchColor  = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed, color.Bold)
)

// dumpTree prints the decoded manifest document for terminal audit
// review. It has no effect on mount outcomes.
func dumpTree(doc *tree.Node) {
	if doc == nil {
		return
	}
	fmt.Println("manifest document:")
	tree.Walk(doc, func(key string, value any, depth int, isContainer, inSequence bool) {
		indent := strings.Repeat("  ", depth)
		label := key
		if inSequence {
			label = "[" + key + "]"
		}
		if label == "" {
			label = "."
		}
		if isContainer {
			branchColor.Printf("%s%s\n", indent, label)
			return
		}
		fmt.Printf("%s%s: %v\n", indent, label, value)
	})
}

// printSummary reports per-entry outcomes after the batch.
func printSummary(result *mount.Result) {
	planned := len(result.Plans())
	failures := result.Failures()

	successColor.Printf("%d mount plan(s) computed\n", planned)
	for _, outcome := range failures {
		failureColor.Printf("failed: %s (%s): %v\n",
			outcome.Entry.MountPoint, outcome.Entry.Device, outcome.Err)
	}
	if len(failures) == 0 {
		return
	}
	fmt.Printf("%d of %d entries failed; see the log above\n",
		len(failures), len(result.Outcomes))
}
