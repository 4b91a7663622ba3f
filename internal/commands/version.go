// Where: cli/internal/commands/version.go
// What: version command implementation.
// Why: Report both the tool build and the supported manifest schema.
package commands

import (
	"fmt"
	"io"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/version"
)

func runVersion(out io.Writer) int {
	fmt.Fprintf(out, "casm %s (schema %s)\n", version.GetVersion(), manifest.Version())
	return 0
}
