// Where: cli/internal/commands/output.go
// What: Shared output helpers for CLI commands.
// Why: Consistent error rendering and console construction.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/stackbound/cloud-assembly/cli/internal/ui"
)

var errUnknownCommand = errors.New("unknown command")

// exitWithError prints an error message to the output writer and
// returns exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	newConsole(out).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}

func newConsole(out io.Writer) *ui.Console {
	return ui.New(out)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
