// Where: cli/internal/ui/console.go
// What: Progress console for publishing output.
// Why: Standardize event rendering across commands.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// Console renders progress events to a writer. Debug events are
// dropped unless Verbose is set; all events are dropped when Quiet is
// set.
type Console struct {
	Out     io.Writer
	Verbose bool
	Quiet   bool
}

// New creates a Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Emit renders one progress event.
// Example: [check] Check 12345.dkr.ecr.us-east-1.amazonaws.com/repo:latest
func (c *Console) Emit(event ports.EventType, message string) {
	if c.Quiet {
		return
	}
	if event == ports.EventDebug && !c.Verbose {
		return
	}
	fmt.Fprintf(c.Out, "[%s] %s\n", strings.ToLower(string(event)), message)
}

// Success prints a success message with a checkmark.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "✅ %s\n", msg)
}

// Info prints an info message with an arrow.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "➜ %s\n", msg)
}

// Warn prints a warning message.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "%s\n", msg)
}
