// Where: cli/internal/ports/subprocess.go
// What: Subprocess execution contract.
// Why: Externally delegated builds run arbitrary command vectors.
package ports

import "context"

// OutputMode controls where a subprocess's live output goes. Standard
// output is always captured and returned.
type OutputMode string

const (
	// OutputInherit streams the child's output to the parent while
	// capturing it.
	OutputInherit OutputMode = "inherit"
	// OutputIgnore discards live output; only the captured text is
	// returned.
	OutputIgnore OutputMode = "ignore"
)

// RunOptions configures a single subprocess run.
type RunOptions struct {
	WorkingDirectory string
	Output           OutputMode
}

// Runner executes a command vector and returns its captured standard
// output as text.
type Runner interface {
	Run(ctx context.Context, argv []string, options RunOptions) (string, error)
}
