// Where: cli/internal/shell/runner.go
// What: Subprocess runner implementation.
// Why: Execute command vectors with captured standard output.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

type execRunner struct {
	out io.Writer
	err io.Writer
}

// NewRunner returns a Runner backed by os/exec, streaming live output
// to the process's stdout/stderr unless the ignore mode is requested.
func NewRunner() ports.Runner {
	return &execRunner{out: os.Stdout, err: os.Stderr}
}

// NewRunnerWithOutput returns a Runner streaming live output to the
// given writers. Used by tests and embedded callers.
func NewRunnerWithOutput(out, errOut io.Writer) ports.Runner {
	return &execRunner{out: out, err: errOut}
}

func (r *execRunner) Run(ctx context.Context, argv []string, options ports.RunOptions) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = options.WorkingDirectory

	var captured bytes.Buffer
	switch options.Output {
	case ports.OutputIgnore:
		cmd.Stdout = &captured
		cmd.Stderr = io.Discard
	default:
		cmd.Stdout = io.MultiWriter(&captured, r.out)
		cmd.Stderr = r.err
	}

	if err := cmd.Run(); err != nil {
		return captured.String(), fmt.Errorf("command %s: %w", argv[0], err)
	}
	return captured.String(), nil
}
