// Where: cli/internal/shell/runner_test.go
// What: Tests for the subprocess runner.
package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

func TestRunCapturesAndStreamsStdout(t *testing.T) {
	var live bytes.Buffer
	r := NewRunnerWithOutput(&live, &live)

	out, err := r.Run(context.Background(), []string{"sh", "-c", "echo hello"}, ports.RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "hello\n" {
		t.Fatalf("unexpected captured output: %q", out)
	}
	if !strings.Contains(live.String(), "hello") {
		t.Fatalf("expected live output, got %q", live.String())
	}
}

func TestRunIgnoreModeCapturesSilently(t *testing.T) {
	var live bytes.Buffer
	r := NewRunnerWithOutput(&live, &live)

	out, err := r.Run(context.Background(), []string{"sh", "-c", "echo quiet"}, ports.RunOptions{
		Output: ports.OutputIgnore,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "quiet\n" {
		t.Fatalf("unexpected captured output: %q", out)
	}
	if live.Len() != 0 {
		t.Fatalf("expected no live output, got %q", live.String())
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	r := NewRunnerWithOutput(new(bytes.Buffer), new(bytes.Buffer))

	out, err := r.Run(context.Background(), []string{"pwd"}, ports.RunOptions{
		WorkingDirectory: dir,
		Output:           ports.OutputIgnore,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, _ := filepath.EvalSymlinks(strings.TrimSpace(out)); got != resolved {
		t.Fatalf("unexpected working directory: %q", out)
	}
}

func TestRunEmptyArgv(t *testing.T) {
	r := NewRunnerWithOutput(new(bytes.Buffer), new(bytes.Buffer))
	if _, err := r.Run(context.Background(), nil, ports.RunOptions{}); err == nil {
		t.Fatalf("expected empty argv to fail")
	}
}

func TestRunCommandFailure(t *testing.T) {
	r := NewRunnerWithOutput(new(bytes.Buffer), new(bytes.Buffer))
	_, err := r.Run(context.Background(), []string{"sh", "-c", "exit 3"}, ports.RunOptions{
		Output: ports.OutputIgnore,
	})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(err.Error(), "command sh") {
		t.Fatalf("unexpected error: %v", err)
	}
}
