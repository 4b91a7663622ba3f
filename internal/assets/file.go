// Where: cli/internal/assets/file.go
// What: File asset handler.
// Why: Upload file assets to an object store with the same idempotent shape.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// FileHandler publishes one file asset to one object-store destination.
// Mirrors the image handler's state machine: memoized existence check,
// cancellation checkpoints between steps, silent no-op once published.
type FileHandler struct {
	id      string
	source  manifest.FileSource
	dest    manifest.FileDestination
	workDir string
	host    *HandlerHost

	initOnce sync.Once
	init     *fileInitState
	initErr  error

	// localPath is produced by Build (either the declared path or the
	// executable's output) and consumed by Publish.
	localPath string
}

type fileInitState struct {
	dest   manifest.FileDestination
	exists bool
}

// NewFileHandler builds a handler for the given file asset id, source,
// and destination.
func NewFileHandler(id string, source manifest.FileSource, dest manifest.FileDestination, workDir string, host *HandlerHost) *FileHandler {
	return &FileHandler{
		id:      id,
		source:  source,
		dest:    dest,
		workDir: workDir,
		host:    host,
	}
}

// IsPublished reports whether the destination object already exists.
// Never fails; any resolution error is reported as false.
func (h *FileHandler) IsPublished(ctx context.Context) bool {
	state, err := h.ensureInit(ctx, true)
	if err != nil {
		h.host.emit(ports.EventDebug, fmt.Sprintf("failed to check %s: %v", h.id, err))
		return false
	}
	return state.exists
}

// Build resolves the local file to upload. For executable sources the
// command's trimmed standard output names the produced file.
func (h *FileHandler) Build(ctx context.Context) error {
	state, err := h.ensureInit(ctx, false)
	if err != nil {
		return err
	}
	if state.exists || h.host.Aborted() {
		return nil
	}

	if len(h.source.Executable) > 0 {
		h.host.emit(ports.EventBuild, fmt.Sprintf("Building asset using command '%s'", strings.Join(h.source.Executable, " ")))
		out, err := h.host.Runner.Run(ctx, h.source.Executable, ports.RunOptions{
			WorkingDirectory: h.workDir,
			Output:           ports.OutputIgnore,
		})
		if err != nil {
			return err
		}
		h.localPath = strings.TrimSpace(out)
		return nil
	}

	path := h.source.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.workDir, path)
	}
	h.localPath = path
	return nil
}

// Publish uploads the built file to the destination object.
func (h *FileHandler) Publish(ctx context.Context) error {
	state, err := h.ensureInit(ctx, false)
	if err != nil {
		return err
	}
	if state.exists || h.host.Aborted() {
		return nil
	}
	if h.localPath == "" {
		return fmt.Errorf("asset %s: nothing built to publish", h.id)
	}

	store, err := h.host.Store(ctx, state.dest)
	if err != nil {
		return err
	}
	if h.host.Aborted() {
		return nil
	}

	h.host.emit(ports.EventUpload, fmt.Sprintf("Upload s3://%s/%s", state.dest.BucketName, state.dest.ObjectKey))
	return store.Upload(ctx, state.dest.BucketName, state.dest.ObjectKey, h.localPath, "")
}

func (h *FileHandler) ensureInit(ctx context.Context, quiet bool) (*fileInitState, error) {
	h.initOnce.Do(func() {
		h.init, h.initErr = h.discover(ctx, quiet)
	})
	return h.init, h.initErr
}

func (h *FileHandler) discover(ctx context.Context, quiet bool) (*fileInitState, error) {
	dest := h.dest
	var err error
	if dest.BucketName, err = h.host.resolve(ctx, dest.BucketName); err != nil {
		return nil, err
	}
	if dest.Region, err = h.host.resolve(ctx, dest.Region); err != nil {
		return nil, err
	}
	if dest.AssumeRoleArn, err = h.host.resolve(ctx, dest.AssumeRoleArn); err != nil {
		return nil, err
	}

	store, err := h.host.Store(ctx, dest)
	if err != nil {
		return nil, err
	}

	if !quiet {
		h.host.emit(ports.EventCheck, fmt.Sprintf("Check s3://%s/%s", dest.BucketName, dest.ObjectKey))
	}
	exists, err := store.ObjectExists(ctx, dest.BucketName, dest.ObjectKey)
	if err != nil {
		return nil, err
	}
	if exists && !quiet {
		h.host.emit(ports.EventFound, fmt.Sprintf("Found s3://%s/%s", dest.BucketName, dest.ObjectKey))
	}
	return &fileInitState{dest: dest, exists: exists}, nil
}
