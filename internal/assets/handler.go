// Where: cli/internal/assets/handler.go
// What: Container image asset handler state machine.
// Why: Idempotent existence-check, build-or-reuse, tag, push pipeline.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// ImageHandler publishes one container image asset to one destination.
// A handler instance is bound to exactly one logical destination for
// its entire lifetime; the resolved init state is computed at most once
// and shared by IsPublished, Build, and Publish.
type ImageHandler struct {
	id      string
	source  manifest.DockerImageSource
	dest    manifest.DockerImageDestination
	workDir string
	host    *HandlerHost

	initOnce sync.Once
	init     *initState
	initErr  error
}

// initState holds the resolved registry facts for the destination.
type initState struct {
	dest     manifest.DockerImageDestination
	repoURI  string
	imageURI string
	exists   bool
}

// NewImageHandler builds a handler for the given asset id, source, and
// destination. workDir anchors relative source paths.
func NewImageHandler(id string, source manifest.DockerImageSource, dest manifest.DockerImageDestination, workDir string, host *HandlerHost) *ImageHandler {
	return &ImageHandler{
		id:      id,
		source:  source,
		dest:    dest,
		workDir: workDir,
		host:    host,
	}
}

// IsPublished reports whether the destination image already exists.
// Resolution runs in quiet mode and any failure is downgraded to a
// debug event with a conservative false result; this operation is
// advisory and must never abort a broader publishing run.
func (h *ImageHandler) IsPublished(ctx context.Context) bool {
	state, err := h.ensureInit(ctx, true)
	if err != nil {
		h.host.emit(ports.EventDebug, fmt.Sprintf("failed to check %s: %v", h.id, err))
		return false
	}
	return state.exists
}

// Build produces and tags the local image for this destination. It is a
// no-op when the destination already exists or cancellation has been
// requested. The abort flag is re-checked after the build because the
// build itself may take unbounded time.
func (h *ImageHandler) Build(ctx context.Context) error {
	state, err := h.ensureInit(ctx, false)
	if err != nil {
		return err
	}
	if state.exists || h.host.Aborted() {
		return nil
	}

	engine, err := h.host.BuildEngine(ctx, state.dest)
	if err != nil {
		return err
	}

	builder := newImageBuilder(engine, h.host, h.id, h.source, h.workDir)
	localRef, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if localRef == "" || h.host.Aborted() {
		return nil
	}
	return engine.Tag(ctx, localRef, state.imageURI)
}

// Publish pushes the previously tagged image to the destination. It is
// a no-op when the destination already exists or cancellation has been
// requested, with the flag re-checked after obtaining the engine
// handle.
func (h *ImageHandler) Publish(ctx context.Context) error {
	state, err := h.ensureInit(ctx, false)
	if err != nil {
		return err
	}
	if state.exists || h.host.Aborted() {
		return nil
	}

	engine, err := h.host.PushEngine(ctx, state.dest)
	if err != nil {
		return err
	}
	if h.host.Aborted() {
		return nil
	}

	h.host.emit(ports.EventUpload, fmt.Sprintf("Push %s", state.imageURI))
	return engine.Push(ctx, state.imageURI)
}

// ensureInit computes the handler's init state at most once. The first
// caller's quiet flag decides whether progress events are emitted
// during resolution.
func (h *ImageHandler) ensureInit(ctx context.Context, quiet bool) (*initState, error) {
	h.initOnce.Do(func() {
		h.init, h.initErr = h.discover(ctx, quiet)
	})
	return h.init, h.initErr
}

func (h *ImageHandler) discover(ctx context.Context, quiet bool) (*initState, error) {
	dest, err := h.resolveDestination(ctx)
	if err != nil {
		return nil, err
	}

	registry, err := h.host.Registry(ctx, dest)
	if err != nil {
		return nil, err
	}

	repos, err := registry.DescribeRepositories(ctx, []string{dest.RepositoryName})
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		account := "unknown"
		if id, err := registry.AccountID(ctx); err == nil && id != "" {
			account = id
		}
		return nil, fmt.Errorf("no repository named %s in account %s. Is this account bootstrapped?", dest.RepositoryName, account)
	}

	state := &initState{
		dest:     dest,
		repoURI:  repos[0].RepositoryURI,
		imageURI: fmt.Sprintf("%s:%s", repos[0].RepositoryURI, dest.ImageTag),
	}

	if !quiet {
		h.host.emit(ports.EventCheck, fmt.Sprintf("Check %s", state.imageURI))
	}

	err = registry.DescribeImages(ctx, dest.RepositoryName, []ports.ImageIdentifier{{ImageTag: dest.ImageTag}})
	switch {
	case err == nil:
		state.exists = true
	case errors.Is(err, ports.ErrImageNotFound):
		state.exists = false
	default:
		return nil, err
	}

	if state.exists && !quiet {
		h.host.emit(ports.EventFound, fmt.Sprintf("Found %s", state.imageURI))
	}
	return state, nil
}

// resolveDestination substitutes account/region placeholder tokens in
// the destination fields.
func (h *ImageHandler) resolveDestination(ctx context.Context) (manifest.DockerImageDestination, error) {
	dest := h.dest
	var err error
	if dest.RepositoryName, err = h.host.resolve(ctx, dest.RepositoryName); err != nil {
		return dest, err
	}
	if dest.Region, err = h.host.resolve(ctx, dest.Region); err != nil {
		return dest, err
	}
	if dest.AssumeRoleArn, err = h.host.resolve(ctx, dest.AssumeRoleArn); err != nil {
		return dest, err
	}
	return dest, nil
}
