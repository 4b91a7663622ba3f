// Where: cli/internal/assets/builder.go
// What: Container image builder strategy selection.
// Why: Directory builds use the engine; executable builds delegate out.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// LocalTagName returns the deterministic local tag for an asset id. The
// same id always yields the same tag, independent of call order or
// prior cache state.
func LocalTagName(assetID string) string {
	return "cdkasset-" + strings.ToLower(assetID)
}

// imageBuilder produces a local image reference for one asset source.
// An empty reference (with nil error) means the build was skipped due
// to cancellation.
type imageBuilder struct {
	engine  ports.ContainerEngine
	host    *HandlerHost
	id      string
	source  manifest.DockerImageSource
	workDir string

	// cwd overrides the working directory for executable sources.
	// Preserved for compatibility; no production call site sets it.
	cwd string
}

func newImageBuilder(engine ports.ContainerEngine, host *HandlerHost, id string, source manifest.DockerImageSource, workDir string) *imageBuilder {
	return &imageBuilder{
		engine:  engine,
		host:    host,
		id:      id,
		source:  source,
		workDir: workDir,
	}
}

// Build picks exactly one strategy based on the declared source.
// Directory takes precedence when both could apply.
func (b *imageBuilder) Build(ctx context.Context) (string, error) {
	if b.source.Directory != "" {
		return b.buildDirectory(ctx)
	}
	if len(b.source.Executable) > 0 {
		return b.buildExternal(ctx)
	}
	return "", fmt.Errorf("asset %s: source declares neither a directory nor an executable", b.id)
}

func (b *imageBuilder) buildDirectory(ctx context.Context) (string, error) {
	tag := LocalTagName(b.id)

	cached, err := b.engine.Exists(ctx, tag)
	if err != nil {
		return "", err
	}
	if cached {
		b.host.emit(ports.EventCached, fmt.Sprintf("Cached %s", tag))
		return tag, nil
	}
	if b.host.Aborted() {
		return "", nil
	}

	directory := b.source.Directory
	if !filepath.IsAbs(directory) {
		directory = filepath.Join(b.workDir, directory)
	}
	b.host.emit(ports.EventBuild, fmt.Sprintf("Building Docker image at %s", directory))

	err = b.engine.Build(ctx, ports.BuildOptions{
		Directory:     directory,
		Tag:           tag,
		BuildArgs:     b.source.DockerBuildArgs,
		BuildSecrets:  b.source.DockerBuildSecrets,
		BuildSSH:      b.source.DockerBuildSSH,
		Target:        b.source.DockerBuildTarget,
		File:          b.source.DockerFile,
		NetworkMode:   b.source.NetworkMode,
		Platform:      b.source.Platform,
		Outputs:       b.source.DockerOutputs,
		CacheFrom:     b.source.CacheFrom,
		CacheTo:       b.source.CacheTo,
		CacheDisabled: b.source.CacheDisabled,
	})
	if err != nil {
		return "", err
	}
	return tag, nil
}

// buildExternal runs the declared command vector. The command is
// trusted to perform its own deduplication and must print exactly the
// resulting local image identifier to standard output.
func (b *imageBuilder) buildExternal(ctx context.Context) (string, error) {
	argv := b.source.Executable
	b.host.emit(ports.EventBuild, fmt.Sprintf("Building Docker image using command '%s'", strings.Join(argv, " ")))
	if b.host.Aborted() {
		return "", nil
	}

	workDir := b.workDir
	if b.cwd != "" {
		workDir = b.cwd
	}
	out, err := b.host.Runner.Run(ctx, argv, ports.RunOptions{
		WorkingDirectory: workDir,
		Output:           ports.OutputIgnore,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
