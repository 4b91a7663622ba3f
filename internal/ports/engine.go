// Where: cli/internal/ports/engine.go
// What: Container build engine collaborator contract.
// Why: Decouple asset building from the Docker SDK and CLI.
package ports

import (
	"context"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
)

// BuildOptions carries the full set of declared build parameters for a
// directory-sourced image asset.
type BuildOptions struct {
	Directory     string
	Tag           string
	BuildArgs     map[string]string
	BuildSecrets  map[string]string
	BuildSSH      string
	Target        string
	File          string
	NetworkMode   string
	Platform      string
	Outputs       []string
	CacheFrom     []manifest.DockerCacheOption
	CacheTo       *manifest.DockerCacheOption
	CacheDisabled bool
}

// ContainerEngine abstracts the local container engine used to build,
// tag, and push images.
type ContainerEngine interface {
	Build(ctx context.Context, options BuildOptions) error
	Exists(ctx context.Context, tag string) (bool, error)
	Tag(ctx context.Context, sourceTag, targetTag string) error
	Push(ctx context.Context, tag string) error
}
