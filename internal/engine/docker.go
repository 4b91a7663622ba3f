// Where: cli/internal/engine/docker.go
// What: Docker adapter for the container engine contract.
// Why: SDK calls for exists/tag/push, CLI shell-out for builds.
package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// APIClient defines the subset of Docker SDK methods used by this
// package. This interface enables mocking the Docker client in tests.
type APIClient interface {
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageTag(ctx context.Context, source, target string) error
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
}

// NewAPIClient constructs a Docker SDK client using environment
// defaults.
func NewAPIClient() (APIClient, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// Docker implements the container engine contract. Builds run through
// the docker CLI via the subprocess runner so BuildKit-only options
// (secrets, ssh, outputs, cache export) are honored; image queries,
// tagging, and pushes use the SDK. The registry auth string scopes the
// engine to one push target.
type Docker struct {
	api    APIClient
	runner ports.Runner
	auth   string
}

// New creates an engine handle. registryAuth is the encoded
// X-Registry-Auth payload for the push target; it may be empty for
// build-only handles against public bases.
func New(api APIClient, runner ports.Runner, registryAuth string) *Docker {
	return &Docker{api: api, runner: runner, auth: registryAuth}
}

// Exists reports whether an image with the exact reference is present
// in the local image store.
func (d *Docker) Exists(ctx context.Context, tag string) (bool, error) {
	refFilter := filters.NewArgs()
	refFilter.Add("reference", tag)
	images, err := d.api.ImageList(ctx, image.ListOptions{Filters: refFilter})
	if err != nil {
		return false, fmt.Errorf("list images: %w", err)
	}
	return len(images) > 0, nil
}

// Tag applies targetTag to the image referenced by sourceTag.
func (d *Docker) Tag(ctx context.Context, sourceTag, targetTag string) error {
	return d.api.ImageTag(ctx, sourceTag, targetTag)
}

// Push uploads the referenced image to its registry.
func (d *Docker) Push(ctx context.Context, tag string) error {
	body, err := d.api.ImagePush(ctx, tag, image.PushOptions{RegistryAuth: d.auth})
	if err != nil {
		return fmt.Errorf("push %s: %w", tag, err)
	}
	defer body.Close()
	// The push stream reports errors inline; surface them.
	if err := jsonmessage.DisplayJSONMessagesStream(body, io.Discard, 0, false, nil); err != nil {
		return fmt.Errorf("push %s: %w", tag, err)
	}
	return nil
}

// Build runs `docker build` with the declared parameters. Flag order is
// deterministic so invocations are reproducible.
func (d *Docker) Build(ctx context.Context, options ports.BuildOptions) error {
	argv := []string{"docker", "build", "--tag", options.Tag}
	for _, key := range sortedKeys(options.BuildArgs) {
		argv = append(argv, "--build-arg", fmt.Sprintf("%s=%s", key, options.BuildArgs[key]))
	}
	for _, key := range sortedKeys(options.BuildSecrets) {
		argv = append(argv, "--secret", fmt.Sprintf("id=%s,%s", key, options.BuildSecrets[key]))
	}
	if options.BuildSSH != "" {
		argv = append(argv, "--ssh", options.BuildSSH)
	}
	if options.Target != "" {
		argv = append(argv, "--target", options.Target)
	}
	if options.File != "" {
		argv = append(argv, "--file", options.File)
	}
	if options.NetworkMode != "" {
		argv = append(argv, "--network", options.NetworkMode)
	}
	if options.Platform != "" {
		argv = append(argv, "--platform", options.Platform)
	}
	for _, output := range options.Outputs {
		argv = append(argv, "--output", output)
	}
	for _, cache := range options.CacheFrom {
		argv = append(argv, "--cache-from", renderCacheOption(cache))
	}
	if options.CacheTo != nil {
		argv = append(argv, "--cache-to", renderCacheOption(*options.CacheTo))
	}
	if options.CacheDisabled {
		argv = append(argv, "--no-cache")
	}
	argv = append(argv, ".")

	_, err := d.runner.Run(ctx, argv, ports.RunOptions{
		WorkingDirectory: options.Directory,
		Output:           ports.OutputInherit,
	})
	return err
}

// renderCacheOption renders a cache option in buildx key=value form,
// e.g. "type=registry,ref=abc".
func renderCacheOption(cache manifest.DockerCacheOption) string {
	parts := []string{fmt.Sprintf("type=%s", cache.Type)}
	for _, key := range sortedKeys(cache.Params) {
		parts = append(parts, fmt.Sprintf("%s=%s", key, cache.Params[key]))
	}
	return strings.Join(parts, ",")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
