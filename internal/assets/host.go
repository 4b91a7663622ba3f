// Where: cli/internal/assets/host.go
// What: Collaborator bundle handed to asset handlers.
// Why: Handlers stay free of SDK wiring; the host supplies factories.
package assets

import (
	"context"

	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// HandlerHost bundles the collaborators an asset handler needs. One
// host is shared by every handler of a publishing run; the cancellation
// token is the only shared mutable state.
type HandlerHost struct {
	Token  *Token
	Events ports.EventSink
	Runner ports.Runner

	// Resolve substitutes account/region placeholder tokens in
	// destination fields.
	Resolve func(ctx context.Context, value string) (string, error)

	// Registry returns a registry client scoped to the destination.
	Registry func(ctx context.Context, dest manifest.DockerImageDestination) (ports.Registry, error)

	// BuildEngine and PushEngine return engine handles scoped to the
	// push target (carrying its registry credentials).
	BuildEngine func(ctx context.Context, dest manifest.DockerImageDestination) (ports.ContainerEngine, error)
	PushEngine  func(ctx context.Context, dest manifest.DockerImageDestination) (ports.ContainerEngine, error)

	// Store returns an object store scoped to the file destination.
	Store func(ctx context.Context, dest manifest.FileDestination) (ports.ObjectStore, error)
}

// Aborted reports whether the run's cancellation token is set.
func (h *HandlerHost) Aborted() bool {
	return h.Token.Aborted()
}

func (h *HandlerHost) emit(event ports.EventType, message string) {
	if h.Events != nil {
		h.Events.Emit(event, message)
	}
}

func (h *HandlerHost) resolve(ctx context.Context, value string) (string, error) {
	if h.Resolve == nil || value == "" {
		return value, nil
	}
	return h.Resolve(ctx, value)
}
