// Where: cli/cmd/casm/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"

	"github.com/stackbound/cloud-assembly/cli/internal/assets"
	"github.com/stackbound/cloud-assembly/cli/internal/awsclient"
	"github.com/stackbound/cloud-assembly/cli/internal/commands"
	"github.com/stackbound/cloud-assembly/cli/internal/config"
	"github.com/stackbound/cloud-assembly/cli/internal/engine"
	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
	"github.com/stackbound/cloud-assembly/cli/internal/shell"
)

var (
	newDockerClient = engine.NewAPIClient
	newAWSFactory   = awsclient.NewFactory
)

// buildDependencies constructs the runtime dependencies required by
// the CLI.
func buildDependencies() commands.Dependencies {
	return commands.Dependencies{
		ConfigLoader: loadGlobalConfig,
		Publish: commands.PublishDeps{
			NewHost: newHandlerHost,
		},
	}
}

// loadGlobalConfig reads ~/.casm/config.yaml, or the defaults when it
// does not exist.
func loadGlobalConfig() (config.GlobalConfig, error) {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return config.GlobalConfig{}, err
	}
	return config.LoadGlobalConfig(path)
}

// newHandlerHost wires the AWS factory, Docker engine, and subprocess
// runner into a handler host for one publishing run.
func newHandlerHost(ctx context.Context, opts commands.HostOptions) (*assets.HandlerHost, error) {
	factory, err := newAWSFactory(ctx, opts.Profile, opts.Region)
	if err != nil {
		return nil, err
	}
	api, err := newDockerClient()
	if err != nil {
		return nil, err
	}
	runner := shell.NewRunner()

	// Build handles carry no registry auth: base image pulls use the
	// daemon's own credential helpers. Push handles authenticate with a
	// short-lived token scoped to the destination registry.
	buildEngine := func(ctx context.Context, _ manifest.DockerImageDestination) (ports.ContainerEngine, error) {
		return engine.New(api, runner, ""), nil
	}
	pushEngine := func(ctx context.Context, dest manifest.DockerImageDestination) (ports.ContainerEngine, error) {
		username, password, server, err := factory.RegistryCredentials(ctx, dest)
		if err != nil {
			return nil, err
		}
		auth, err := engine.EncodeRegistryAuth(username, password, server)
		if err != nil {
			return nil, err
		}
		return engine.New(api, runner, auth), nil
	}

	return &assets.HandlerHost{
		Token:       opts.Token,
		Events:      opts.Events,
		Runner:      runner,
		Resolve:     factory.ResolvePlaceholders,
		Registry:    factory.Registry,
		BuildEngine: buildEngine,
		PushEngine:  pushEngine,
		Store:       factory.ObjectStore,
	}, nil
}
