// Where: cli/cmd/casm/cli_test.go
// What: Tests for CLI dependency wiring.
// Why: Ensure buildDependencies produces a usable handler host.
package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/docker/docker/api/types/image"

	"github.com/stackbound/cloud-assembly/cli/internal/awsclient"
	"github.com/stackbound/cloud-assembly/cli/internal/commands"
	"github.com/stackbound/cloud-assembly/cli/internal/engine"
)

type fakeDockerClient struct{}

func (fakeDockerClient) ImageList(_ context.Context, _ image.ListOptions) ([]image.Summary, error) {
	return nil, nil
}

func (fakeDockerClient) ImageTag(_ context.Context, _, _ string) error {
	return nil
}

func (fakeDockerClient) ImagePush(_ context.Context, _ string, _ image.PushOptions) (io.ReadCloser, error) {
	return nil, nil
}

func TestBuildDependenciesWiresHost(t *testing.T) {
	origDocker := newDockerClient
	origFactory := newAWSFactory
	t.Cleanup(func() {
		newDockerClient = origDocker
		newAWSFactory = origFactory
	})

	newDockerClient = func() (engine.APIClient, error) {
		return fakeDockerClient{}, nil
	}
	newAWSFactory = func(_ context.Context, _, _ string) (*awsclient.Factory, error) {
		return &awsclient.Factory{}, nil
	}

	deps := buildDependencies()
	if deps.Publish.NewHost == nil {
		t.Fatalf("expected host factory")
	}
	if deps.ConfigLoader == nil {
		t.Fatalf("expected config loader")
	}

	host, err := deps.Publish.NewHost(context.Background(), commands.HostOptions{})
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	if host.Runner == nil || host.Registry == nil || host.BuildEngine == nil || host.PushEngine == nil || host.Store == nil {
		t.Fatalf("host is missing collaborators: %+v", host)
	}
}

func TestBuildDependenciesFactoryError(t *testing.T) {
	origDocker := newDockerClient
	origFactory := newAWSFactory
	t.Cleanup(func() {
		newDockerClient = origDocker
		newAWSFactory = origFactory
	})

	newDockerClient = func() (engine.APIClient, error) {
		return fakeDockerClient{}, nil
	}
	newAWSFactory = func(_ context.Context, _, _ string) (*awsclient.Factory, error) {
		return nil, errors.New("no credentials")
	}

	deps := buildDependencies()
	if _, err := deps.Publish.NewHost(context.Background(), commands.HostOptions{}); err == nil {
		t.Fatalf("expected factory error to propagate")
	}
}

func TestBuildDependenciesDockerError(t *testing.T) {
	origDocker := newDockerClient
	origFactory := newAWSFactory
	t.Cleanup(func() {
		newDockerClient = origDocker
		newAWSFactory = origFactory
	})

	newDockerClient = func() (engine.APIClient, error) {
		return nil, errors.New("daemon unreachable")
	}
	newAWSFactory = func(_ context.Context, _, _ string) (*awsclient.Factory, error) {
		return &awsclient.Factory{}, nil
	}

	deps := buildDependencies()
	if _, err := deps.Publish.NewHost(context.Background(), commands.HostOptions{}); err == nil {
		t.Fatalf("expected docker client error to propagate")
	}
}
