// Where: cli/internal/ports/registry.go
// What: Container registry collaborator contract.
// Why: Keep the publishing state machine independent of the ECR SDK.
package ports

import (
	"context"
	"errors"
)

// ErrImageNotFound is wrapped by Registry implementations when an image
// existence lookup fails because the image does not exist. Callers map
// it to a boolean rather than treating it as an error.
var ErrImageNotFound = errors.New("image not found")

// ImageIdentifier selects an image within a repository.
type ImageIdentifier struct {
	ImageTag string
}

// Repository is a registry repository lookup result.
type Repository struct {
	RepositoryName string
	RepositoryURI  string
}

// Registry is the read-side registry contract. DescribeImages returns
// nil when the image exists and an error wrapping ErrImageNotFound when
// it does not; any other failure propagates. DescribeRepositories
// returns zero matches (not an error) when the repository is unknown.
type Registry interface {
	DescribeImages(ctx context.Context, repositoryName string, ids []ImageIdentifier) error
	DescribeRepositories(ctx context.Context, repositoryNames []string) ([]Repository, error)
	AccountID(ctx context.Context) (string, error)
}
