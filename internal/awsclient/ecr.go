// Where: cli/internal/awsclient/ecr.go
// What: ECR adapter for the registry contract.
// Why: Map SDK error kinds to the boolean existence semantics.
package awsclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

type ecrRegistry struct {
	ecr *ecr.Client
	sts *sts.Client
}

// DescribeImages returns nil when every requested image exists. The
// SDK's image-not-found failure is wrapped with ports.ErrImageNotFound
// so callers can map it to a boolean; every other failure propagates.
func (r *ecrRegistry) DescribeImages(ctx context.Context, repositoryName string, ids []ports.ImageIdentifier) error {
	input := &ecr.DescribeImagesInput{RepositoryName: aws.String(repositoryName)}
	for _, id := range ids {
		input.ImageIds = append(input.ImageIds, ecrtypes.ImageIdentifier{ImageTag: aws.String(id.ImageTag)})
	}
	_, err := r.ecr.DescribeImages(ctx, input)
	if err != nil {
		var notFound *ecrtypes.ImageNotFoundException
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %s", ports.ErrImageNotFound, repositoryName)
		}
		return err
	}
	return nil
}

// DescribeRepositories looks up repositories by name. The repository
// not-found failure maps to zero matches, not an error.
func (r *ecrRegistry) DescribeRepositories(ctx context.Context, repositoryNames []string) ([]ports.Repository, error) {
	out, err := r.ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: repositoryNames,
	})
	if err != nil {
		var notFound *ecrtypes.RepositoryNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	repos := make([]ports.Repository, 0, len(out.Repositories))
	for _, repo := range out.Repositories {
		repos = append(repos, ports.Repository{
			RepositoryName: aws.ToString(repo.RepositoryName),
			RepositoryURI:  aws.ToString(repo.RepositoryUri),
		})
	}
	return repos, nil
}

// AccountID discovers the caller's account for diagnostics.
func (r *ecrRegistry) AccountID(ctx context.Context) (string, error) {
	out, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Account), nil
}
