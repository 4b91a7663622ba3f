// Where: cli/internal/ports/store.go
// What: Object store collaborator contract.
// Why: File assets upload to a bucket; keep the S3 SDK out of handlers.
package ports

import "context"

// ObjectStore abstracts the remote object store used for file assets.
type ObjectStore interface {
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	Upload(ctx context.Context, bucket, key, localPath, contentType string) error
}
