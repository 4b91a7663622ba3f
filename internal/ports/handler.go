// Where: cli/internal/ports/handler.go
// What: Asset handler contract.
// Why: Uniform driver surface over image and file publishers.
package ports

import "context"

// AssetHandler publishes one asset to one destination. IsPublished is
// advisory and never fails; Build and Publish are idempotent against an
// already-published destination and treat cancellation as silent
// success.
type AssetHandler interface {
	IsPublished(ctx context.Context) bool
	Build(ctx context.Context) error
	Publish(ctx context.Context) error
}
