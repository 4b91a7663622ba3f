// Where: cli/internal/commands/ls.go
// What: ls command implementation.
// Why: Inspect a manifest's assets without touching any registry.
package commands

import (
	"fmt"
	"io"
)

func runLs(cli CLI, deps Dependencies, out io.Writer) int {
	m, _, err := loadAssetManifest(cli.Ls.Path, false)
	if err != nil {
		return exitWithError(out, err)
	}

	for _, id := range sortedKeys(m.DockerImages) {
		asset := m.DockerImages[id]
		fmt.Fprintf(out, "%s (docker-image)\n", id)
		for _, destID := range sortedKeys(asset.Destinations) {
			dest := asset.Destinations[destID]
			fmt.Fprintf(out, "  %s: %s:%s\n", destID, dest.RepositoryName, dest.ImageTag)
		}
	}
	for _, id := range sortedKeys(m.Files) {
		asset := m.Files[id]
		fmt.Fprintf(out, "%s (file)\n", id)
		for _, destID := range sortedKeys(asset.Destinations) {
			dest := asset.Destinations[destID]
			fmt.Fprintf(out, "  %s: s3://%s/%s\n", destID, dest.BucketName, dest.ObjectKey)
		}
	}
	return 0
}
