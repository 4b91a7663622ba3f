// Where: cli/internal/commands/publish.go
// What: publish command implementation.
// Why: Drive the asset handlers over every destination in a manifest.
package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/stackbound/cloud-assembly/cli/internal/assets"
	"github.com/stackbound/cloud-assembly/cli/internal/config"
	"github.com/stackbound/cloud-assembly/cli/internal/manifest"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

func runPublish(cli CLI, deps Dependencies, out io.Writer) int {
	cfg := loadGlobalConfig(deps)

	console := newConsole(out)
	console.Verbose = cli.Verbose
	console.Quiet = cli.Quiet || cfg.Quiet

	m, workDir, err := loadAssetManifest(cli.Publish.Path, cli.Publish.SkipVersionCheck)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Interrupt requests a cooperative stop: handlers finish their
	// current step and then no-op.
	token := assets.NewToken()
	go func() {
		<-ctx.Done()
		token.Abort()
	}()

	host, err := deps.Publish.NewHost(ctx, HostOptions{
		Profile: firstNonEmpty(cli.Profile, cfg.Profile),
		Region:  firstNonEmpty(cli.Region, cfg.Region),
		Events:  console,
		Token:   token,
	})
	if err != nil {
		return exitWithError(out, err)
	}

	handlers := buildHandlers(m, workDir, host)
	for _, handler := range handlers {
		if err := handler.Build(ctx); err != nil {
			return exitWithError(out, err)
		}
		if err := handler.Publish(ctx); err != nil {
			return exitWithError(out, err)
		}
	}

	if token.Aborted() {
		console.Warn("Publishing interrupted")
		return 0
	}
	if !console.Quiet {
		console.Success("Published")
	}
	return 0
}

// loadAssetManifest loads the manifest and returns the directory that
// anchors its relative asset paths.
func loadAssetManifest(path string, skipVersionCheck bool) (*manifest.AssetManifest, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	m, err := manifest.LoadAssetManifest(abs, manifest.ValidateOptions{SkipVersionCheck: skipVersionCheck})
	if err != nil {
		return nil, "", err
	}
	return m, filepath.Dir(abs), nil
}

// buildHandlers expands the manifest into one handler per
// asset/destination pair, in deterministic order.
func buildHandlers(m *manifest.AssetManifest, workDir string, host *assets.HandlerHost) []ports.AssetHandler {
	var handlers []ports.AssetHandler
	for _, id := range sortedKeys(m.DockerImages) {
		asset := m.DockerImages[id]
		for _, destID := range sortedKeys(asset.Destinations) {
			handlers = append(handlers, assets.NewImageHandler(id, asset.Source, asset.Destinations[destID], workDir, host))
		}
	}
	for _, id := range sortedKeys(m.Files) {
		asset := m.Files[id]
		for _, destID := range sortedKeys(asset.Destinations) {
			handlers = append(handlers, assets.NewFileHandler(id, asset.Source, asset.Destinations[destID], workDir, host))
		}
	}
	return handlers
}

// loadGlobalConfig reads the global config via the injected loader,
// falling back to defaults when no file exists.
func loadGlobalConfig(deps Dependencies) config.GlobalConfig {
	if deps.ConfigLoader == nil {
		return config.DefaultGlobalConfig()
	}
	cfg, err := deps.ConfigLoader()
	if err != nil {
		return config.DefaultGlobalConfig()
	}
	return cfg
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
