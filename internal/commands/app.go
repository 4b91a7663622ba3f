// Where: cli/internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/stackbound/cloud-assembly/cli/internal/assets"
	"github.com/stackbound/cloud-assembly/cli/internal/config"
	"github.com/stackbound/cloud-assembly/cli/internal/ports"
)

// Dependencies holds all injected dependencies required for CLI
// command execution. This structure enables dependency injection for
// testing and allows swapping implementations of various subsystems.
type Dependencies struct {
	Out          io.Writer
	ConfigLoader func() (config.GlobalConfig, error)
	Publish      PublishDeps
}

// PublishDeps holds the publish command's collaborator factory.
type PublishDeps struct {
	NewHost func(ctx context.Context, opts HostOptions) (*assets.HandlerHost, error)
}

// HostOptions parameterizes handler host construction.
type HostOptions struct {
	Profile string
	Region  string
	Events  ports.EventSink
	Token   *assets.Token
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Quiet   bool   `short:"q" help:"Suppress progress output"`
	Verbose bool   `short:"v" help:"Emit debug events"`
	Profile string `help:"AWS profile (default: config file)"`
	Region  string `help:"AWS region override"`

	Publish PublishCmd `cmd:"" help:"Build and publish all assets in a manifest"`
	Ls      LsCmd      `cmd:"" help:"List assets in a manifest"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// PublishCmd publishes every asset in an asset manifest.
type PublishCmd struct {
	Path             string `arg:"" help:"Path to the asset manifest"`
	SkipVersionCheck bool   `name:"skip-version-check" help:"Bypass the schema version gate"`
}

// LsCmd lists the assets declared in an asset manifest.
type LsCmd struct {
	Path string `arg:"" help:"Path to the asset manifest"`
}

type VersionCmd struct{}

// Run parses args and dispatches to the matching command. Returns the
// process exit code.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	switch ctx.Command() {
	case "publish <path>":
		return runPublish(cli, deps, out)
	case "ls <path>":
		return runLs(cli, deps, out)
	case "version":
		return runVersion(out)
	}
	return exitWithError(out, errUnknownCommand)
}

// runNoArgs handles invocation without arguments.
func runNoArgs(out io.Writer) int {
	console := newConsole(out)
	console.Info("Usage:")
	console.Info("  casm publish <asset-manifest.json> [flags]")
	console.Info("  casm ls <asset-manifest.json>")
	console.Info("")
	console.Info("Try: casm publish --help")
	return 0
}
