// Where: cli/cmd/casm/main.go
// What: CLI entrypoint.
// Why: Execute casm commands with configured dependencies.
package main

import (
	"os"

	"github.com/stackbound/cloud-assembly/cli/internal/commands"
)

func main() {
	deps := buildDependencies()
	deps.Out = os.Stdout

	os.Exit(commands.Run(os.Args[1:], deps))
}
