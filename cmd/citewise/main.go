// Command citewise answers questions about local documents, with
// citations back to the source files.
package main

import (
	"os"

	"github.com/citewise-labs/citewise-cli/internal/adapters/driving/cli"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
