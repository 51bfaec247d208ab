/*
PURPOSE:
  Entry point for the grid replay miniapp.
  Runs the CLI root command and exits with its code.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Exit codes: 0 success, 1 usage/parse error, 2 tolerance exceeded.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.
  - Diagnostics are already written by internal/cli; do not print here.

USAGE:
  go build -o grid_base_ref_miniapp.x ./cmd/grid-miniapp
  ./grid_base_ref_miniapp.x [--batch <cycles-per-block>] <cycles> <task-file>

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"os"

	"github.com/daryltucker/grid-replay/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
