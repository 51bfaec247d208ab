/*
PURPOSE:
  Maps run errors to exit codes and writes the miniapp's diagnostics.

REQUIREMENTS:
  User-specified:
  - 0 success, 1 usage/parse error, 2 tolerance exceeded.
  - Diagnostics match the original wording byte for byte.

  Implementation-discovered:
  - Replay engine failures get their own code (3).

ERROR HANDLING:
  - Typed errors are matched with errors.As; anything unknown is an engine failure.

RELATED FILES:
  - internal/cli/testdata/*.golden
*/

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/daryltucker/grid-replay/internal/config"
	"github.com/daryltucker/grid-replay/internal/engine"
)

// Exit codes for the miniapp.
const (
	ExitSuccess           = 0 // Maximal difference within tolerance
	ExitUsage             = 1 // Wrong argument count or unparsable number
	ExitToleranceExceeded = 2 // Maximal difference is too large
	ExitReplayFailed      = 3 // Replay engine error (unreadable or malformed task, bad cycles)
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *config.UsageError
	var parseErr *config.ParseError
	var exceeded *engine.ToleranceExceededError
	switch {
	case errors.As(err, &usageErr), errors.As(err, &parseErr):
		return ExitUsage
	case errors.As(err, &exceeded):
		return ExitToleranceExceeded
	default:
		return ExitReplayFailed
	}
}

// report writes the diagnostic for err.
func report(w io.Writer, err error) {
	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, config.Usage)
		return
	}
	fmt.Fprintf(w, "Error: %v.\n", err)
}
