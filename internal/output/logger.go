/*
PURPOSE:
  Provides a structured logger for grid-replay.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - One summary line per replayed task (task, mode, cycles, max value,
    max diff, time). Diagnostics stay on stderr, handled by internal/cli.

  Implementation-discovered:
  - Orchestration details are Debug records and hidden by default.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")
  output.LogReplay(stats)

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"log/slog"
	"os"

	"github.com/daryltucker/grid-replay/internal/model"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// LogReplay writes the summary record of one replay.
func LogReplay(s model.ReplayStats) {
	Logger.Info("Replay complete",
		"task", s.TaskFile,
		"collocate", s.Mode(),
		"cycles", s.Cycles,
		"cycles_per_block", s.CyclesPerBlock,
		"blocks", s.Blocks,
		"max_value", s.MaxValue,
		"max_diff", s.MaxDiff,
		"time", s.Elapsed,
	)
}
