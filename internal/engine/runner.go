/*
PURPOSE:
  High-level runner that orchestrates one replay and judges its result.
  Calls the replay engine once and compares the divergence to the
  cycle-scaled tolerance.

REQUIREMENTS:
  User-specified:
  - Exactly one engine call per run. Repetition is the engine's job.
  - Tolerance is 1e-12 * cycles, using the requested cycles in batch mode too.
  - Too large a divergence is a failure distinct from bad invocations.

  Implementation-discovered:
  - A NaN divergence compares false against anything; it is treated as exceeded.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/config, Replayer

ERROR HANDLING:
  - Engine errors are returned as they are. No retries.
  - *ToleranceExceededError when the verdict fails.

USAGE:
  outcome, err := engine.Run(cfg, engine.NewTaskReplayer())

RELATED FILES:
  - internal/engine/replayer.go
*/

package engine

import (
	"fmt"

	"github.com/daryltucker/grid-replay/internal/config"
	"github.com/daryltucker/grid-replay/internal/output"
)

// ToleranceScale is the admissible divergence per replayed cycle.
const ToleranceScale = 1e-12

// Tolerance returns the admissible divergence for the given cycle count.
func Tolerance(cycles int) float64 {
	return ToleranceScale * float64(cycles)
}

// Exceeds reports whether maxDiff fails the tolerance.
func Exceeds(maxDiff, tolerance float64) bool {
	return !(maxDiff <= tolerance)
}

// Outcome is the judged result of a replay.
type Outcome struct {
	MaxDiff   float64
	Tolerance float64
}

// ToleranceExceededError reports a divergence above the tolerance.
type ToleranceExceededError struct {
	MaxDiff   float64
	Tolerance float64
	Cycles    int
}

func (e *ToleranceExceededError) Error() string {
	return "Maximal difference is too large"
}

// Detail describes the failed comparison for logs.
func (e *ToleranceExceededError) Detail() string {
	return fmt.Sprintf("max diff %g exceeds tolerance %g (%d cycles)", e.MaxDiff, e.Tolerance, e.Cycles)
}

// Run replays cfg.TaskFile through r and applies the tolerance check.
func Run(cfg config.Config, r Replayer) (Outcome, error) {
	output.Logger.Debug("Replaying task",
		"task", cfg.TaskFile,
		"cycles", cfg.Cycles,
		"batch", cfg.Batch,
		"cycles_per_block", cfg.CyclesPerBlock,
	)

	maxDiff, err := r.Replay(cfg.TaskFile, cfg.Cycles, cfg.Batch, cfg.CyclesPerBlock)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		MaxDiff:   maxDiff,
		Tolerance: Tolerance(cfg.Cycles),
	}

	if Exceeds(outcome.MaxDiff, outcome.Tolerance) {
		exceeded := &ToleranceExceededError{
			MaxDiff:   outcome.MaxDiff,
			Tolerance: outcome.Tolerance,
			Cycles:    cfg.Cycles,
		}
		output.Logger.Debug("Tolerance exceeded", "detail", exceeded.Detail())
		return outcome, exceeded
	}

	output.Logger.Debug("Within tolerance", "max_diff", outcome.MaxDiff, "tolerance", outcome.Tolerance)
	return outcome, nil
}
