/*
PURPOSE:
  The replay engine: reads a captured task file, collocates it the requested
  number of times and reports the largest divergence from the reference.

REQUIREMENTS:
  User-specified:
  - replay(task-file, cycles, batch, cycles-per-block) -> max diff.
  - Batching groups cycles into blocks for timing only; it must not change
    the returned value.
  - Fail loudly on unreadable or malformed task files.

  Implementation-discovered:
  - Cycles accumulate into one grid, so the comparison is against
    reference * cycles. Rounding grows linearly with cycles.
  - A block reuses the axis tables of collocate.Plan for all of its cycles.
    Single mode rebuilds them every cycle. The arithmetic per cycle is the same.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Run (through the Replayer interface)
  - Uses: internal/collocate, internal/model, internal/output

ERROR HANDLING:
  - Wraps I/O and decode errors with the task path.
  - ErrInvalidCycles for cycles < 1.

IMPLEMENTATION RULES:
  - Single-threaded. One blocking call per replay.
  - Log one summary record per replay.

USAGE:
  maxDiff, err := engine.NewTaskReplayer().Replay("task.task", 10, true, 4)

RELATED FILES:
  - internal/engine/runner.go
  - internal/collocate/collocate.go
*/

package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/daryltucker/grid-replay/internal/collocate"
	"github.com/daryltucker/grid-replay/internal/model"
	"github.com/daryltucker/grid-replay/internal/output"
)

// Replayer is the replay engine capability the harness drives.
type Replayer interface {
	// Replay runs the task at taskFile cycles times, in blocks of
	// cyclesPerBlock when batch is set, and returns the maximum absolute
	// divergence from the task's reference.
	Replay(taskFile string, cycles int, batch bool, cyclesPerBlock int) (float64, error)
}

// ReplayFunc adapts an ordinary function to the Replayer interface.
type ReplayFunc func(taskFile string, cycles int, batch bool, cyclesPerBlock int) (float64, error)

// Replay calls f.
func (f ReplayFunc) Replay(taskFile string, cycles int, batch bool, cyclesPerBlock int) (float64, error) {
	return f(taskFile, cycles, batch, cyclesPerBlock)
}

// ErrInvalidCycles is returned when a replay is asked for fewer than one cycle
// or a block size below one.
var ErrInvalidCycles = errors.New("invalid cycle count")

// TaskReplayer replays task files with the collocate package.
type TaskReplayer struct {
	// Load reads a task file. Defaults to collocate.LoadTask.
	Load func(path string) (*model.Task, error)
	// Now is the clock used for the elapsed time. Defaults to time.Now.
	Now func() time.Time
}

// NewTaskReplayer returns a TaskReplayer reading task files from disk.
func NewTaskReplayer() *TaskReplayer {
	return &TaskReplayer{
		Load: collocate.LoadTask,
		Now:  time.Now,
	}
}

// Replay implements Replayer.
func (r *TaskReplayer) Replay(taskFile string, cycles int, batch bool, cyclesPerBlock int) (float64, error) {
	stats, err := r.ReplayStats(taskFile, cycles, batch, cyclesPerBlock)
	if err != nil {
		return 0, err
	}
	return stats.MaxDiff, nil
}

// ReplayStats replays the task and returns the full statistics of the run.
func (r *TaskReplayer) ReplayStats(taskFile string, cycles int, batch bool, cyclesPerBlock int) (model.ReplayStats, error) {
	if cycles < 1 {
		return model.ReplayStats{}, fmt.Errorf("replay %s: %w: cycles = %d", taskFile, ErrInvalidCycles, cycles)
	}
	if !batch {
		cyclesPerBlock = 1
	}
	if cyclesPerBlock < 1 {
		return model.ReplayStats{}, fmt.Errorf("replay %s: %w: cycles per block = %d", taskFile, ErrInvalidCycles, cyclesPerBlock)
	}

	load := r.Load
	if load == nil {
		load = collocate.LoadTask
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	task, err := load(taskFile)
	if err != nil {
		return model.ReplayStats{}, fmt.Errorf("replay %s: %w", taskFile, err)
	}
	if err := collocate.Validate(task); err != nil {
		return model.ReplayStats{}, fmt.Errorf("replay %s: %w", taskFile, err)
	}

	grid := make([]float64, task.Grid.Size())
	blocks := 0

	start := now()
	for done := 0; done < cycles; {
		n := cyclesPerBlock
		if remaining := cycles - done; n > remaining {
			n = remaining
		}
		plan := collocate.NewPlan(task)
		for i := 0; i < n; i++ {
			plan.Accumulate(grid)
		}
		done += n
		blocks++
	}
	elapsed := now().Sub(start)

	expected := make([]float64, len(task.Reference))
	floats.ScaleTo(expected, float64(cycles), task.Reference)

	stats := model.ReplayStats{
		TaskFile:       taskFile,
		Batched:        batch,
		Cycles:         cycles,
		CyclesPerBlock: cyclesPerBlock,
		Blocks:         blocks,
		MaxValue:       floats.Norm(task.Reference, math.Inf(1)),
		MaxDiff:        floats.Distance(grid, expected, math.Inf(1)),
		Elapsed:        elapsed,
	}
	output.LogReplay(stats)

	return stats, nil
}
