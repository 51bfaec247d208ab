/*
PURPOSE:
  Defines the core data structures used throughout grid-replay.
  These models describe a captured collocation task and the statistics
  of one replay run.

REQUIREMENTS:
  User-specified:
  - A task carries its grid, its Gaussian primitives and the reference grid.
  - A replay records cycles, block size, max value, max diff and elapsed time.

  Implementation-discovered:
  - Task files come as YAML or TOML, so fields carry both tags.
  - Vectors are slices (length checked by collocate.Validate) so both
    decoders accept them without fixed-array quirks.

ARCHITECTURE INTEGRATION:
  - Used by: internal/collocate, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Reference grid is flat, x index fastest.

USAGE:
  task := model.Task{Grid: model.Grid{...}, Primitives: ...}

RELATED FILES:
  - internal/collocate/load.go

MAINTENANCE:
  - Update Validate() in internal/collocate when adding task fields.
*/

package model

import (
	"time"
)

// Grid describes a regular real-space grid.
type Grid struct {
	// Npts is the number of points along x, y and z.
	Npts []int `yaml:"npts" toml:"npts"`
	// Spacing is the distance between neighbouring points along x, y and z.
	Spacing []float64 `yaml:"dh" toml:"dh"`
	// Origin is the position of point (0, 0, 0).
	Origin []float64 `yaml:"origin,omitempty" toml:"origin,omitempty"`
}

// Size returns the total number of grid points.
func (g Grid) Size() int {
	if len(g.Npts) != 3 {
		return 0
	}
	return g.Npts[0] * g.Npts[1] * g.Npts[2]
}

// Primitive is a Cartesian Gaussian collocated onto the grid.
type Primitive struct {
	Zeta        float64   `yaml:"zeta" toml:"zeta"`
	Center      []float64 `yaml:"center" toml:"center"`
	Coefficient float64   `yaml:"coefficient" toml:"coefficient"`
	// Powers are the Cartesian exponents lx, ly, lz. Empty means s-type.
	Powers []int `yaml:"powers,omitempty" toml:"powers,omitempty"`
	// Radius bounds the cube around Center that receives contributions.
	// Zero disables the cutoff.
	Radius float64 `yaml:"radius,omitempty" toml:"radius,omitempty"`
}

// Task is one captured collocation input together with its reference output.
type Task struct {
	Name       string      `yaml:"name,omitempty" toml:"name,omitempty"`
	Grid       Grid        `yaml:"grid" toml:"grid"`
	Primitives []Primitive `yaml:"primitives" toml:"primitives"`
	Reference  []float64   `yaml:"reference" toml:"reference"`
}

// ReplayStats represents the outcome of a single replay of a task file.
type ReplayStats struct {
	TaskFile       string        `json:"task_file"`
	Batched        bool          `json:"batched"`
	Cycles         int           `json:"cycles"`
	CyclesPerBlock int           `json:"cycles_per_block"`
	Blocks         int           `json:"blocks"`
	MaxValue       float64       `json:"max_value"` // max |reference|
	MaxDiff        float64       `json:"max_diff"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Mode names the collocation mode the way the summary line prints it.
func (s ReplayStats) Mode() string {
	if s.Batched {
		return "batched"
	}
	return "single"
}
