/*
PURPOSE:
  Reads captured task files and checks that they describe a valid collocation.

REQUIREMENTS:
  User-specified:
  - Unreadable or malformed task files must fail loudly.

  Implementation-discovered:
  - Task files are YAML (.task, .yaml, .yml) or TOML (.toml).
  - Unknown keys are errors in both formats.
  - The grid point count can overflow int; it is checked factor by factor.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (TaskReplayer)
  - Dependencies: gopkg.in/yaml.v3, github.com/BurntSushi/toml

ERROR HANDLING:
  - I/O errors are wrapped with the path.
  - Everything else wraps ErrMalformedTask.

USAGE:
  task, err := collocate.LoadTask("collocate_ortho_density_l0000.task")

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Validate() when adding task fields.
*/

package collocate

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/grid-replay/internal/model"
)

// ErrMalformedTask is returned for task files that decode but do not
// describe a valid collocation.
var ErrMalformedTask = errors.New("malformed task")

// Format selects the task file decoder.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFor picks the decoder from the file extension. Anything that is not
// .toml is read as YAML, which includes the conventional .task suffix.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadTask reads, decodes and validates the task file at path.
func LoadTask(path string) (*model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	task, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}
	return task, nil
}

// Decode parses a task in the given format and validates it.
// Unknown keys are rejected in both formats.
func Decode(data []byte, format Format) (*model.Task, error) {
	task := &model.Task{}

	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), task)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrMalformedTask, undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(task); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
	}

	if err := Validate(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the structural invariants the collocation relies on.
func Validate(task *model.Task) error {
	g := task.Grid
	if len(g.Npts) != 3 {
		return fmt.Errorf("%w: grid.npts needs 3 entries, got %d", ErrMalformedTask, len(g.Npts))
	}
	if len(g.Spacing) != 3 {
		return fmt.Errorf("%w: grid.dh needs 3 entries, got %d", ErrMalformedTask, len(g.Spacing))
	}
	if len(g.Origin) != 0 && len(g.Origin) != 3 {
		return fmt.Errorf("%w: grid.origin needs 3 entries, got %d", ErrMalformedTask, len(g.Origin))
	}
	for axis := 0; axis < 3; axis++ {
		if g.Npts[axis] < 1 {
			return fmt.Errorf("%w: grid.npts[%d] = %d", ErrMalformedTask, axis, g.Npts[axis])
		}
		if !(g.Spacing[axis] > 0) || math.IsInf(g.Spacing[axis], 0) {
			return fmt.Errorf("%w: grid.dh[%d] = %g", ErrMalformedTask, axis, g.Spacing[axis])
		}
	}

	points := 1
	for axis, n := range g.Npts {
		if n > math.MaxInt/points {
			return fmt.Errorf("%w: grid.npts[%d] = %d overflows the point count", ErrMalformedTask, axis, n)
		}
		points *= n
	}

	if len(task.Primitives) == 0 {
		return fmt.Errorf("%w: no primitives", ErrMalformedTask)
	}
	for i, p := range task.Primitives {
		if !(p.Zeta > 0) || math.IsInf(p.Zeta, 0) {
			return fmt.Errorf("%w: primitives[%d].zeta = %g", ErrMalformedTask, i, p.Zeta)
		}
		if len(p.Center) != 3 {
			return fmt.Errorf("%w: primitives[%d].center needs 3 entries, got %d", ErrMalformedTask, i, len(p.Center))
		}
		if len(p.Powers) != 0 && len(p.Powers) != 3 {
			return fmt.Errorf("%w: primitives[%d].powers needs 3 entries, got %d", ErrMalformedTask, i, len(p.Powers))
		}
		for _, l := range p.Powers {
			if l < 0 {
				return fmt.Errorf("%w: primitives[%d].powers has negative exponent %d", ErrMalformedTask, i, l)
			}
		}
		if p.Radius < 0 {
			return fmt.Errorf("%w: primitives[%d].radius = %g", ErrMalformedTask, i, p.Radius)
		}
	}

	if len(task.Reference) != points {
		return fmt.Errorf("%w: reference has %d values, grid has %d points", ErrMalformedTask, len(task.Reference), points)
	}
	return nil
}
