/*
PURPOSE:
  Evaluates Cartesian Gaussian primitives on a regular grid.

REQUIREMENTS:
  User-specified:
  - Collocate every primitive of a task and accumulate into one grid.

  Implementation-discovered:
  - Every primitive factorises along the three axes, so a Plan stores one
    1-D table per primitive and axis and accumulates the outer product
    row by row.
  - Building the tables is the part batch replays amortise over a block.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (TaskReplayer)
  - Uses: internal/model, gonum floats

ERROR HANDLING:
  - None. Tasks must pass Validate first.

IMPLEMENTATION RULES:
  - Grid layout is x fastest.
  - Same tables, same arithmetic: batch and single replays must agree bit for bit.

USAGE:
  plan := collocate.NewPlan(task)
  plan.Accumulate(grid)

RELATED FILES:
  - internal/collocate/load.go
*/

package collocate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/daryltucker/grid-replay/internal/model"
)

// Plan holds the precomputed axis tables for one task.
type Plan struct {
	npts   [3]int
	tables []primitiveTables
}

type primitiveTables struct {
	coef float64
	axis [3][]float64
}

// NewPlan builds the axis tables for a validated task.
func NewPlan(task *model.Task) *Plan {
	p := &Plan{tables: make([]primitiveTables, len(task.Primitives))}
	copy(p.npts[:], task.Grid.Npts)

	var origin [3]float64
	copy(origin[:], task.Grid.Origin)

	for i, prim := range task.Primitives {
		t := primitiveTables{coef: prim.Coefficient}
		for a := 0; a < 3; a++ {
			power := 0
			if len(prim.Powers) == 3 {
				power = prim.Powers[a]
			}
			t.axis[a] = axisTable(p.npts[a], origin[a], task.Grid.Spacing[a], prim.Center[a], prim.Zeta, power, prim.Radius)
		}
		p.tables[i] = t
	}
	return p
}

// axisTable returns (x-c)^l * exp(-zeta (x-c)^2) for every point on one axis,
// zero outside the cutoff radius.
func axisTable(n int, origin, spacing, center, zeta float64, power int, radius float64) []float64 {
	table := make([]float64, n)
	for i := range table {
		d := origin + float64(i)*spacing - center
		if radius > 0 && math.Abs(d) > radius {
			continue
		}
		table[i] = math.Pow(d, float64(power)) * math.Exp(-zeta*d*d)
	}
	return table
}

// Size is the number of grid points the plan writes.
func (p *Plan) Size() int {
	return p.npts[0] * p.npts[1] * p.npts[2]
}

// Accumulate adds one collocation of every primitive to grid.
// grid must hold Size() values laid out x fastest.
func (p *Plan) Accumulate(grid []float64) {
	nx, ny, nz := p.npts[0], p.npts[1], p.npts[2]
	for _, t := range p.tables {
		tx, ty, tz := t.axis[0], t.axis[1], t.axis[2]
		for iz := 0; iz < nz; iz++ {
			if tz[iz] == 0 {
				continue
			}
			for iy := 0; iy < ny; iy++ {
				s := t.coef * tz[iz] * ty[iy]
				if s == 0 {
					continue
				}
				row := grid[(iz*ny+iy)*nx : (iz*ny+iy+1)*nx]
				floats.AddScaled(row, s, tx)
			}
		}
	}
}

// Collocate returns a fresh grid holding one collocation of task.
func Collocate(task *model.Task) []float64 {
	plan := NewPlan(task)
	grid := make([]float64, plan.Size())
	plan.Accumulate(grid)
	return grid
}
