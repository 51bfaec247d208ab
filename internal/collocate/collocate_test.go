package collocate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/grid-replay/internal/model"
)

func sTask() *model.Task {
	return &model.Task{
		Grid: model.Grid{
			Npts:    []int{3, 2, 2},
			Spacing: []float64{0.5, 0.5, 0.5},
		},
		Primitives: []model.Primitive{
			{Zeta: 1.0, Center: []float64{0.5, 0, 0}, Coefficient: 2.0},
		},
		Reference: make([]float64, 12),
	}
}

func TestCollocateSingleGaussian(t *testing.T) {
	task := sTask()
	grid := Collocate(task)
	require.Len(t, grid, 12)

	// Point (ix, iy, iz) sits at (0.5*ix, 0.5*iy, 0.5*iz), x fastest.
	for iz := 0; iz < 2; iz++ {
		for iy := 0; iy < 2; iy++ {
			for ix := 0; ix < 3; ix++ {
				dx := 0.5*float64(ix) - 0.5
				dy := 0.5 * float64(iy)
				dz := 0.5 * float64(iz)
				want := 2.0 * math.Exp(-dx*dx) * math.Exp(-dy*dy) * math.Exp(-dz*dz)
				got := grid[(iz*2+iy)*3+ix]
				assert.InDelta(t, want, got, 1e-15, "point (%d,%d,%d)", ix, iy, iz)
			}
		}
	}
	assert.Equal(t, 2.0, grid[1], "center point carries the full coefficient")
}

func TestCollocatePowersVanishAtCenter(t *testing.T) {
	task := sTask()
	task.Primitives[0].Powers = []int{1, 0, 0}
	grid := Collocate(task)

	assert.Zero(t, grid[1])
	assert.Less(t, grid[0], 0.0)
	assert.Greater(t, grid[2], 0.0)
	assert.InDelta(t, -grid[0], grid[2], 1e-15)
}

func TestCollocateRadiusCutoff(t *testing.T) {
	task := sTask()
	task.Primitives[0].Radius = 0.25
	grid := Collocate(task)

	for i, v := range grid {
		if i == 1 {
			assert.Equal(t, 2.0, v)
			continue
		}
		assert.Zero(t, v, "index %d lies outside the cutoff", i)
	}
}

func TestAccumulateIsAdditive(t *testing.T) {
	task := sTask()
	task.Primitives = append(task.Primitives, model.Primitive{
		Zeta: 3.0, Center: []float64{0.2, 0.1, 0.4}, Coefficient: -0.5, Powers: []int{0, 2, 1},
	})

	plan := NewPlan(task)
	grid := make([]float64, plan.Size())
	plan.Accumulate(grid)
	plan.Accumulate(grid)

	once := Collocate(task)
	for i := range once {
		assert.InDelta(t, 2*once[i], grid[i], 1e-14)
	}
}

func TestCollocateOrigin(t *testing.T) {
	task := sTask()
	task.Grid.Origin = []float64{0.5, 0, 0}
	grid := Collocate(task)

	// The center now coincides with point (0, 0, 0).
	assert.Equal(t, 2.0, grid[0])
}
