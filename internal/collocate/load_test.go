package collocate

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/grid-replay/internal/model"
)

const yamlTask = `
name: s-on-2x1x1
grid:
  npts: [2, 1, 1]
  dh: [0.1, 0.1, 0.1]
primitives:
  - zeta: 1.5
    center: [0, 0, 0]
    coefficient: 1
reference: [1.0, 0.985]
`

const tomlTask = `
name = "s-on-2x1x1"
reference = [1.0, 0.985]

[grid]
npts = [2, 1, 1]
dh = [0.1, 0.1, 0.1]

[[primitives]]
zeta = 1.5
center = [0.0, 0.0, 0.0]
coefficient = 1.0
`

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("collocate_ortho_density_l0000.task"))
	assert.Equal(t, FormatYAML, FormatFor("a.yaml"))
	assert.Equal(t, FormatTOML, FormatFor("a.toml"))
	assert.Equal(t, FormatTOML, FormatFor("A.TOML"))
}

func TestDecodeYAMLAndTOMLAgree(t *testing.T) {
	fromYAML, err := Decode([]byte(yamlTask), FormatYAML)
	require.NoError(t, err)
	fromTOML, err := Decode([]byte(tomlTask), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromTOML)
	assert.Equal(t, "s-on-2x1x1", fromYAML.Name)
	assert.Equal(t, 2, fromYAML.Grid.Size())
}

func TestLoadTask(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.task")
	require.NoError(t, os.WriteFile(path, []byte(yamlTask), 0644))

	task, err := LoadTask(path)
	require.NoError(t, err)
	assert.Len(t, task.Reference, 2)
}

func TestLoadTaskMissingFile(t *testing.T) {
	_, err := LoadTask(filepath.Join(t.TempDir(), "missing.task"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte(yamlTask+"extra: 1\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformedTask)

	_, err = Decode([]byte("extra = 1\n"+tomlTask), FormatTOML)
	assert.ErrorIs(t, err, ErrMalformedTask)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("\x00\x01 not a task"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformedTask)

	_, err = Decode([]byte("grid = ["), FormatTOML)
	assert.ErrorIs(t, err, ErrMalformedTask)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(task *model.Task)
	}{
		{"short npts", func(tk *model.Task) { tk.Grid.Npts = []int{3, 2} }},
		{"zero npts", func(tk *model.Task) { tk.Grid.Npts[2] = 0 }},
		{"short dh", func(tk *model.Task) { tk.Grid.Spacing = []float64{1} }},
		{"negative dh", func(tk *model.Task) { tk.Grid.Spacing[0] = -0.5 }},
		{"bad origin", func(tk *model.Task) { tk.Grid.Origin = []float64{0, 0} }},
		{"no primitives", func(tk *model.Task) { tk.Primitives = nil }},
		{"zero zeta", func(tk *model.Task) { tk.Primitives[0].Zeta = 0 }},
		{"short center", func(tk *model.Task) { tk.Primitives[0].Center = []float64{0} }},
		{"short powers", func(tk *model.Task) { tk.Primitives[0].Powers = []int{1} }},
		{"negative power", func(tk *model.Task) { tk.Primitives[0].Powers = []int{0, -1, 0} }},
		{"negative radius", func(tk *model.Task) { tk.Primitives[0].Radius = -1 }},
		{"reference length", func(tk *model.Task) { tk.Reference = tk.Reference[:5] }},
		{"point count overflow", func(tk *model.Task) {
			// 2^62 * 4 wraps to zero on 64-bit ints, matching an empty reference.
			tk.Grid.Npts = []int{math.MaxInt/2 + 1, 4, 1}
			tk.Reference = nil
		}},
	}

	require.NoError(t, Validate(sTask()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := sTask()
			tt.mutate(task)
			assert.ErrorIs(t, Validate(task), ErrMalformedTask)
		})
	}
}
