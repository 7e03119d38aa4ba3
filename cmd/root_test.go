package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipwizard-sim/chipwizard-sim/savefile"
	"github.com/chipwizard-sim/chipwizard-sim/sim"
)

func wireSave(t *testing.T) string {
	t.Helper()
	sol := &sim.Solution{}
	for x := 0; x < sim.GridWidth; x++ {
		sol.At(sim.Coords{X: x, Y: 0}).Metal = sim.LayerCell{
			Present:     true,
			Connections: sim.Dirs(sim.Left, sim.Right),
		}
	}
	save, err := savefile.DumpSolution(sol)
	require.NoError(t, err)
	return save
}

func TestRunOne_ScheduledLevel(t *testing.T) {
	level := sim.NewLevel(4, "NOT Gate",
		&sim.Signal{Name: "IN.A", Type: sim.SignalIn, Loc: sim.Coords{X: -1, Y: 0}, Values: []bool{true, false}},
		&sim.Signal{Name: "OUT.X", Type: sim.SignalOut, Loc: sim.Coords{X: sim.GridWidth, Y: 0}, Values: []bool{true, false}},
	)

	row := runOne(level, 0, wireSave(t))

	assert.Empty(t, row.Error)
	assert.Equal(t, 2, row.Ticks)
	assert.True(t, row.Correct)
	assert.Equal(t, sim.GridWidth, row.Metrics.NumMetal)
}

func TestRunOne_UnscheduledLevelStillValidates(t *testing.T) {
	level, err := sim.LevelByID(4)
	require.NoError(t, err)

	row := runOne(level, 1, wireSave(t))

	assert.Empty(t, row.Error)
	assert.Equal(t, 0, row.Ticks)
	assert.Equal(t, sim.GridWidth, row.Metrics.NumMetal)
}

func TestRunOne_BadSaveString(t *testing.T) {
	level, err := sim.LevelByID(4)
	require.NoError(t, err)

	row := runOne(level, 0, "garbage!!")
	assert.NotEmpty(t, row.Error)
	assert.Equal(t, 0, row.Ticks)
}

func TestBitString(t *testing.T) {
	assert.Equal(t, "101", bitString([]bool{true, false, true}))
	assert.Equal(t, "", bitString(nil))
}
