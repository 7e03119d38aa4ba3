package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func transistorCellState(nOnTop bool) CellState {
	cell := Cell{
		NType:  LayerCell{Present: true, Connections: Dirs(Up)},
		PType:  LayerCell{Present: true, Connections: Dirs(Left, Right)},
		NOnTop: nOnTop,
	}
	if !nOnTop {
		cell.NType, cell.PType = cell.PType, cell.NType
	}
	return newCellState(cell)
}

func TestNewCellState_DerivesUnpoweredOpen(t *testing.T) {
	cs := newCellState(Cell{Metal: LayerCell{Present: true, Connections: Dirs(Left, Right)}})
	assert.False(t, cs.Metal.Powered)
	assert.True(t, cs.Metal.Open)

	// A capacitor starts uncharged, so its metal layer starts closed.
	capCell := newCellState(Cell{Metal: LayerCell{Present: true}, Capacitor: true})
	assert.False(t, capCell.Metal.Powered)
	assert.False(t, capCell.Metal.Open)
}

func TestUpdateGates_NOnTopInverts(t *testing.T) {
	// GIVEN an n-on-top transistor (n-type base gates the p-type channel)
	cs := transistorCellState(true)

	// WHEN the base is driven high
	cs.NType.Powered = true
	cs.updateGates()

	// THEN the channel is pulled closed
	assert.False(t, cs.PType.Open)

	// WHEN the base drops
	cs.NType.Powered = false
	cs.updateGates()

	// THEN the channel re-opens
	assert.True(t, cs.PType.Open)
}

func TestUpdateGates_POnTopFollows(t *testing.T) {
	// GIVEN a p-on-top transistor (p-type base gates the n-type channel)
	cs := transistorCellState(false)

	// The channel starts closed: the base is unpowered.
	assert.False(t, cs.NType.Open)

	// WHEN the base is driven high, THEN the channel opens
	cs.PType.Powered = true
	cs.updateGates()
	assert.True(t, cs.NType.Open)
}

func TestUpdateGates_PlainConductorsNeverGate(t *testing.T) {
	cs := newCellState(Cell{
		Metal: LayerCell{Present: true, Connections: Dirs(Left, Right)},
		NType: LayerCell{Present: true, Connections: Dirs(Up, Down)},
	})
	cs.updateGates()
	assert.True(t, cs.Metal.Open)
	assert.True(t, cs.NType.Open)
}

func TestUpdateGates_CapacitorClearsOnlyWhenUnpowered(t *testing.T) {
	cs := newCellState(Cell{Metal: LayerCell{Present: true}, Capacitor: true})
	cs.Metal.Open = true // charged at a tick boundary
	cs.Metal.Powered = true

	cs.updateGates()
	assert.True(t, cs.Metal.Open, "a powered capacitor stays conducting")

	cs.Metal.Powered = false
	cs.updateGates()
	assert.False(t, cs.Metal.Open, "an unpowered capacitor blocks conduction")
}

func TestUpdateGates_Idempotent(t *testing.T) {
	states := []CellState{
		transistorCellState(true),
		transistorCellState(false),
		newCellState(Cell{Metal: LayerCell{Present: true}, Capacitor: true}),
		newCellState(Cell{Metal: LayerCell{Present: true, Connections: Dirs(Left, Right)}}),
	}
	// Vary the power levels, then check a second application changes nothing.
	states[0].NType.Powered = true
	states[1].PType.Powered = true
	states[2].Metal.Powered = true

	for i, cs := range states {
		cs.updateGates()
		first := cs
		cs.updateGates()
		assert.Equal(t, first, cs, "case %d: gate rule is not idempotent", i)
	}
}

func TestTickCapacitor_LatchesCharge(t *testing.T) {
	cs := newCellState(Cell{Metal: LayerCell{Present: true}, Capacitor: true})
	assert.False(t, cs.gateOpen())

	// Ends a tick powered: the boundary latch opens it.
	cs.Metal.Powered = true
	assert.True(t, cs.tickCapacitor())
	assert.True(t, cs.Metal.Open)
}

func TestGateOpen_DefaultsTrueForUngatedCells(t *testing.T) {
	cs := newCellState(Cell{Metal: LayerCell{Present: true, Connections: Dirs(Left, Right)}})
	assert.True(t, cs.gateOpen())

	empty := newCellState(Cell{})
	assert.True(t, empty.gateOpen())
}
