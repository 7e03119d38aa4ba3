package sim

// LayerCellState is one conductor layer's electrical state within a tick:
// the static layer cell plus whether it currently carries power ("powered")
// and whether it may conduct through this cell's gate ("open").
type LayerCellState struct {
	LayerCell
	Powered bool
	Open    bool
}

func newLayerCellState(lc LayerCell) LayerCellState {
	return LayerCellState{LayerCell: lc, Open: true}
}

// CellState is one cell's electrical state within a tick: the three layer
// states plus the static component flags that drive the gate rule.
type CellState struct {
	Metal LayerCellState
	NType LayerCellState
	PType LayerCellState

	Capacitor bool
	Via       bool
	NOnTop    bool
}

// newCellState derives the initial state from a static cell: unpowered
// everywhere, open everywhere, then one gate pass so capacitors start
// consistent with an unpowered board.
func newCellState(c Cell) CellState {
	cs := CellState{
		Metal:     newLayerCellState(c.Metal),
		NType:     newLayerCellState(c.NType),
		PType:     newLayerCellState(c.PType),
		Capacitor: c.Capacitor,
		Via:       c.Via,
		NOnTop:    c.NOnTop,
	}
	cs.updateGates()
	return cs
}

// Layer returns a pointer to the requested layer's state.
func (cs *CellState) Layer(l Layer) *LayerCellState {
	switch l {
	case MetalLayer:
		return &cs.Metal
	case NTypeLayer:
		return &cs.NType
	default:
		return &cs.PType
	}
}

// IsTransistor reports whether both silicon layers are present at the cell.
func (cs *CellState) IsTransistor() bool {
	return cs.NType.Present && cs.PType.Present
}

// updateGates recomputes the cell's conduction eligibility from the current
// power levels:
//
//   - an uncharged capacitor blocks its metal layer; a powered one conducts
//   - when n is on top, the n-type base pulls the p-type channel closed
//     while driven; otherwise the p-type base opens the n-type channel
//     while driven
//   - plain conductors never gate
//
// The rule is idempotent: re-applying it with unchanged power levels leaves
// the open flags unchanged. Nothing here re-opens a discharged capacitor;
// that happens only at a tick boundary (tickCapacitor).
func (cs *CellState) updateGates() {
	if cs.Capacitor && cs.Metal.Present && !cs.Metal.Powered {
		cs.Metal.Open = false
	}
	if cs.IsTransistor() {
		if cs.NOnTop {
			cs.PType.Open = !cs.NType.Powered
		} else {
			cs.NType.Open = cs.PType.Powered
		}
	}
}

// tickCapacitor latches capacitor charge at a tick boundary: a capacitor
// whose metal plate ended the previous tick powered starts the next tick
// conducting. Returns the cell's gate bit (see gateOpen).
func (cs *CellState) tickCapacitor() bool {
	if cs.Capacitor && cs.Metal.Present && cs.Metal.Powered {
		cs.Metal.Open = true
	}
	return cs.gateOpen()
}

// gateOpen returns the state of the cell's gate, if it has one. Cells
// without a capacitor or transistor always report true; the per-tick
// relaxation loop uses these bits to detect a fixpoint.
func (cs *CellState) gateOpen() bool {
	switch {
	case cs.Capacitor && cs.Metal.Present:
		return cs.Metal.Open
	case cs.IsTransistor():
		if cs.NOnTop {
			return cs.PType.Open
		}
		return cs.NType.Open
	default:
		return true
	}
}

// SignalTerminal is the electrical node just outside the board at one pin
// position. Terminals conduct unconditionally between every board cell
// wired to the same pin, are forced by IN signals, and record the value
// observed at the pin each tick.
type SignalTerminal struct {
	Loc         Coords
	Type        SignalType
	Connections DirectionSet // board edges wired to this pin

	Input  bool // value forced this tick (IN terminals only)
	Output bool // value observed after relaxation
}

// State is one tick's stabilized electrical snapshot of the whole board:
// every cell's layer states plus the pin terminals. States are immutable
// once recorded.
type State struct {
	Cells     [GridWidth][GridHeight]CellState
	Terminals map[Coords]SignalTerminal
}

// At returns a pointer to the cell state at an in-bounds coordinate.
func (st *State) At(c Coords) *CellState {
	return &st.Cells[c.X][c.Y]
}

// Powered reports whether the given layer carries power at the coordinate.
func (st *State) Powered(c Coords, l Layer) bool {
	return st.At(c).Layer(l).Powered
}
