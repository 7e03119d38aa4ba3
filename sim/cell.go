package sim

// Layer identifies one of the three independently-routed conductor layers
// in a cell.
type Layer int

const (
	// NoLayer tags structural errors that concern the whole cell rather
	// than one conductor layer.
	NoLayer Layer = iota - 1

	MetalLayer
	NTypeLayer
	PTypeLayer
)

// Layers lists the three conductor layers for iteration.
var Layers = [3]Layer{MetalLayer, NTypeLayer, PTypeLayer}

func (l Layer) String() string {
	switch l {
	case MetalLayer:
		return "metal"
	case NTypeLayer:
		return "ntype"
	case PTypeLayer:
		return "ptype"
	default:
		return "cell"
	}
}

// LayerCell is one conductor layer of one cell: whether the conductor is
// present, and which neighbor edges it routes through. An absent layer must
// have an empty connection set.
type LayerCell struct {
	Present     bool
	Connections DirectionSet
}

// Cell is one board position: three conductor layers plus the cell-level
// component flags.
type Cell struct {
	Metal LayerCell
	NType LayerCell
	PType LayerCell

	Capacitor bool
	Via       bool

	// NOnTop selects the transistor base when both silicon layers are
	// present: true means the n-type layer gates the p-type channel.
	NOnTop bool
}

// Layer returns a pointer to the requested conductor layer.
func (c *Cell) Layer(l Layer) *LayerCell {
	switch l {
	case MetalLayer:
		return &c.Metal
	case NTypeLayer:
		return &c.NType
	default:
		return &c.PType
	}
}

// IsTransistor reports whether both silicon layers are present at the cell.
func (c *Cell) IsTransistor() bool {
	return c.NType.Present && c.PType.Present
}

// Selection is the editor's selection rectangle. It is irrelevant to
// simulation and carried only so save strings round-trip.
type Selection struct {
	Origin Coords
	Size   Coords
}

// Solution is a full board layout. It is authored externally (savefile
// parsing, tests) and is immutable input to the simulator once validated.
type Solution struct {
	Cells [GridWidth][GridHeight]Cell

	Selection  *Selection
	SaveString string
}

// At returns a pointer to the cell at an in-bounds coordinate.
func (s *Solution) At(c Coords) *Cell {
	return &s.Cells[c.X][c.Y]
}
