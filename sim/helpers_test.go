package sim

// Test board builders. link lays a connection on one layer and its
// reciprocal on the in-bounds neighbor, marking both layers present, so
// boards built with it validate cleanly by construction.

func link(sol *Solution, loc Coords, l Layer, d Direction) {
	lc := sol.At(loc).Layer(l)
	lc.Present = true
	lc.Connections |= DirectionSet(d)
	n := loc.Add(d.Delta())
	if n.InBounds() {
		nc := sol.At(n).Layer(l)
		nc.Present = true
		nc.Connections |= DirectionSet(d.Opposite())
	}
}

// metalRow lays a pin-to-pin metal wire across row y.
func metalRow(sol *Solution, y int) {
	link(sol, Coords{0, y}, MetalLayer, Left)
	for x := 0; x < GridWidth-1; x++ {
		link(sol, Coords{x, y}, MetalLayer, Right)
	}
	link(sol, Coords{GridWidth - 1, y}, MetalLayer, Right)
}

// inverterBoard wires a NOT gate: the supply pin (-1,0) feeds a p-type
// channel at (2,0) whose n-type base is driven from pin (-1,2); the channel
// output continues on metal to pin (6,0).
func inverterBoard() *Solution {
	sol := &Solution{}
	// supply rail and channel
	link(sol, Coords{0, 0}, MetalLayer, Left)
	link(sol, Coords{0, 0}, MetalLayer, Right)
	sol.At(Coords{1, 0}).Via = true
	link(sol, Coords{1, 0}, PTypeLayer, Right)
	link(sol, Coords{2, 0}, PTypeLayer, Right)
	sol.At(Coords{3, 0}).Via = true
	link(sol, Coords{3, 0}, MetalLayer, Right)
	link(sol, Coords{4, 0}, MetalLayer, Right)
	link(sol, Coords{5, 0}, MetalLayer, Right)
	// base, routed up and over to the middle-left pin
	link(sol, Coords{2, 0}, NTypeLayer, Up)
	sol.At(Coords{2, 0}).NOnTop = true
	sol.At(Coords{2, 1}).Via = true
	link(sol, Coords{2, 1}, MetalLayer, Up)
	link(sol, Coords{2, 2}, MetalLayer, Left)
	link(sol, Coords{1, 2}, MetalLayer, Left)
	link(sol, Coords{0, 2}, MetalLayer, Left)
	return sol
}

// latchBoard wires a self-holding pass gate: an n-type channel at (2,0)
// between the supply pin (-1,0) and output pin (6,0), whose p-type base is
// driven from the set pin (-1,2) OR from the channel's own output.
func latchBoard() *Solution {
	sol := &Solution{}
	// supply rail and channel
	link(sol, Coords{0, 0}, MetalLayer, Left)
	link(sol, Coords{0, 0}, MetalLayer, Right)
	sol.At(Coords{1, 0}).Via = true
	link(sol, Coords{1, 0}, NTypeLayer, Right)
	link(sol, Coords{2, 0}, NTypeLayer, Right)
	sol.At(Coords{3, 0}).Via = true
	link(sol, Coords{3, 0}, MetalLayer, Right)
	link(sol, Coords{4, 0}, MetalLayer, Right)
	link(sol, Coords{5, 0}, MetalLayer, Right)
	// base node: set pin on the left, feedback from the output on the right
	link(sol, Coords{2, 0}, PTypeLayer, Up)
	sol.At(Coords{2, 1}).Via = true
	link(sol, Coords{2, 1}, MetalLayer, Up)
	link(sol, Coords{2, 2}, MetalLayer, Left)
	link(sol, Coords{1, 2}, MetalLayer, Left)
	link(sol, Coords{0, 2}, MetalLayer, Left)
	link(sol, Coords{2, 1}, MetalLayer, Right)
	link(sol, Coords{3, 1}, MetalLayer, Down)
	return sol
}

// oscillatorBoard wires a NOT gate whose output feeds its own base, which
// can never stabilize while the supply pin is driven.
func oscillatorBoard() *Solution {
	sol := &Solution{}
	link(sol, Coords{0, 0}, MetalLayer, Left)
	link(sol, Coords{0, 0}, MetalLayer, Right)
	sol.At(Coords{1, 0}).Via = true
	link(sol, Coords{1, 0}, PTypeLayer, Right)
	link(sol, Coords{2, 0}, PTypeLayer, Right)
	sol.At(Coords{3, 0}).Via = true
	link(sol, Coords{3, 0}, MetalLayer, Up)
	link(sol, Coords{3, 1}, MetalLayer, Left)
	link(sol, Coords{2, 0}, NTypeLayer, Up)
	sol.At(Coords{2, 0}).NOnTop = true
	sol.At(Coords{2, 1}).Via = true
	link(sol, Coords{2, 1}, MetalLayer, Right)
	return sol
}

// capacitorBoard is a pin-to-pin metal wire on row 0 with a capacitor in
// the second cell.
func capacitorBoard() *Solution {
	sol := &Solution{}
	metalRow(sol, 0)
	sol.At(Coords{1, 0}).Capacitor = true
	return sol
}

func bitValues(s string) []bool {
	out := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[i] == '1'
	}
	return out
}

func inSignal(name string, loc Coords, values string) *Signal {
	return &Signal{Name: name, Type: SignalIn, Loc: loc, Values: bitValues(values)}
}

func outSignal(name string, loc Coords, values string) *Signal {
	return &Signal{Name: name, Type: SignalOut, Loc: loc, Values: bitValues(values)}
}
