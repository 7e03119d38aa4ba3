package sim

import "math/bits"

// The board is fixed at the game's canonical size. The dimensions and pin
// rows are named here so the rest of the package never inlines the literals.
const (
	GridWidth  = 6
	GridHeight = 5
)

// PinRows lists the y coordinates of the three boundary pins on each side
// of the board. Pins sit just outside the grid at x = -1 and x = GridWidth.
var PinRows = [3]int{0, 2, 4}

// Coords is an integer grid coordinate. Out-of-bounds values are legal and
// are used to address the boundary pins.
type Coords struct {
	X int
	Y int
}

// InBounds reports whether the coordinate addresses a cell on the board.
func (c Coords) InBounds() bool {
	return 0 <= c.X && c.X < GridWidth && 0 <= c.Y && c.Y < GridHeight
}

// Add returns the component-wise sum of two coordinates.
func (c Coords) Add(o Coords) Coords {
	return Coords{c.X + o.X, c.Y + o.Y}
}

// IsPin reports whether an out-of-bounds coordinate is one of the six
// boundary pin positions (x in {-1, GridWidth}, y in PinRows).
func (c Coords) IsPin() bool {
	if c.X != -1 && c.X != GridWidth {
		return false
	}
	for _, y := range PinRows {
		if c.Y == y {
			return true
		}
	}
	return false
}

// PinLocations returns the six boundary pin coordinates, left side first,
// each side ordered by row.
func PinLocations() []Coords {
	locs := make([]Coords, 0, 2*len(PinRows))
	for _, x := range []int{-1, GridWidth} {
		for _, y := range PinRows {
			locs = append(locs, Coords{x, y})
		}
	}
	return locs
}

// Direction is one of the four cardinal neighbor directions. The values are
// independent bit flags so a connection set packs into a 4-bit mask; they
// match the bit assignment used by the game's save format.
type Direction uint8

const (
	Right Direction = 1 << iota
	Up
	Left
	Down
)

// Directions lists all four directions for iteration.
var Directions = [4]Direction{Right, Up, Left, Down}

// Lookup tables indexed by the direction's bit value. Flood-fill hits these
// on every neighbor step, so they are flat arrays rather than maps.
var (
	oppositeOf = [Down + 1]Direction{Right: Left, Up: Down, Left: Right, Down: Up}
	deltaOf    = [Down + 1]Coords{Right: {+1, 0}, Up: {0, +1}, Left: {-1, 0}, Down: {0, -1}}
	nameOf     = [Down + 1]string{Right: "RIGHT", Up: "UP", Left: "LEFT", Down: "DOWN"}
)

// Opposite returns the inverse direction.
func (d Direction) Opposite() Direction { return oppositeOf[d] }

// Delta returns the unit coordinate offset of the direction.
func (d Direction) Delta() Coords { return deltaOf[d] }

func (d Direction) String() string {
	if int(d) < len(nameOf) && nameOf[d] != "" {
		return nameOf[d]
	}
	return "INVALID"
}

// DirectionSet is a 4-bit mask over Directions. The zero value is empty.
type DirectionSet uint8

// Dirs builds a DirectionSet from individual directions.
func Dirs(ds ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range ds {
		s |= DirectionSet(d)
	}
	return s
}

// Has reports whether d is in the set.
func (s DirectionSet) Has(d Direction) bool { return s&DirectionSet(d) != 0 }

// Empty reports whether the set contains no directions.
func (s DirectionSet) Empty() bool { return s == 0 }

// Count returns the number of directions in the set.
func (s DirectionSet) Count() int { return bits.OnesCount8(uint8(s)) }

// Intersects reports whether the two sets share any direction.
func (s DirectionSet) Intersects(o DirectionSet) bool { return s&o != 0 }

// Straight reports whether the set is exactly one opposite pair, i.e. the
// unit deltas of its members sum to zero. Transistor channels must satisfy
// this.
func (s DirectionSet) Straight() bool {
	return s == Dirs(Left, Right) || s == Dirs(Up, Down)
}

func (s DirectionSet) String() string {
	if s.Empty() {
		return "{}"
	}
	out := "{"
	for _, d := range Directions {
		if s.Has(d) {
			if len(out) > 1 {
				out += ","
			}
			out += d.String()
		}
	}
	return out + "}"
}
