package sim

// SignalType tags a boundary signal as externally driven (IN) or externally
// observed (OUT).
type SignalType int

const (
	SignalIn SignalType = iota
	SignalOut
)

func (t SignalType) String() string {
	if t == SignalIn {
		return "IN"
	}
	return "OUT"
}

// Signal is one boundary pin's schedule: the per-tick boolean values (input
// drive for IN signals, expected output for OUT signals), the signal kind,
// and the pin position just outside the board.
type Signal struct {
	Name   string
	Type   SignalType
	Loc    Coords
	Values []bool
}

// Level identifies one puzzle and carries the signal schedules that drive
// and judge a run. Catalog levels ship without schedules; a level file
// attaches them (see LoadLevelFile).
type Level struct {
	ID    int
	Name  string
	Index int // catalog sort order

	Signals map[Coords]*Signal
}

// NewLevel builds a Level from its signals, keying them by pin location.
func NewLevel(id int, name string, signals ...*Signal) *Level {
	l := &Level{ID: id, Name: name, Signals: make(map[Coords]*Signal, len(signals))}
	for _, sig := range signals {
		l.Signals[sig.Loc] = sig
	}
	return l
}

// NumTicks returns the length of the level's signal schedule: the longest
// value sequence across all signals.
func (l *Level) NumTicks() int {
	n := 0
	for _, sig := range l.Signals {
		if len(sig.Values) > n {
			n = len(sig.Values)
		}
	}
	return n
}
