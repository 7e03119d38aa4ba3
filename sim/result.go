package sim

// SignalResult is one signal's per-tick values as observed at its pin
// during the run, alongside the schedule it is judged against. For IN
// signals the observed values normally echo the drive; a mismatch means
// the circuit back-drives an input pin.
type SignalResult struct {
	Name   string
	Type   SignalType
	Loc    Coords
	Values []bool // observed at the pin, one per tick
	Target []bool // the level's schedule for this signal
}

// Matches reports whether the observed values equal the schedule.
func (r *SignalResult) Matches() bool {
	if len(r.Values) != len(r.Target) {
		return false
	}
	for i, v := range r.Values {
		if v != r.Target[i] {
			return false
		}
	}
	return true
}

// SimulationResult is the terminal, immutable output of one fully converged
// run: the inputs, one State per tick, the per-signal observations, and the
// layout metrics.
type SimulationResult struct {
	Level    *Level
	Solution *Solution

	States  []*State
	Signals map[Coords]*SignalResult

	Metrics Metrics
}

// Correct reports whether every signal matched its schedule on every tick.
func (r *SimulationResult) Correct() bool {
	for _, sig := range r.Signals {
		if !sig.Matches() {
			return false
		}
	}
	return true
}
