package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxRelaxationPasses bounds the per-tick relaxation loop. A layout whose
// transistor-gating dependencies are acyclic stabilizes in a number of
// passes proportional to the cell count, so hitting this bound means the
// circuit oscillates rather than settles.
const MaxRelaxationPasses = 2 * GridWidth * GridHeight

// OscillationError reports a tick whose relaxation loop never reached a
// fixpoint within MaxRelaxationPasses. The run aborts at that tick; no
// partial State sequence is returned.
type OscillationError struct {
	Tick int
}

func (e *OscillationError) Error() string {
	return fmt.Sprintf("circuit failed to stabilize at tick %d (oscillation)", e.Tick)
}

// Simulator holds the working electrical state for one (Level, Solution)
// run. One run is strictly sequential and deterministic; independent runs
// share nothing and may execute concurrently.
type Simulator struct {
	Level    *Level
	Solution *Solution

	cells     [GridWidth][GridHeight]CellState
	terminals map[Coords]*SignalTerminal
}

// NewSimulator derives the initial working state from a solution: every
// layer unpowered and open, one seeding gate pass, and one terminal per pin
// position wired to whatever metal reaches the board edge there.
func NewSimulator(level *Level, solution *Solution) *Simulator {
	s := &Simulator{
		Level:     level,
		Solution:  solution,
		terminals: make(map[Coords]*SignalTerminal),
	}
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			s.cells[x][y] = newCellState(solution.Cells[x][y])
		}
	}
	for _, loc := range PinLocations() {
		term := &SignalTerminal{Loc: loc, Type: SignalOut}
		if sig, ok := level.Signals[loc]; ok {
			term.Type = sig.Type
		}
		for _, d := range Directions {
			n := loc.Add(d.Delta())
			if n.InBounds() && s.at(n).Metal.Connections.Has(d.Opposite()) {
				term.Connections |= DirectionSet(d)
			}
		}
		s.terminals[loc] = term
	}
	return s
}

// Simulate validates the solution and, if it is structurally legal, runs
// every tick of the level's signal schedule. It returns a result only when
// every tick converged.
func Simulate(level *Level, solution *Solution) (*SimulationResult, error) {
	return NewSimulator(level, solution).Run()
}

// Run executes the whole signal schedule. Structural errors are reported
// before any tick runs; an oscillating tick aborts the run.
func (s *Simulator) Run() (*SimulationResult, error) {
	if errs := s.Solution.Validate(); len(errs) > 0 {
		return nil, errs
	}

	numTicks := s.Level.NumTicks()
	result := &SimulationResult{
		Level:    s.Level,
		Solution: s.Solution,
		States:   make([]*State, 0, numTicks),
		Signals:  make(map[Coords]*SignalResult, len(s.Level.Signals)),
		Metrics:  ComputeMetrics(s.Solution),
	}
	for loc, sig := range s.Level.Signals {
		result.Signals[loc] = &SignalResult{
			Name:   sig.Name,
			Type:   sig.Type,
			Loc:    loc,
			Values: make([]bool, 0, numTicks),
			Target: sig.Values,
		}
	}

	for tick := 0; tick < numTicks; tick++ {
		if err := s.step(tick); err != nil {
			return nil, err
		}
		result.States = append(result.States, s.snapshot())
		for loc, res := range result.Signals {
			res.Values = append(res.Values, s.terminals[loc].Output)
		}
	}
	logrus.Debugf("simulation of level %q finished after %d ticks", s.Level.Name, numTicks)
	return result, nil
}

// step runs one tick to its fixpoint: latch this tick's inputs and
// capacitor charge, then alternate flood-fill and gate-update until the
// gate configuration stops changing.
func (s *Simulator) step(tick int) error {
	for loc, sig := range s.Level.Signals {
		if sig.Type == SignalIn {
			s.terminals[loc].Input = tick < len(sig.Values) && sig.Values[tick]
		}
	}

	gates := s.tickCapacitors()
	s.floodPower()
	for pass := 0; ; pass++ {
		next := s.updateAllGates()
		if next == gates {
			logrus.Debugf("tick %d stabilized after %d gate pass(es)", tick, pass+1)
			return nil
		}
		gates = next
		if pass >= MaxRelaxationPasses {
			return &OscillationError{Tick: tick}
		}
		s.floodPower()
	}
}

func (s *Simulator) at(c Coords) *CellState {
	return &s.cells[c.X][c.Y]
}

// tickCapacitors latches capacitor charge from the previous tick's power
// levels and returns the board's gate signature.
func (s *Simulator) tickCapacitors() uint64 {
	var sig uint64
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			if s.cells[x][y].tickCapacitor() {
				sig |= 1 << uint(x*GridHeight+y)
			}
		}
	}
	return sig
}

// updateAllGates applies the gate rule to every cell using the power levels
// from the last flood pass and returns the resulting gate signature: one
// bit per cell, set when the cell's gate (if any) is open. Relaxation has
// converged when two consecutive signatures are equal.
func (s *Simulator) updateAllGates() uint64 {
	var sig uint64
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			cs := &s.cells[x][y]
			cs.updateGates()
			if cs.gateOpen() {
				sig |= 1 << uint(x*GridHeight+y)
			}
		}
	}
	return sig
}

type floodNode struct {
	loc   Coords
	layer Layer
}

// floodPower recomputes every layer's powered flag from the currently
// driven terminals. Power leaves a cell only through an open layer, but may
// enter a closed one (that is how capacitor plates and gated channel
// endpoints get driven). The result is independent of seeding order:
// powered flags only ever turn on within one flood.
func (s *Simulator) floodPower() {
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			cs := &s.cells[x][y]
			cs.Metal.Powered = false
			cs.NType.Powered = false
			cs.PType.Powered = false
		}
	}
	for _, term := range s.terminals {
		term.Output = false
	}
	for loc, term := range s.terminals {
		if term.Type == SignalIn && term.Input {
			s.flood(loc, MetalLayer)
		}
	}
}

// flood propagates power from one seed across reciprocal connections within
// a layer, across vias between layers, and through pin terminals outside
// the board.
func (s *Simulator) flood(origin Coords, layer Layer) {
	stack := []floodNode{{origin, layer}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !n.loc.InBounds() {
			// The validator only admits out-of-board connections at pin
			// positions, so a terminal always exists here.
			term := s.terminals[n.loc]
			if term.Output {
				continue
			}
			term.Output = true
			for _, d := range Directions {
				if term.Connections.Has(d) {
					stack = append(stack, floodNode{n.loc.Add(d.Delta()), MetalLayer})
				}
			}
			continue
		}

		cs := s.at(n.loc)
		lc := cs.Layer(n.layer)
		if !lc.Present || lc.Powered {
			continue
		}
		lc.Powered = true

		// Vias bridge power between metal and silicon unconditionally.
		if cs.Via {
			for _, l := range Layers {
				if l != n.layer && cs.Layer(l).Present {
					stack = append(stack, floodNode{n.loc, l})
				}
			}
		}

		if lc.Open {
			for _, d := range Directions {
				if lc.Connections.Has(d) {
					stack = append(stack, floodNode{n.loc.Add(d.Delta()), n.layer})
				}
			}
		}
	}
}

// snapshot freezes the working grid and terminals into an immutable State.
func (s *Simulator) snapshot() *State {
	st := &State{
		Cells:     s.cells,
		Terminals: make(map[Coords]SignalTerminal, len(s.terminals)),
	}
	for loc, term := range s.terminals {
		st.Terminals[loc] = *term
	}
	return st
}
