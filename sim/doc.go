// Package sim models a fixed-size ChipWizard integrated-circuit layout and
// simulates how power propagates through it tick by tick.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - cell.go: the layered layout model (LayerCell, Cell, Solution)
//   - state.go: per-tick electrical state and the gate-update rule
//   - simulator.go: seeding, flood-fill, and the per-tick fixpoint loop
//
// # Data Flow
//
// A Solution (authored externally, typically parsed by the savefile
// package) is validated once by Solution.Validate; simulating an invalid
// layout is refused. Simulate then consumes a Level's signal schedule one
// tick at a time, relaxing each tick to a fixpoint of {flood-fill,
// gate-update} and recording an immutable State per tick. The run ends in a
// SimulationResult (states + per-signal observations + layout Metrics), or
// fails with StructuralErrors before the first tick or an OscillationError
// when a tick never stabilizes.
//
// One run is strictly sequential and deterministic. Independent runs share
// no state; the CLI fans out whole runs across workers.
package sim
