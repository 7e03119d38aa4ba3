package sim

import (
	"fmt"
	"strings"
)

// StructuralRule names the layout invariant a StructuralError violated.
type StructuralRule string

const (
	RuleAbsentConnections StructuralRule = "absent-layer-has-connections"
	RuleCapacitorSilicon  StructuralRule = "capacitor-on-silicon"
	RuleViaPlacement      StructuralRule = "via-placement"
	RuleSharedEdge        StructuralRule = "silicon-layers-share-edge"
	RuleChannelGeometry   StructuralRule = "transistor-channel-geometry"
	RuleBaseUnconnected   StructuralRule = "transistor-base-unconnected"
	RuleReciprocity       StructuralRule = "connection-not-reciprocated"
	RuleBoundary          StructuralRule = "illegal-boundary-connection"
)

// StructuralError is one layout invariant violation, tagged with the
// offending coordinate, layer, and rule. A Solution with any structural
// error must never be simulated.
type StructuralError struct {
	Loc    Coords
	Layer  Layer
	Rule   StructuralRule
	Detail string
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("cell (%d,%d) %s: %s: %s", e.Loc.X, e.Loc.Y, e.Layer, e.Rule, e.Detail)
}

// StructuralErrors collects every violation found by one validation pass.
type StructuralErrors []StructuralError

func (e StructuralErrors) Error() string {
	if len(e) == 0 {
		return "no structural errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d structural error(s): %s", len(e), strings.Join(msgs, "; "))
}

// Validate runs every layout invariant over every cell and returns all
// violations found, not just the first. A nil return means the Solution is
// structurally legal and may be simulated.
func (s *Solution) Validate() StructuralErrors {
	var errs StructuralErrors
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			errs = append(errs, s.validateCell(Coords{x, y})...)
		}
	}
	return errs
}

func (s *Solution) validateCell(loc Coords) StructuralErrors {
	var errs StructuralErrors
	cell := s.At(loc)

	for _, l := range Layers {
		lc := cell.Layer(l)
		if !lc.Present && !lc.Connections.Empty() {
			errs = append(errs, StructuralError{loc, l, RuleAbsentConnections,
				fmt.Sprintf("layer is absent but connects %s", lc.Connections)})
		}
	}

	if cell.Capacitor && (cell.NType.Present || cell.PType.Present) {
		errs = append(errs, StructuralError{loc, NoLayer, RuleCapacitorSilicon,
			"capacitors cannot overlap silicon"})
	}

	if cell.Via {
		if !cell.NType.Present && !cell.PType.Present {
			errs = append(errs, StructuralError{loc, NoLayer, RuleViaPlacement,
				"vias must sit on bare silicon"})
		} else if cell.IsTransistor() {
			errs = append(errs, StructuralError{loc, NoLayer, RuleViaPlacement,
				"vias cannot sit on a transistor"})
		}
	}

	if cell.NType.Connections.Intersects(cell.PType.Connections) {
		errs = append(errs, StructuralError{loc, NoLayer, RuleSharedEdge,
			fmt.Sprintf("ntype and ptype both route through %s",
				cell.NType.Connections&cell.PType.Connections)})
	}

	if cell.IsTransistor() {
		base, channel := NTypeLayer, PTypeLayer
		if !cell.NOnTop {
			base, channel = PTypeLayer, NTypeLayer
		}
		if !cell.Layer(channel).Connections.Straight() {
			errs = append(errs, StructuralError{loc, channel, RuleChannelGeometry,
				"channel must have exactly two opposite connections"})
		}
		if cell.Layer(base).Connections.Empty() {
			errs = append(errs, StructuralError{loc, base, RuleBaseUnconnected,
				"base must have at least one connection"})
		}
	}

	// Every connection must be reciprocated by the neighbor on the same
	// layer; connections leaving the board are only legal on metal at the
	// six pin positions.
	for _, l := range Layers {
		lc := cell.Layer(l)
		for _, d := range Directions {
			if !lc.Connections.Has(d) {
				continue
			}
			n := loc.Add(d.Delta())
			if n.InBounds() {
				if !s.At(n).Layer(l).Connections.Has(d.Opposite()) {
					errs = append(errs, StructuralError{loc, l, RuleReciprocity,
						fmt.Sprintf("neighbor (%d,%d) does not connect back %s", n.X, n.Y, d.Opposite())})
				}
			} else if l != MetalLayer || !n.IsPin() {
				errs = append(errs, StructuralError{loc, l, RuleBoundary,
					fmt.Sprintf("connection %s leaves the board off-pin", d)})
			}
		}
	}

	return errs
}
