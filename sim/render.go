// ASCII rendering of layouts and tick states, for the CLI and debugging.
// Rows print top-down, so y = GridHeight-1 comes first (UP is +y).

package sim

import "strings"

// Visualize renders the layout as one two-character glyph per cell: metal
// layer first ('.', 'm', or 'v' for a via), silicon second ('.', 'n', 'p',
// 'c' for a capacitor, 'N'/'P' for a transistor named by its base layer).
func (s *Solution) Visualize() string {
	var sb strings.Builder
	for y := GridHeight - 1; y >= 0; y-- {
		for x := 0; x < GridWidth; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(layoutGlyph(&s.Cells[x][y]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func layoutGlyph(c *Cell) string {
	metal := byte('.')
	if c.Metal.Present {
		metal = 'm'
	}
	if c.Via {
		metal = 'v'
	}
	sil := byte('.')
	switch {
	case c.IsTransistor():
		if c.NOnTop {
			sil = 'N'
		} else {
			sil = 'P'
		}
	case c.NType.Present:
		sil = 'n'
	case c.PType.Present:
		sil = 'p'
	case c.Capacitor:
		sil = 'c'
	}
	return string([]byte{metal, sil})
}

// Visualize renders one tick's electrical state. Metal: '-' unpowered, '#'
// powered, 'v'/'V' for vias. Silicon: 'n'/'p' with uppercase when powered,
// 't'/'T' for a transistor with a closed/open channel, 'c'/'C' for an
// uncharged/charged capacitor. Pin columns show the observed 0/1 value at
// each pin row.
func (st *State) Visualize() string {
	var sb strings.Builder
	for y := GridHeight - 1; y >= 0; y-- {
		sb.WriteString(st.pinGlyph(Coords{-1, y}))
		for x := 0; x < GridWidth; x++ {
			sb.WriteByte(' ')
			sb.WriteString(stateGlyph(&st.Cells[x][y]))
		}
		sb.WriteByte(' ')
		sb.WriteString(st.pinGlyph(Coords{GridWidth, y}))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (st *State) pinGlyph(loc Coords) string {
	term, ok := st.Terminals[loc]
	if !ok {
		return " "
	}
	if term.Output {
		return "1"
	}
	return "0"
}

func stateGlyph(cs *CellState) string {
	metal := byte('.')
	switch {
	case cs.Via && cs.Metal.Powered:
		metal = 'V'
	case cs.Via:
		metal = 'v'
	case cs.Metal.Powered:
		metal = '#'
	case cs.Metal.Present:
		metal = '-'
	}
	sil := byte('.')
	switch {
	case cs.IsTransistor():
		if cs.gateOpen() {
			sil = 'T'
		} else {
			sil = 't'
		}
	case cs.NType.Powered:
		sil = 'N'
	case cs.NType.Present:
		sil = 'n'
	case cs.PType.Powered:
		sil = 'P'
	case cs.PType.Present:
		sil = 'p'
	case cs.Capacitor && cs.Metal.Open:
		sil = 'C'
	case cs.Capacitor:
		sil = 'c'
	}
	return string([]byte{metal, sil})
}
