// Aggregate layout statistics, computed over a validated Solution.

package sim

import "fmt"

// Metrics aggregates static statistics about a Solution for final
// reporting. NumNType and NumPType each count every transistor cell too,
// since a transistor contains both silicon layers; the Bare counts exclude
// transistors. Metrics never depend on simulation state.
type Metrics struct {
	NumMetal      int `json:"num_metal"`
	NumNType      int `json:"num_ntype"`
	NumBareNType  int `json:"num_bare_ntype"`
	NumPType      int `json:"num_ptype"`
	NumBarePType  int `json:"num_bare_ptype"`
	NumCapacitors int `json:"num_capacitors"`
	NumVias       int `json:"num_vias"`

	NumNPNTransistors int `json:"num_npn_transistors"`
	NumPNPTransistors int `json:"num_pnp_transistors"`
	NumTransistors    int `json:"num_transistors"`

	// SiliconArea counts cells containing any silicon or a capacitor;
	// SiliconVolume counts silicon layers (plus capacitors); TotalVolume
	// adds metal and vias on top.
	SiliconArea   int `json:"silicon_area"`
	SiliconVolume int `json:"silicon_volume"`
	TotalVolume   int `json:"total_volume"`

	// Bounding dimensions of the cells counted by SiliconArea.
	SiliconWidth  int `json:"silicon_width"`
	SiliconHeight int `json:"silicon_height"`
	SiliconSize   int `json:"silicon_size"`
}

// ComputeMetrics tallies a Solution. Pure: the Solution is not modified.
func ComputeMetrics(sol *Solution) Metrics {
	var m Metrics
	minX, maxX := GridWidth, -1
	minY, maxY := GridHeight, -1

	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			cell := &sol.Cells[x][y]
			if cell.Metal.Present {
				m.NumMetal++
			}
			if cell.NType.Present {
				m.NumNType++
			}
			if cell.PType.Present {
				m.NumPType++
			}
			if cell.Capacitor {
				m.NumCapacitors++
			}
			if cell.Via {
				m.NumVias++
			}
			if cell.IsTransistor() {
				m.NumTransistors++
				if cell.NOnTop {
					m.NumPNPTransistors++
				} else {
					m.NumNPNTransistors++
				}
			}
			if cell.NType.Present || cell.PType.Present || cell.Capacitor {
				m.SiliconArea++
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}

	m.NumBareNType = m.NumNType - m.NumTransistors
	m.NumBarePType = m.NumPType - m.NumTransistors
	m.SiliconVolume = m.NumNType + m.NumPType + m.NumCapacitors
	m.TotalVolume = m.SiliconVolume + m.NumMetal + m.NumVias
	m.SiliconWidth = max(maxX-minX+1, 0)
	m.SiliconHeight = max(maxY-minY+1, 0)
	m.SiliconSize = m.SiliconWidth * m.SiliconHeight
	return m
}

// Print displays the layout metrics in the validate/simulate CLI output.
func (m Metrics) Print() {
	fmt.Println("=== Layout Metrics ===")
	fmt.Printf("Metal cells          : %d\n", m.NumMetal)
	fmt.Printf("N-type cells         : %d (%d bare)\n", m.NumNType, m.NumBareNType)
	fmt.Printf("P-type cells         : %d (%d bare)\n", m.NumPType, m.NumBarePType)
	fmt.Printf("Capacitors           : %d\n", m.NumCapacitors)
	fmt.Printf("Vias                 : %d\n", m.NumVias)
	fmt.Printf("Transistors          : %d (%d NPN, %d PNP)\n", m.NumTransistors, m.NumNPNTransistors, m.NumPNPTransistors)
	fmt.Printf("Silicon area         : %d cells (%dx%d bounding box)\n", m.SiliconArea, m.SiliconWidth, m.SiliconHeight)
	fmt.Printf("Total volume         : %d\n", m.TotalVolume)
}
