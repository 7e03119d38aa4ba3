package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics_EmptyBoard(t *testing.T) {
	m := ComputeMetrics(&Solution{})
	assert.Equal(t, Metrics{}, m)
}

func TestComputeMetrics_Inverter(t *testing.T) {
	m := ComputeMetrics(inverterBoard())

	assert.Equal(t, 9, m.NumMetal)
	assert.Equal(t, 2, m.NumNType)
	assert.Equal(t, 3, m.NumPType)
	assert.Equal(t, 1, m.NumBareNType)
	assert.Equal(t, 2, m.NumBarePType)
	assert.Equal(t, 0, m.NumCapacitors)
	assert.Equal(t, 3, m.NumVias)

	assert.Equal(t, 1, m.NumTransistors)
	assert.Equal(t, 1, m.NumPNPTransistors, "n-on-top counts as PNP")
	assert.Equal(t, 0, m.NumNPNTransistors)

	// Silicon sits at (1,0), (2,0), (3,0), (2,1): a 3x2 bounding box.
	assert.Equal(t, 4, m.SiliconArea)
	assert.Equal(t, 3, m.SiliconWidth)
	assert.Equal(t, 2, m.SiliconHeight)
	assert.Equal(t, 6, m.SiliconSize)

	assert.Equal(t, 5, m.SiliconVolume)
	assert.Equal(t, 17, m.TotalVolume)
}

func TestComputeMetrics_CapacitorCountsAsSilicon(t *testing.T) {
	m := ComputeMetrics(capacitorBoard())

	assert.Equal(t, GridWidth, m.NumMetal)
	assert.Equal(t, 1, m.NumCapacitors)
	assert.Equal(t, 1, m.SiliconArea)
	assert.Equal(t, 1, m.SiliconWidth)
	assert.Equal(t, 1, m.SiliconHeight)
	assert.Equal(t, 1, m.SiliconVolume)
	assert.Equal(t, GridWidth+1, m.TotalVolume)
}

func TestComputeMetrics_NPNTransistor(t *testing.T) {
	m := ComputeMetrics(latchBoard())
	assert.Equal(t, 1, m.NumTransistors)
	assert.Equal(t, 1, m.NumNPNTransistors)
	assert.Equal(t, 0, m.NumPNPTransistors)
}
