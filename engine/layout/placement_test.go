package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

func TestPlaneVertices(t *testing.T) {
	v := PlaneVertices(10, 4, 16)
	require.Len(t, v, 17*17)
	assert.Equal(t, r3.Vec{X: -5, Y: 2}, v[0])
	assert.Equal(t, r3.Vec{X: 5, Y: 2}, v[16])
	assert.Equal(t, r3.Vec{X: 5, Y: -2}, v[len(v)-1])

	curved := CurveVertices(v, 15)
	assert.InDelta(t, -15*(1-math.Cos(5.0/15)), curved[0].Z, 1e-12)
	assert.Zero(t, curved[8].Z, "the center column stays flat")
	assert.Zero(t, v[0].Z, "the flat input is not modified")
}

func TestSpiralPosition(t *testing.T) {
	pos, rot := SpiralPosition(DefaultSpiral, 2, 10)
	assert.True(t, common.NearlyEqual(r3.Vec{X: 15, Y: 4.8}, pos, 1e-9))

	// The plane normal turns with the spiral step.
	normal := rot.Rotate(r3.Vec{Z: 1})
	assert.InDelta(t, 0, normal.Y, 1e-9)
	assert.InDelta(t, 1, normal.X, 1e-9)
}

func TestHorizonPosition(t *testing.T) {
	tests := []struct {
		i        int
		row, col int
		x        float64
	}{
		{0, 0, 0, -15.5},
		{2, 0, 2, 5.5},
		{3, 1, 0, 15.5},
		{5, 1, 2, -5.5},
		{9, 3, 0, 15.5},
	}
	for _, tt := range tests {
		row, col, pos := HorizonPosition(DefaultHorizon, 10, tt.i, 10)
		assert.Equal(t, tt.row, row, "item %d", tt.i)
		assert.Equal(t, tt.col, col, "item %d", tt.i)
		assert.InDelta(t, tt.x, pos.X, 1e-9, "item %d", tt.i)
	}
	assert.Equal(t, 3, PerLine(DefaultHorizon, 10))
	assert.Equal(t, 1, PerLine(DefaultHorizon, 1))
}

func TestLineOffsetY(t *testing.T) {
	h := DefaultPlaneHeight
	assert.InDelta(t, (h*4+1.5)/2-h/2, LineOffsetY(DefaultHorizon, h, 0), 1e-12)
	// Lines are centered around zero.
	sum := 0.0
	for i := range 4 {
		sum += LineOffsetY(DefaultHorizon, h, i)
	}
	assert.InDelta(t, 0, sum, 1e-9)
}
