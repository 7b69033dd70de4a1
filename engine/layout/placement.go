package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// SpiralConfig places items on a helix around the Y axis.
type SpiralConfig struct {
	Distance       float64
	StepDeg        float64
	InclinationDeg float64
	StepY          float64
}

// HorizonConfig places items in horizontal lines that scroll sideways.
type HorizonConfig struct {
	Lines          int
	Gap            float64
	InclinationDeg float64
}

// Default layout parameters.
var (
	DefaultSpiral  = SpiralConfig{Distance: 15, StepDeg: 45, InclinationDeg: -8, StepY: 1.6}
	DefaultHorizon = HorizonConfig{Lines: 4, Gap: 0.5, InclinationDeg: -5}
)

// Placement is where an item sits in one mode.
type Placement struct {
	Position r3.Vec
	Rotation r3.Rotation

	// Vertices are the rest positions of the item's plane vertices in this mode.
	Vertices []r3.Vec
}

// Transform returns the placement as a unit-scale local transform.
func (p Placement) Transform() common.Transform {
	t := common.IdentityTransform()
	t.Position = p.Position
	t.Rotation = p.Rotation
	return t
}

// PlaneVertices returns the vertices of a width x height plane split into segments x segments
// cells, row by row from the top-left corner.
//
// Parameters:
//   - width: plane width
//   - height: plane height
//   - segments: cells along each side
//
// Returns:
//   - []r3.Vec: (segments+1)^2 vertices in the z = 0 plane
func PlaneVertices(width, height float64, segments int) []r3.Vec {
	segments = max(segments, 1)
	out := make([]r3.Vec, 0, (segments+1)*(segments+1))
	for iy := 0; iy <= segments; iy++ {
		y := height/2 - float64(iy)*height/float64(segments)
		for ix := 0; ix <= segments; ix++ {
			x := float64(ix)*width/float64(segments) - width/2
			out = append(out, r3.Vec{X: x, Y: y})
		}
	}
	return out
}

// CurveVertices bends flat vertices onto a cylinder of the given radius, away from the viewer.
func CurveVertices(flat []r3.Vec, radius float64) []r3.Vec {
	out := make([]r3.Vec, len(flat))
	for i, v := range flat {
		v.Z = -radius * (1 - math.Cos(math.Abs(v.X)/radius))
		out[i] = v
	}
	return out
}

// SpiralPosition returns the spiral pose of item i out of n.
func SpiralPosition(cfg SpiralConfig, i, n int) (r3.Vec, r3.Rotation) {
	a := common.Radians(float64(i) * cfg.StepDeg)
	pos := r3.Vec{
		X: math.Sin(a) * cfg.Distance,
		Y: (float64(i) - float64(n)/2) * -cfg.StepY,
		Z: math.Cos(a) * cfg.Distance,
	}
	return pos, common.EulerXYZ(0, a, common.Radians(cfg.InclinationDeg))
}

// PerLine returns how many items share one horizon line.
func PerLine(cfg HorizonConfig, n int) int {
	lines := max(cfg.Lines, 1)
	return max((n+lines-1)/lines, 1)
}

// HorizonPosition returns the line, column and in-line position of item i out of n.
// Even lines run left to right, odd lines mirrored.
//
// Parameters:
//   - cfg: horizon layout parameters
//   - width: item width
//   - i: item index
//   - n: item count
//
// Returns:
//   - int: line index
//   - int: column index
//   - r3.Vec: position relative to the line group
func HorizonPosition(cfg HorizonConfig, width float64, i, n int) (int, int, r3.Vec) {
	perLine := PerLine(cfg, n)
	row, col := i/perLine, i%perLine
	dir := 1.0
	if row%2 != 0 {
		dir = -1
	}
	offset := (float64(perLine)*(width+cfg.Gap) - cfg.Gap) / 2
	x := (width+cfg.Gap)*float64(col)*dir - offset*dir
	return row, col, r3.Vec{X: x}
}

// LineOffsetY returns the height of horizon line i so the lines are centered vertically.
func LineOffsetY(cfg HorizonConfig, height float64, i int) float64 {
	lines := float64(cfg.Lines)
	return (height*lines+cfg.Gap*(lines-1))/2 - float64(i)*(height+cfg.Gap) - height/2
}
