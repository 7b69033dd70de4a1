package common

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned rectangle in the plane z = 0 as seen from a camera
// looking down -Z. It is the visible area of a perspective camera at a given depth.
type Bounds struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// VisibleBounds returns the rectangle visible at distance from a perspective camera.
//
// Parameters:
//   - distance: distance from the camera to the plane of interest
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//
// Returns:
//   - Bounds: the visible rectangle centered on the origin
func VisibleBounds(distance, fovY, aspect float64) Bounds {
	h := distance * math.Tan(fovY/2) * 2
	w := aspect * h
	return Bounds{
		Left:   -w / 2,
		Right:  w / 2,
		Bottom: -h / 2,
		Top:    h / 2,
	}
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 {
	return b.Top - b.Bottom
}

// Contains reports whether p lies strictly within the bounds grown by the given margins.
// Only X and Y are considered.
//
// Parameters:
//   - p: the world-space point to test
//   - marginX: horizontal growth applied to both sides
//   - marginY: vertical growth applied to both sides
//
// Returns:
//   - bool: true if p is inside the grown rectangle
func (b Bounds) Contains(p r3.Vec, marginX, marginY float64) bool {
	return p.X > b.Left-marginX &&
		p.X < b.Right+marginX &&
		p.Y > b.Bottom-marginY &&
		p.Y < b.Top+marginY
}
