package camera

import "gonum.org/v1/gonum/spatial/r3"

// CameraController owns the camera's positional state. The position is kept on a sphere around
// the target using spherical coordinates (radius, azimuth, elevation); panning shifts the
// position and the target together.
type CameraController interface {
	// Position returns the camera's world-space position.
	Position() r3.Vec

	// Target returns the look-at point.
	Target() r3.Vec

	// SetTarget sets the look-at/pivot point and recomputes the position.
	SetTarget(target r3.Vec)

	// Zoom adjusts the orbit radius. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float64)

	// Drag orbits the camera by a pointer movement.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta (positive tilts the camera up)
	Drag(dx, dy float64)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// PanRight translates position and target along the camera's right axis.
	PanRight(delta float64)

	// PanUp translates position and target along the camera's up axis.
	PanUp(delta float64)

	// Radius returns the current orbit radius.
	Radius() float64

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	SetRadius(radius float64)

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth() float64

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float64

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	SetElevation(elevation float64)
}
