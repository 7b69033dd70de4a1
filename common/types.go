package common

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a local position, rotation and scale for a scene node.
type Transform struct {
	Position r3.Vec
	Rotation r3.Rotation
	Scale    r3.Vec
}

// IdentityTransform returns a transform at the origin with no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: IdentityRotation(),
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
	}
}

// Apply maps a point from the transform's local space into its parent space.
//
// Parameters:
//   - p: the local-space point
//
// Returns:
//   - r3.Vec: the point scaled, rotated and translated
func (t Transform) Apply(p r3.Vec) r3.Vec {
	scaled := r3.Vec{X: p.X * t.Scale.X, Y: p.Y * t.Scale.Y, Z: p.Z * t.Scale.Z}
	return r3.Add(t.Position, t.Rotation.Rotate(scaled))
}

// Ray is a half-line used for hit-testing. Direction is unit length.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}
