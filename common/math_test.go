package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestScalars(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
	assert.Equal(t, 15.0, Lerp(10, 20, 0.5))
	assert.Equal(t, 1.0, Sign(0))
	assert.Equal(t, -1.0, Sign(-0.001))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.InDelta(t, math.Pi, Radians(180), 1e-12)
}

func TestSafeUnit(t *testing.T) {
	fallback := r3.Vec{Y: 1}
	assert.Equal(t, fallback, SafeUnit(r3.Vec{}, fallback))
	assert.Equal(t, fallback, SafeUnit(r3.Vec{X: math.NaN()}, fallback))
	assert.True(t, NearlyEqual(r3.Vec{X: 0.6, Y: 0.8}, SafeUnit(r3.Vec{X: 3, Y: 4}, fallback), 1e-12))
}

func TestRotations(t *testing.T) {
	x, y := r3.Vec{X: 1}, r3.Vec{Y: 1}

	q := RotationBetween(x, y)
	assert.True(t, NearlyEqual(y, q.Rotate(x), 1e-9))
	assert.InDelta(t, math.Pi/2, RotationAngle(q), 1e-9)
	assert.Equal(t, IdentityRotation(), RotationBetween(x, x))
	assert.Equal(t, IdentityRotation(), AxisAngle(r3.Vec{}, 1))

	// Two quarter turns about Z make a half turn.
	quarter := AxisAngle(r3.Vec{Z: 1}, math.Pi/2)
	half := Compose(quarter, quarter)
	assert.True(t, NearlyEqual(r3.Vec{X: -1}, half.Rotate(x), 1e-9))

	assert.True(t, NearlyEqual(EulerXYZ(0, math.Pi/2, 0).Rotate(r3.Vec{Z: 1}), x, 1e-9))
}

func TestLookRotation(t *testing.T) {
	for _, forward := range []r3.Vec{{X: 1}, {Z: -1}, {X: 1, Y: 1, Z: 1}, {Y: 1}} {
		q := LookRotation(forward, r3.Vec{Y: 1})
		assert.True(t, NearlyEqual(r3.Unit(forward), q.Rotate(r3.Vec{Z: 1}), 1e-9), "forward %v", forward)
	}
	assert.Equal(t, IdentityRotation(), LookRotation(r3.Vec{}, r3.Vec{Y: 1}))
}

func TestBoundsAndTransform(t *testing.T) {
	b := VisibleBounds(10, math.Pi/2, 2)
	assert.InDelta(t, 20, b.Height(), 1e-9)
	assert.InDelta(t, 40, b.Width(), 1e-9)
	assert.True(t, b.Contains(r3.Vec{X: 19}, 0, 0))
	assert.False(t, b.Contains(r3.Vec{X: 21}, 0, 0))
	assert.True(t, b.Contains(r3.Vec{X: 21}, 2, 0))

	tr := IdentityTransform()
	tr.Position = r3.Vec{X: 1}
	tr.Scale = r3.Vec{X: 2, Y: 2, Z: 2}
	assert.True(t, NearlyEqual(r3.Vec{X: 3, Y: 2}, tr.Apply(r3.Vec{X: 1, Y: 1}), 1e-12))

	ray := Ray{Origin: r3.Vec{Z: 5}, Direction: r3.Vec{Z: -1}}
	assert.Equal(t, r3.Vec{Z: 2}, ray.At(3))
}

func TestMixColorAndCoalesce(t *testing.T) {
	black, white := Color{A: 1}, Color{R: 1, G: 1, B: 1, A: 1}
	assert.Equal(t, Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, MixColor(black, white, 0.5))
	assert.Equal(t, white, MixColor(black, white, 4))
	assert.Equal(t, black, MixColor(black, white, -1))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.True(t, IsArrowKey(KeyUp))
	assert.False(t, IsArrowKey(KeyP))
}
