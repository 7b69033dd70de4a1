package path

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

func newScenario(options ...HomingBuilderOption) Homing {
	base := []HomingBuilderOption{
		WithRadius(50),
		WithAltitude(1),
		WithTurnRate(0.1),
		WithMaxSpeed(0.5),
		WithPosition(r3.Vec{Y: 50}),
		WithDestinations(Destination{ID: "east", Position: r3.Vec{X: 35, Y: 10}}),
	}
	return NewHoming(append(base, options...)...)
}

func TestHomingConvergesAndSnaps(t *testing.T) {
	common.SetLogger(nil)
	h := newScenario()
	require.NoError(t, h.SetTarget("east"))

	target := r3.Scale(50, common.SafeUnit(r3.Vec{X: 35, Y: 10}, worldUp))
	prev := r3.Norm(r3.Sub(target, h.Position()))
	ticks := 0
	for h.Moving() {
		require.Less(t, ticks, 2000, "homing did not arrive")
		step, moved := h.Tick()
		require.True(t, moved)
		ticks++
		if step.Arrived {
			break
		}
		dist := r3.Norm(r3.Sub(target, step.Position))
		require.Less(t, dist, prev, "distance must strictly decrease (tick %d)", ticks)
		prev = dist
		require.InDelta(t, 1, r3.Norm(step.Heading), 1e-9)
		require.GreaterOrEqual(t, step.Speed, 0.1)
		require.LessOrEqual(t, step.Speed, 0.5)
	}

	assert.Less(t, prev, 0.2+0.5)
	assert.Equal(t, target, h.Position(), "arrival snaps exactly onto the target")
	assert.Zero(t, h.Speed())
	assert.False(t, h.Moving())
	assert.Zero(t, h.Remaining())
}

func TestHomingArrivalIsIdempotent(t *testing.T) {
	common.SetLogger(nil)
	h := newScenario()
	require.NoError(t, h.SetTarget("east"))
	for i := 0; i < 2000 && h.Moving(); i++ {
		h.Tick()
	}
	require.False(t, h.Moving())

	pos, rot := h.Position(), h.Orientation()
	for i := 0; i < 100; i++ {
		step, moved := h.Tick()
		assert.False(t, moved)
		assert.Equal(t, pos, step.Position)
	}
	assert.Equal(t, rot, h.Orientation())

	require.NoError(t, h.SetTarget("east"))
	_, moved := h.Tick()
	assert.True(t, moved, "a new SetTarget restarts the move")
}

func TestHomingInvalidTarget(t *testing.T) {
	common.SetLogger(nil)
	h := newScenario()
	before := h.Position()

	err := h.SetTarget("atlantis")
	var ite *InvalidTargetError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, "atlantis", ite.ID)
	assert.False(t, h.Moving())
	assert.Equal(t, before, h.Position())
	_, ok := h.Target()
	assert.False(t, ok)

	assert.Error(t, h.PlaceAt("atlantis"))
}

func TestHomingHeadingStaysUnit(t *testing.T) {
	common.SetLogger(nil)
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 25; trial++ {
		randVec := func() r3.Vec {
			return r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		}
		h := NewHoming(
			WithHeading(randVec()),
			WithPosition(r3.Scale(55, common.SafeUnit(randVec(), worldUp))),
			WithDestinations(Destination{ID: "d", Position: r3.Scale(50, common.SafeUnit(randVec(), worldUp))}),
		)
		require.NoError(t, h.SetTarget("d"))
		for i := 0; i < 300; i++ {
			step, _ := h.Tick()
			require.InDelta(t, 1, r3.Norm(step.Heading), 1e-9)
			require.False(t, math.IsNaN(step.Orientation.Real))
			require.InDelta(t, 55, r3.Norm(step.Position), 1e-9)
		}
	}
}

func TestHomingPlaceAt(t *testing.T) {
	tokyo := LatLng("tokyo", 35.6895, 139.6917, 50)
	h := NewHoming(WithDestinations(tokyo))
	require.NoError(t, h.PlaceAt("tokyo"))

	want := r3.Scale(55, r3.Unit(tokyo.Position))
	assert.True(t, common.NearlyEqual(want, h.Position(), 1e-9))
	// The orientation carries the pole onto the destination.
	assert.True(t, common.NearlyEqual(r3.Unit(tokyo.Position), h.Orientation().Rotate(worldUp), 1e-9))
}

func TestLatLng(t *testing.T) {
	d := LatLng("equator", 0, 0, 10)
	assert.True(t, common.NearlyEqual(r3.Vec{X: 10}, d.Position, 1e-9))

	pole := LatLng("pole", 90, 0, 10)
	assert.True(t, common.NearlyEqual(r3.Vec{Y: 10}, pole.Position, 1e-9))
}
