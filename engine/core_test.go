package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/layout"
	"github.com/Carmen-Shannon/oxy-motion/engine/path"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

const frame = 16 * time.Millisecond

func TestWheelRaisesSpeed(t *testing.T) {
	c := NewCore()

	c.OnWheelDelta(-100)
	f := c.FrameTick(frame)
	assert.InDelta(t, 21.0, f.Speed, 1e-9)
	assert.Equal(t, -1.0, f.Direction)
	assert.InDelta(t, 0.03, f.Factor, 1e-9)

	f = c.FrameTick(frame)
	assert.InDelta(t, 18.9, f.Speed, 1e-9, "a repeated velocity decays")

	f = c.FrameTick(50 * time.Millisecond)
	assert.Equal(t, 1, f.Fired, "the wheel timer fires")
	for range 200 {
		f = c.FrameTick(frame)
	}
	assert.InDelta(t, 1.0, f.Speed, 1e-9)
	assert.InDelta(t, 0.0, f.Factor, 1e-9)
	assert.Equal(t, -1.0, f.Direction, "direction is kept after input stops")
}

func TestArrowKeysHoldScroll(t *testing.T) {
	c := NewCore()

	require.True(t, c.OnKeyDown(common.KeyDown))
	f := c.FrameTick(time.Second)
	assert.InDelta(t, 1+KeyVelocity*0.2, f.Speed, 1e-9)
	assert.Equal(t, 1.0, f.Direction)
	assert.Zero(t, f.Fired, "held keys arm no timer")

	c.OnKeyUp(common.KeyDown)
	f = c.FrameTick(frame)
	assert.InDelta(t, 11*0.9, f.Speed, 1e-9)

	c.OnKeyDown(common.KeyUp)
	f = c.FrameTick(frame)
	assert.Equal(t, -1.0, f.Direction)
}

func TestArrowKeysOrbitCamera(t *testing.T) {
	c := NewCore()
	ctrl := c.Camera().Controller()
	require.NotNil(t, ctrl)

	before := ctrl.Azimuth()
	assert.True(t, c.OnKeyDown(common.KeyLeft))
	assert.NotEqual(t, before, ctrl.Azimuth())
	assert.False(t, c.OnKeyDown(common.KeyW), "no rig uses W")
}

func TestWheelSwallowedDuringTransition(t *testing.T) {
	common.SetLogger(nil)
	c := NewCore(WithGallery(12))
	require.True(t, c.Gallery().Changing(), "setup holds the lock")

	c.OnWheelDelta(100)
	f := c.FrameTick(frame)
	assert.InDelta(t, 1.0, f.Speed, 1e-9)
	assert.InDelta(t, 0.0, f.Factor, 1e-9)
}

func TestGalleryEventsAndCamera(t *testing.T) {
	common.SetLogger(nil)
	c := NewCore(WithGallery(12), WithStartMode(layout.ModeHorizon))
	require.InDelta(t, 30.0, c.Camera().Controller().Radius(), 1e-9)

	var kinds []layout.EventKind
	var moved bool
	for range 1000 {
		f := c.FrameTick(frame)
		for _, e := range f.Events {
			kinds = append(kinds, e.Kind)
		}
		moved = moved || len(f.Transforms) > 0
		if len(kinds) >= 3 {
			break
		}
	}
	require.GreaterOrEqual(t, len(kinds), 3)
	assert.Equal(t, []layout.EventKind{
		layout.EventTransitionStarted,
		layout.EventModeChanged,
		layout.EventTransitionCompleted,
	}, kinds[:3])
	assert.True(t, moved)
	assert.Equal(t, layout.ModeHorizon, c.Gallery().Mode())
	assert.InDelta(t, 13*1.5, c.Camera().Controller().Radius(), 1e-9, "camera follows the mode distance")
}

func TestSetTarget(t *testing.T) {
	common.SetLogger(nil)

	t.Run("without homing", func(t *testing.T) {
		err := NewCore().SetTarget("tokyo")
		var target *path.InvalidTargetError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "tokyo", target.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		c := NewCore(WithHoming(path.WithDestinations(path.LatLng("tokyo", 35.7, 139.7, 50))))
		err := c.SetTarget("paris")
		var target *path.InvalidTargetError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "paris", target.ID)
		assert.Contains(t, err.Error(), "engine:")
		assert.False(t, c.Homing().Moving())
	})

	t.Run("known id flies the flyer", func(t *testing.T) {
		c := NewCore(WithHoming(path.WithDestinations(path.LatLng("tokyo", 35.7, 139.7, 50))))
		require.NoError(t, c.SetTarget("tokyo"))

		f := c.FrameTick(frame)
		require.True(t, f.Flying)
		var written *scene.TransformUpdate
		for i := range f.Transforms {
			if f.Transforms[i].Handle == c.Flyer() {
				written = &f.Transforms[i]
			}
		}
		require.NotNil(t, written)
		assert.Equal(t, f.Flight.Position, written.Transform.Position)
		assert.Equal(t, c.Homing().Position(), c.Graph().LocalTransform(c.Flyer()).Position)
	})
}

func TestPulseSphereWired(t *testing.T) {
	c := NewCore(WithPulseSphere(50, 16, 20))
	require.NotNil(t, c.Field())
	assert.Equal(t, 7, c.Field().Rows())
	assert.Equal(t, 20, c.Field().Cols())

	f := c.FrameTick(frame)
	assert.NotEmpty(t, f.Transforms, "the tile group spins every frame")
}

func TestRigsReceiveInput(t *testing.T) {
	c := NewCore(WithFan(), WithCarousel(), WithBoxRings())

	assert.True(t, c.OnKeyDown(common.KeyP))
	assert.True(t, c.Fan().On())

	c.OnWheelDelta(1000)
	assert.InDelta(t, 1.0, c.Carousel().TargetY(), 1e-9)

	c.FrameTick(frame)
	assert.Equal(t, 1, c.BoxRings().Tick())
	assert.InDelta(t, 0.01, c.Fan().Speed(), 1e-9)
	assert.InDelta(t, 0.03, c.Carousel().Factor(), 1e-9, "the carousel blends its own input")
}

func TestSetViewport(t *testing.T) {
	c := NewCore(WithGallery(4))
	c.SetViewport(1000, 1000)
	assert.InDelta(t, 1.0, c.Camera().Aspect(), 1e-9)

	c.SetViewport(0, 100)
	assert.InDelta(t, 1.0, c.Camera().Aspect(), 1e-9, "empty viewports are ignored")
}
