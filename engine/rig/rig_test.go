package rig

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

const tol = 1e-9

func TestFanPowerLevels(t *testing.T) {
	f := NewFan(scene.NewGraph(), scene.Root)

	f.Faster()
	assert.Zero(t, f.Power(), "controls are ignored while off")

	f.Toggle()
	assert.True(t, f.On())
	assert.Equal(t, 1, f.Power())

	for range 10 {
		f.Faster()
	}
	assert.Equal(t, 5, f.Power())

	for range 10 {
		f.Slower()
	}
	assert.Equal(t, 1, f.Power(), "slowest level while on is 1")

	f.Toggle()
	assert.False(t, f.On())
	assert.Zero(t, f.Power())
}

func TestFanSpeedRamp(t *testing.T) {
	g := scene.NewGraph()
	f := NewFan(g, scene.Root)
	f.Toggle()

	f.Update(0)
	assert.InDelta(t, 0.01, f.Speed(), tol)

	for range 99 {
		f.Update(0)
	}
	assert.InDelta(t, 1.0, f.Speed(), tol)
	assert.Less(t, f.BladeAngle(), 0.0)

	blades := g.LocalTransform(f.Blades())
	assert.True(t, common.NearlyEqual(r3.Vec{Z: 9}, blades.Position, tol))
	want := common.EulerXYZ(0, 0, f.BladeAngle())
	assert.InDelta(t, want.Real, blades.Rotation.Real, tol)
	assert.InDelta(t, want.Kmag, blades.Rotation.Kmag, tol)

	f.Toggle()
	for range 100 {
		f.Update(0)
	}
	assert.InDelta(t, 0.0, f.Speed(), tol, "speed winds down after switching off")
}

func TestFanSwing(t *testing.T) {
	g := scene.NewGraph()
	f := NewFan(g, scene.Root)

	f.SetSwing(true, false)
	f.Update(0)
	assert.Equal(t, common.IdentityRotation(), g.LocalTransform(f.Body()).Rotation, "no swing while off")

	f.Toggle()
	f.Update(0)
	want := common.EulerXYZ(0, math.Sin(common.Radians(0.4))*0.3, 0)
	got := g.LocalTransform(f.Body()).Rotation
	assert.InDelta(t, want.Real, got.Real, tol)
	assert.InDelta(t, want.Jmag, got.Jmag, tol)
	assert.InDelta(t, 0.0, got.Imag, tol)
}

func TestFanKeys(t *testing.T) {
	f := NewFan(scene.NewGraph(), scene.Root)

	tests := []struct {
		name  string
		code  uint32
		used  bool
		power int
	}{
		{"power on", common.KeyP, true, 1},
		{"faster", common.KeyF, true, 2},
		{"faster again", common.KeyF, true, 3},
		{"slower", common.KeyS, true, 2},
		{"swing", common.KeyH, true, 2},
		{"unbound", common.KeyW, false, 2},
		{"power off", common.KeyP, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.used, f.OnKey(tt.code))
			assert.Equal(t, tt.power, f.Power())
		})
	}
}

func TestBoxRingsLayout(t *testing.T) {
	g := scene.NewGraph()
	br := NewBoxRings(g, scene.Root)

	require.Equal(t, 21, br.Rows())
	assert.Equal(t, 7, br.RowSize(0), "pole ring has radius 2")
	assert.Equal(t, 70, br.RowSize(10), "equator ring has radius 22")
	assert.Equal(t, 7, br.RowSize(20))
	assert.Zero(t, br.RowSize(21))

	total := 0
	for row := range br.Rows() {
		total += br.RowSize(row)
	}
	assert.Len(t, br.Boxes(), total)

	first := g.LocalTransform(br.Boxes()[0]).Position
	assert.True(t, common.NearlyEqual(r3.Vec{Y: 20, Z: 2}, first, tol))
}

func TestBoxRingsAlternateDirection(t *testing.T) {
	g := scene.NewGraph()
	br := NewBoxRings(g, scene.Root)
	boxes := br.Boxes()

	br.Update(0)
	assert.Equal(t, 1, br.Tick())

	// Even rows turn forward, odd rows backward.
	even := g.LocalTransform(boxes[0]).Position
	assert.InDelta(t, 2*math.Sin(0.01), even.X, tol)
	assert.InDelta(t, 20.0, even.Y, tol)

	odd := g.LocalTransform(boxes[br.RowSize(0)]).Position
	lat := common.Radians(81)
	radius := 20*math.Cos(lat) + 2
	assert.InDelta(t, radius*math.Sin(-0.02/radius), odd.X, tol)
	assert.InDelta(t, 20*math.Sin(lat), odd.Y, tol)
}

func TestBoxRingsNeedTwoRows(t *testing.T) {
	assert.Panics(t, func() { NewBoxRings(scene.NewGraph(), scene.Root, WithRows(1)) })
	assert.Panics(t, func() { NewBoxRings(nil, scene.Root) })
}

func TestCarouselLayout(t *testing.T) {
	g := scene.NewGraph()
	c := NewCarousel(g, clock.NewScheduler(), scene.Root)

	planes := c.Planes()
	require.Len(t, planes, 64)

	first := g.LocalTransform(planes[0])
	assert.True(t, common.NearlyEqual(r3.Vec{X: 5.1, Y: 8.75}, first.Position, tol))
	assert.True(t, common.NearlyEqual(r3.Vec{X: 1}, first.Rotation.Rotate(r3.Vec{Z: 1}), 1e-6), "planes face outward")
	assert.InDelta(t, 0.5, g.Uniform(planes[0], UniformOpacity), tol)

	last := g.LocalTransform(planes[63]).Position
	assert.InDelta(t, -8.75, last.Y, tol)
}

func TestCarouselScrollBlend(t *testing.T) {
	sched := clock.NewScheduler()
	c := NewCarousel(scene.NewGraph(), sched, scene.Root)

	c.OnScroll(1000, false)
	assert.InDelta(t, 1.0, c.TargetY(), tol)

	c.Update(0)
	assert.InDelta(t, 0.03, c.Factor(), tol)
	_, rotY := c.Rotation()
	assert.InDelta(t, 0.06*0.03, rotY, tol)
	assert.InDelta(t, 0.1, c.PositionY(), tol)

	sched.Advance(500 * time.Millisecond)
	c.Update(0)
	assert.InDelta(t, 0.0, c.Factor(), tol, "wheel goes idle after its timeout")
}

func TestCarouselScrollLimits(t *testing.T) {
	c := NewCarousel(scene.NewGraph(), clock.NewScheduler(), scene.Root)

	c.OnScroll(5000, false)
	for range 300 {
		c.Update(0)
	}
	require.InDelta(t, 5.0, c.PositionY(), 1e-6)

	c.OnScroll(1000, false)
	assert.InDelta(t, 5.0, c.TargetY(), tol, "top edge is past the viewport")

	c.OnScroll(-1000, false)
	assert.InDelta(t, 4.0, c.TargetY(), tol, "scrolling back is allowed")
}

func TestCarouselIdleTurnAndTilt(t *testing.T) {
	c := NewCarousel(scene.NewGraph(), clock.NewScheduler(), scene.Root)

	c.Update(time.Second)
	x, y := c.Rotation()
	assert.InDelta(t, -0.08, y, tol)
	assert.Zero(t, x)

	c.OnPointer(0, 0.5)
	for range 100 {
		c.Update(0)
	}
	x, _ = c.Rotation()
	assert.InDelta(t, math.Pi/314, x, tol, "tilt is clamped")
}

func TestCarouselHoverAndPick(t *testing.T) {
	g := scene.NewGraph()
	c := NewCarousel(g, clock.NewScheduler(), scene.Root)
	planes := c.Planes()

	ray := common.Ray{Origin: r3.Vec{X: 20, Y: 8.75}, Direction: r3.Vec{X: -1}}
	idx, ok := c.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	assert.True(t, c.Hover(ray))
	assert.InDelta(t, 1.0, g.Uniform(planes[0], UniformHover), tol)

	miss := common.Ray{Origin: r3.Vec{X: 20, Y: 100}, Direction: r3.Vec{X: -1}}
	assert.False(t, c.Hover(miss))
	assert.InDelta(t, 0.0, g.Uniform(planes[0], UniformHover), tol)

	_, ok = c.Pick(miss)
	assert.False(t, ok)
}

func TestCarouselViewportScale(t *testing.T) {
	g := scene.NewGraph()
	c := NewCarousel(g, clock.NewScheduler(), scene.Root)

	c.SetViewport(1920, 1080)
	s := g.LocalTransform(c.Planes()[0]).Scale
	assert.InDelta(t, 1080.0/1400, s.X, tol)
	assert.InDelta(t, 1.0, s.Z, tol)

	c.SetViewport(1000, 1200)
	s = g.LocalTransform(c.Planes()[0]).Scale
	assert.InDelta(t, 1000.0/800, s.Y, tol)
}
