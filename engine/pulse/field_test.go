package pulse

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

func ringDistance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, n-d)
}

func TestPulsePropagatesAroundRing(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, WithRings(1, 25), WithReach(12))
	require.True(t, f.Trigger(0, 5))

	acts := f.Schedule()
	require.Len(t, acts, 25, "reach 12 covers the whole ring exactly once")
	seen := map[int]bool{}
	delays := make([]time.Duration, 0, len(acts))
	for _, a := range acts {
		assert.False(t, seen[a.ItemID], "item %d scheduled twice", a.ItemID)
		seen[a.ItemID] = true
		d := ringDistance(a.Col, 5, 25)
		assert.Equal(t, d, a.Offset)
		assert.Equal(t, time.Duration(d)*100*time.Millisecond, a.Delay)
		delays = append(delays, a.Delay)
	}
	assert.Empty(t, cmp.Diff(delays, sched.PendingDelays()))

	// Each item is activated exactly when its delay elapses.
	activatedAt := map[int]time.Duration{}
	sched.Advance(0)
	for range 13 {
		for id := range 25 {
			if _, ok := activatedAt[id]; !ok && f.QueueLen(id) > 0 {
				activatedAt[id] = sched.Now()
			}
		}
		sched.Advance(100 * time.Millisecond)
	}
	require.Len(t, activatedAt, 25)
	for id, at := range activatedAt {
		assert.Equal(t, time.Duration(ringDistance(id, 5, 25))*100*time.Millisecond, at, "item %d", id)
	}
	assert.Zero(t, sched.Pending())
}

func TestEffectLifetime(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, WithRings(1, 25), WithReach(0))
	require.True(t, f.Trigger(0, 5))
	assert.False(t, f.Trigger(0, 5), "the origin stays active until its queue drains")
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(0)
	require.Equal(t, 1, f.QueueLen(5))
	for i := 1; i <= 30; i++ {
		f.Tick()
		require.Equal(t, 1, f.QueueLen(5), "tick %d", i)
		if i == 15 {
			assert.Greater(t, f.Item(5).Displacement, 0.0)
			assert.Greater(t, f.Item(5).Scale, 1.0)
			assert.Less(t, f.Item(5).Color.L, 100.0)
		}
	}
	assert.InDelta(t, 0, f.Item(5).Displacement, 1e-12, "phases cancel out")
	assert.InDelta(t, 1, f.Item(5).Scale, 1e-12)

	f.Tick()
	assert.Zero(t, f.QueueLen(5))
	assert.Equal(t, ItemState{Scale: 1, Color: BaseColor}, f.Item(5))
	assert.Empty(t, f.ActiveItems())
	assert.True(t, f.Trigger(0, 5))
}

func TestRowsAreClipped(t *testing.T) {
	f := NewField(clock.NewScheduler(), WithRings(23, 36))
	require.True(t, f.Trigger(0, 0))

	perRow := map[int]int{}
	for _, a := range f.Schedule() {
		perRow[a.Row]++
		assert.GreaterOrEqual(t, a.Offset, a.Row)
		assert.LessOrEqual(t, a.Delay, 700*time.Millisecond)
	}
	want := map[int]int{0: 15, 1: 13, 2: 11, 3: 9, 4: 7, 5: 5, 6: 3, 7: 1}
	assert.Empty(t, cmp.Diff(want, perRow))
}

func TestWrappedColumnsDeduplicate(t *testing.T) {
	f := NewField(clock.NewScheduler(), WithRings(1, 4), WithReach(3))
	require.True(t, f.Trigger(0, 0))

	got := map[int]int{}
	for _, a := range f.Schedule() {
		got[a.Col] = a.Offset
	}
	assert.Empty(t, cmp.Diff(map[int]int{0: 0, 1: 1, 2: 2, 3: 1}, got))
}

func TestResetCancelsPending(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, WithRings(1, 25))
	require.True(t, f.Trigger(0, 5))
	sched.Advance(250 * time.Millisecond)
	require.NotEmpty(t, f.ActiveItems())

	f.Reset()
	assert.Zero(t, sched.Pending())
	assert.Empty(t, f.ActiveItems())
	assert.True(t, f.Trigger(0, 5))
}

func TestSphereLayout(t *testing.T) {
	tiles, rows, cols := SphereLayout(10, 48, 36)
	require.Equal(t, 23, rows)
	require.Equal(t, 36, cols)
	require.Len(t, tiles, rows*cols)
	for _, id := range []int{0, 100, 405, len(tiles) - 1} {
		p := tiles[id].Position
		assert.InDelta(t, 10, r3.Norm(p), 1e-9)
		facing := tiles[id].Rotation.Rotate(r3.Vec{Z: 1})
		assert.True(t, common.NearlyEqual(r3.Unit(r3.Scale(-1, p)), facing, 1e-9), "tile %d faces the center", id)
	}
	// Row 11 sits on the equator; column 9 is at +Z.
	assert.True(t, common.NearlyEqual(r3.Vec{Z: 10}, tiles[11*36+9].Position, 1e-9))
}

func TestBoundFieldHoverAndSpin(t *testing.T) {
	g := scene.NewGraph()
	group := g.AddGroup(scene.Root)
	tiles, rows, cols := SphereLayout(10, 48, 36)
	handles := make([]scene.Handle, len(tiles))
	for i, tr := range tiles {
		handles[i] = g.AddNode(group, tr, 0.3)
	}

	sched := clock.NewScheduler()
	f := NewField(sched,
		WithRings(rows, cols),
		WithNodes(g, handles),
		WithSpin(group, r3.Vec{X: 0.2, Y: 1}, 0.001),
	)

	ray := common.Ray{Origin: r3.Vec{Z: 30}, Direction: r3.Vec{Z: -1}}
	require.True(t, f.Hover(ray))
	front := 11*36 + 9
	assert.Equal(t, front, f.Schedule()[0].ItemID)
	assert.False(t, f.Hover(ray), "hovering the active tile again is ignored")

	sched.Advance(0)
	f.Tick()
	moved := g.LocalTransform(handles[front])
	assert.InDelta(t, 10+15.5*DefaultMove, moved.Position.Z, 1e-12)
	assert.InDelta(t, 1+15.5*DefaultScaleStep, moved.Scale.X, 1e-12)
	assert.InDelta(t, 100-15.5/80, g.Uniform(handles[front], "lightness"), 1e-12)

	assert.InDelta(t, 0.001, common.RotationAngle(g.LocalTransform(group).Rotation), 1e-9)
}
