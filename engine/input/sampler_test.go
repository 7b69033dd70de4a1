package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
)

func TestSamplerZeroBeforeInput(t *testing.T) {
	s := NewSampler(clock.NewScheduler())
	got := s.Sample()
	assert.Zero(t, got.Velocity)
	assert.Equal(t, 1.0, got.Direction)
	assert.False(t, got.Active)
}

func TestSamplerEventAndTimeout(t *testing.T) {
	sched := clock.NewScheduler()
	s := NewSampler(sched, WithTimeout(50*time.Millisecond))

	s.OnEvent(-12, sched.Now())
	got := s.Sample()
	assert.Equal(t, 12.0, got.Velocity)
	assert.Equal(t, -1.0, got.Direction)
	assert.True(t, got.Active)

	sched.Advance(49 * time.Millisecond)
	assert.True(t, s.Sample().Active)
	sched.Advance(time.Millisecond)
	assert.False(t, s.Sample().Active)
	assert.Equal(t, 12.0, s.Sample().Velocity, "timeout keeps the last velocity")
}

func TestSamplerRearmKeepsSingleTimer(t *testing.T) {
	sched := clock.NewScheduler()
	s := NewSampler(sched, WithTimeout(50*time.Millisecond))

	for i := 0; i < 5; i++ {
		s.OnEvent(3, sched.Now())
		assert.Equal(t, 1, sched.Pending())
		sched.Advance(40 * time.Millisecond)
		assert.True(t, s.Sample().Active, "event %d should have extended the timeout", i)
	}
	sched.Advance(10 * time.Millisecond)
	assert.False(t, s.Sample().Active)
	assert.Zero(t, sched.Pending())
}

func TestSamplerHoldRelease(t *testing.T) {
	sched := clock.NewScheduler()
	s := NewSampler(sched)

	s.OnEvent(4, 0)
	s.Hold(50, -1)
	assert.Zero(t, sched.Pending(), "hold cancels the inactivity timer")
	sched.Advance(time.Second)
	assert.Equal(t, Sample{Velocity: 50, Direction: -1, Active: true, LastEvent: 0}, s.Sample())

	s.Release()
	assert.False(t, s.Sample().Active)
	assert.Zero(t, s.Sample().Velocity)
}

func TestSamplerDeactivate(t *testing.T) {
	sched := clock.NewScheduler()
	s := NewSampler(sched)
	s.OnEvent(7, 0)
	s.Deactivate()
	assert.False(t, s.Sample().Active)
	assert.Equal(t, 7.0, s.Sample().Velocity)
	assert.Zero(t, sched.Pending())
}

func TestPointerNormalisation(t *testing.T) {
	x, y := NormalizePointer(0, 0, 200, 100)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 1.0, y)

	x, y = NormalizePointer(100, 50, 200, 100)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	cx, cy := CenteredPointer(200, 100, 200, 100)
	assert.Equal(t, 0.5, cx)
	assert.Equal(t, 0.5, cy)

	x, y = NormalizePointer(10, 10, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestTapDetector(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		duration time.Duration
		want     bool
	}{
		{"quick and still", 2, 3, 120 * time.Millisecond, true},
		{"too slow", 0, 0, 300 * time.Millisecond, false},
		{"moved too far", 8, 8, 50 * time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d TapDetector
			d.Begin(100, 100, time.Second)
			assert.Equal(t, tt.want, d.End(100+tt.dx, 100+tt.dy, time.Second+tt.duration))
		})
	}

	t.Run("end without begin", func(t *testing.T) {
		var d TapDetector
		assert.False(t, d.End(0, 0, 0))
	})
}

func TestDragTracker(t *testing.T) {
	var d DragTracker

	_, _, ok := d.Move(10, 10)
	assert.False(t, ok, "hover moves are not drags")

	d.Press()
	_, _, ok = d.Move(12, 10)
	assert.False(t, ok, "the first position after a press only anchors the drag")

	dx, dy, ok := d.Move(15, 6)
	assert.True(t, ok)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -4.0, dy)

	d.Release()
	assert.False(t, d.Pressed())
	_, _, ok = d.Move(20, 6)
	assert.False(t, ok)
}
