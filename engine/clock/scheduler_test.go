package clock

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, func() { order = append(order, "b") })

	assert.Equal(t, 0, s.Advance(5*time.Millisecond))
	assert.Equal(t, 2, s.Advance(10*time.Millisecond))
	assert.Equal(t, 1, s.Advance(20*time.Millisecond))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 35*time.Millisecond, s.Now())
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(50*time.Millisecond, func() { fired = true })

	require.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id), "second cancel reports nothing removed")
	s.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, s.Pending())
}

func TestSchedulerNestedCallbacks(t *testing.T) {
	s := NewScheduler()
	var seen []time.Duration
	s.After(10*time.Millisecond, func() {
		seen = append(seen, s.Now())
		s.After(5*time.Millisecond, func() { seen = append(seen, s.Now()) })
		s.After(50*time.Millisecond, func() { seen = append(seen, s.Now()) })
	})

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, seen)
	assert.Equal(t, 1, s.Pending())
}

func TestSchedulerPendingDelays(t *testing.T) {
	s := NewScheduler()
	s.After(20*time.Millisecond, nil)
	s.After(-time.Second, nil)
	s.After(10*time.Millisecond, nil)
	s.Advance(5 * time.Millisecond)

	// The negative delay was clamped to zero and fired on the first advance.
	want := []time.Duration{5 * time.Millisecond, 15 * time.Millisecond}
	if diff := cmp.Diff(want, s.PendingDelays()); diff != "" {
		t.Errorf("PendingDelays mismatch (-want +got):\n%s", diff)
	}
}
