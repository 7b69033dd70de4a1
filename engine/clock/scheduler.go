package clock

import (
	"container/heap"
	"slices"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

// Scheduler is a cancellable callback scheduler driven by frame time.
// Time only moves when Advance is called, so every callback runs between frames on the
// goroutine that drives the frame loop. Implementations are not safe for concurrent use.
type Scheduler interface {
	// Now returns the scheduler's current time.
	//
	// Returns:
	//   - time.Duration: elapsed virtual time since the scheduler was created
	Now() time.Duration

	// After schedules fn to run once delay has elapsed. Negative delays are treated as zero.
	//
	// Parameters:
	//   - delay: how long to wait before running fn
	//   - fn: the callback
	//
	// Returns:
	//   - TimerID: handle for Cancel
	After(delay time.Duration, fn func()) TimerID

	// Cancel removes a pending callback. Returns false if it already fired or was cancelled.
	Cancel(id TimerID) bool

	// Advance moves time forward by dt and runs every callback that falls due, in deadline order.
	// Callbacks scheduled by a running callback also run if they fall due within dt.
	//
	// Parameters:
	//   - dt: the elapsed frame time
	//
	// Returns:
	//   - int: number of callbacks that ran
	Advance(dt time.Duration) int

	// Pending returns the number of callbacks waiting to run.
	Pending() int

	// PendingDelays returns the remaining delay of every pending callback in firing order.
	PendingDelays() []time.Duration
}

type timer struct {
	id       TimerID
	deadline time.Duration
	seq      uint64
	fn       func()
	index    int
}

// timerQueue orders timers by deadline, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

type frameScheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	queue  timerQueue
	timers map[TimerID]*timer
}

var _ Scheduler = &frameScheduler{}

// NewScheduler creates a Scheduler whose clock starts at zero.
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler() Scheduler {
	return &frameScheduler{
		timers: make(map[TimerID]*timer),
	}
}

func (s *frameScheduler) Now() time.Duration {
	return s.now
}

func (s *frameScheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &timer{
		id:       s.nextID,
		deadline: s.now + delay,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.timers[t.id] = t
	return t.id
}

func (s *frameScheduler) Cancel(id TimerID) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.timers, id)
	return true
}

func (s *frameScheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0
	for len(s.queue) > 0 && s.queue[0].deadline <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.timers, t.id)
		// Callbacks observe their own deadline as the current time.
		s.now = max(s.now, t.deadline)
		if t.fn != nil {
			t.fn()
		}
		fired++
	}
	s.now = target
	return fired
}

func (s *frameScheduler) Pending() int {
	return len(s.queue)
}

func (s *frameScheduler) PendingDelays() []time.Duration {
	ordered := slices.Clone(s.queue)
	slices.SortFunc(ordered, func(a, b *timer) int {
		if a.deadline != b.deadline {
			if a.deadline < b.deadline {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})
	delays := make([]time.Duration, len(ordered))
	for i, t := range ordered {
		delays[i] = t.deadline - s.now
	}
	return delays
}
