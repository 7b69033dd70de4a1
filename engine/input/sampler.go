package input

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
)

// Inactivity timeouts used by the different input sources.
const (
	WheelTimeout   = 50 * time.Millisecond
	PointerTimeout = 200 * time.Millisecond
	TouchTimeout   = 500 * time.Millisecond
	ScrollTimeout  = 600 * time.Millisecond
)

// Sample is a snapshot of one input source.
type Sample struct {
	// Velocity is the magnitude of the most recent event delta.
	Velocity float64

	// Direction is -1 or +1, the sign of the most recent event delta.
	Direction float64

	// Active is true from an event until the inactivity timer fires.
	Active bool

	// LastEvent is the timestamp of the most recent event.
	LastEvent time.Duration
}

// Sampler turns raw deltas from one input source into a velocity and direction signal
// that goes inactive when events stop arriving.
type Sampler interface {
	// OnEvent records a delta from the input source and rearms the inactivity timer.
	// Any previously armed timer is cancelled, so at most one is alive.
	//
	// Parameters:
	//   - delta: the signed event delta
	//   - at: the event timestamp
	OnEvent(delta float64, at time.Duration)

	// Hold marks the source active at a fixed velocity until Release is called.
	// Used for held keys, which have no natural event stream.
	//
	// Parameters:
	//   - velocity: the held velocity
	//   - direction: the held direction (sign is taken)
	Hold(velocity, direction float64)

	// Release clears velocity and marks the source inactive.
	Release()

	// Deactivate marks the source inactive without touching velocity or direction.
	Deactivate()

	// Sample returns the current snapshot. Before any input it returns the zero velocity
	// with direction +1.
	Sample() Sample

	// Timeout returns the inactivity timeout.
	Timeout() time.Duration
}

type samplerImpl struct {
	sched   clock.Scheduler
	timeout time.Duration

	velocity  float64
	direction float64
	active    bool
	lastEvent time.Duration

	timer clock.TimerID
}

var _ Sampler = &samplerImpl{}

// NewSampler creates a Sampler whose inactivity timer runs on sched.
// Panics if sched is nil.
//
// Parameters:
//   - sched: the scheduler used for the inactivity timer
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the new sampler
func NewSampler(sched clock.Scheduler, options ...SamplerBuilderOption) Sampler {
	if sched == nil {
		panic("input: NewSampler requires a non-nil Scheduler")
	}
	s := &samplerImpl{
		sched:     sched,
		timeout:   WheelTimeout,
		direction: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *samplerImpl) OnEvent(delta float64, at time.Duration) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	s.velocity = math.Abs(delta)
	s.direction = common.Sign(delta)
	s.active = true
	s.lastEvent = at
	s.cancelTimer()
	s.timer = s.sched.After(s.timeout, func() {
		s.timer = 0
		s.active = false
	})
}

func (s *samplerImpl) Hold(velocity, direction float64) {
	s.cancelTimer()
	s.velocity = math.Abs(velocity)
	s.direction = common.Sign(direction)
	s.active = true
	s.lastEvent = s.sched.Now()
}

func (s *samplerImpl) Release() {
	s.cancelTimer()
	s.velocity = 0
	s.active = false
}

func (s *samplerImpl) Deactivate() {
	s.cancelTimer()
	s.active = false
}

func (s *samplerImpl) Sample() Sample {
	return Sample{
		Velocity:  s.velocity,
		Direction: s.direction,
		Active:    s.active,
		LastEvent: s.lastEvent,
	}
}

func (s *samplerImpl) Timeout() time.Duration {
	return s.timeout
}

func (s *samplerImpl) cancelTimer() {
	if s.timer != 0 {
		s.sched.Cancel(s.timer)
		s.timer = 0
	}
}
