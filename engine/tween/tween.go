package tween

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
)

// ID identifies a tween started on a Tweener.
type ID uint64

// Tween describes a single scalar tween.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Delay    time.Duration
	Ease     EaseFunc

	// OnStart runs when the delay elapses, before the first OnUpdate.
	OnStart func()

	// OnUpdate receives every interpolated value, including From at start and To at completion.
	OnUpdate func(v float64)

	// OnComplete runs once after the final OnUpdate.
	OnComplete func()
}

// Tweener runs delayed, eased scalar tweens on a frame scheduler.
// Starting and completing are scheduler callbacks, so they run between frames;
// Update only pushes intermediate values.
type Tweener interface {
	// Start schedules a tween. Exactly one scheduler callback is pending per tween until it starts.
	//
	// Parameters:
	//   - def: the tween description
	//
	// Returns:
	//   - ID: handle for Cancel
	Start(def Tween) ID

	// Update pushes the current interpolated value of every running tween.
	// Call once per frame.
	Update()

	// Cancel stops a tween without running OnComplete. Returns false if it was not live.
	Cancel(id ID) bool

	// Active returns the number of tweens waiting to start or running.
	Active() int
}

type tweenState struct {
	def     Tween
	timer   clock.TimerID
	started bool
	startAt time.Duration
}

type tweenerImpl struct {
	sched  clock.Scheduler
	nextID ID
	live   map[ID]*tweenState
}

var _ Tweener = &tweenerImpl{}

// NewTweener creates a Tweener driven by sched. Panics if sched is nil.
func NewTweener(sched clock.Scheduler) Tweener {
	if sched == nil {
		panic("tween: NewTweener requires a non-nil Scheduler")
	}
	return &tweenerImpl{
		sched: sched,
		live:  make(map[ID]*tweenState),
	}
}

func (tw *tweenerImpl) Start(def Tween) ID {
	if def.Ease == nil {
		def.Ease = Linear
	}
	if def.Duration < 0 {
		def.Duration = 0
	}
	tw.nextID++
	id := tw.nextID
	st := &tweenState{def: def}
	tw.live[id] = st
	st.timer = tw.sched.After(def.Delay, func() {
		tw.begin(id, st)
	})
	return id
}

func (tw *tweenerImpl) begin(id ID, st *tweenState) {
	st.started = true
	st.startAt = tw.sched.Now()
	if st.def.OnStart != nil {
		st.def.OnStart()
	}
	if st.def.OnUpdate != nil {
		st.def.OnUpdate(st.def.From)
	}
	st.timer = tw.sched.After(st.def.Duration, func() {
		tw.finish(id, st)
	})
}

func (tw *tweenerImpl) finish(id ID, st *tweenState) {
	delete(tw.live, id)
	st.timer = 0
	if st.def.OnUpdate != nil {
		st.def.OnUpdate(st.def.To)
	}
	if st.def.OnComplete != nil {
		st.def.OnComplete()
	}
}

func (tw *tweenerImpl) Update() {
	now := tw.sched.Now()
	for _, st := range tw.live {
		if !st.started || st.def.OnUpdate == nil || st.def.Duration == 0 {
			continue
		}
		p := common.Clamp(float64(now-st.startAt)/float64(st.def.Duration), 0, 1)
		st.def.OnUpdate(common.Lerp(st.def.From, st.def.To, st.def.Ease(p)))
	}
}

func (tw *tweenerImpl) Cancel(id ID) bool {
	st, ok := tw.live[id]
	if !ok {
		return false
	}
	if st.timer != 0 {
		tw.sched.Cancel(st.timer)
	}
	delete(tw.live, id)
	return true
}

func (tw *tweenerImpl) Active() int {
	return len(tw.live)
}
