package pulse

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// Defaults for a wave field.
const (
	DefaultReach     = 7
	DefaultStepDelay = 100 * time.Millisecond
	DefaultLifetime  = 30
	DefaultMove      = 0.0008
	DefaultFalloff   = 0.0001
	DefaultScaleStep = 0.00004
)

// HSL is a colour in degrees and percent.
type HSL struct {
	H float64
	S float64
	L float64
}

// BaseColor is the resting tile colour.
var BaseColor = HSL{H: 180, S: 100, L: 100}

// Effect is one queued activation on an item.
type Effect struct {
	// Age counts ticks since the effect was queued.
	Age int

	// Offset is the ring distance from the pulse origin; farther effects move less.
	Offset int
}

// ItemState is the decoration of a single tile.
type ItemState struct {
	// Displacement is the distance moved along the outward normal.
	Displacement float64
	Scale        float64
	Color        HSL

	// Active is set on the tile a pulse was triggered from until its queue drains.
	Active bool
}

// Activation is one scheduled effect produced by a trigger.
type Activation struct {
	ItemID int
	Row    int
	Col    int
	Delay  time.Duration
	Offset int
}

// Field runs expanding wave pulses over rows of tiles that wrap around horizontally.
type Field interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of tiles per row.
	Cols() int

	// Trigger starts a pulse at (row, col). It is ignored while that tile is still active
	// from an earlier pulse.
	//
	// Parameters:
	//   - row: origin row
	//   - col: origin column
	//
	// Returns:
	//   - bool: true if a pulse was scheduled
	Trigger(row, col int) bool

	// Hover hit-tests ray against the bound tiles and triggers a pulse at the nearest hit.
	// Returns false without a bound graph.
	Hover(ray common.Ray) bool

	// Schedule returns the activations of the most recent accepted trigger, ordered by delay.
	Schedule() []Activation

	// Tick advances every queued effect by one frame and writes bound tiles.
	Tick()

	// Item returns the decoration of tile id.
	Item(id int) ItemState

	// QueueLen returns how many effects are queued on tile id.
	QueueLen(id int) int

	// ActiveItems returns the ids of tiles with queued effects, ascending.
	ActiveItems() []int

	// Reset cancels pending activations and returns every tile to baseline.
	Reset()
}

type fieldImpl struct {
	sched clock.Scheduler

	rows, cols int
	reach      int
	stepDelay  time.Duration
	lifetime   int
	move       float64
	falloff    float64
	scaleStep  float64
	base       HSL

	items    []ItemState
	queues   map[int][]Effect
	pending  map[clock.TimerID]struct{}
	schedule []Activation

	graph     scene.Graph
	handles   []scene.Handle
	byHandle  map[scene.Handle]int
	rest      []common.Transform
	spinGroup scene.Handle
	spin      r3.Rotation
	spinning  bool
}

var _ Field = &fieldImpl{}

// NewField creates a wave field. Panics if sched is nil or the ring size is not positive.
//
// Parameters:
//   - sched: scheduler used for the propagation delays
//   - options: functional options to configure the field
//
// Returns:
//   - Field: the new field
func NewField(sched clock.Scheduler, options ...FieldBuilderOption) Field {
	if sched == nil {
		panic("pulse: NewField requires a non-nil Scheduler")
	}
	f := &fieldImpl{
		sched:     sched,
		rows:      1,
		reach:     DefaultReach,
		stepDelay: DefaultStepDelay,
		lifetime:  DefaultLifetime,
		move:      DefaultMove,
		falloff:   DefaultFalloff,
		scaleStep: DefaultScaleStep,
		base:      BaseColor,
		queues:    make(map[int][]Effect),
		pending:   make(map[clock.TimerID]struct{}),
	}
	for _, option := range options {
		option(f)
	}
	if f.rows <= 0 || f.cols <= 0 {
		panic("pulse: NewField requires a positive ring size")
	}

	f.items = make([]ItemState, f.rows*f.cols)
	for i := range f.items {
		f.items[i] = f.baseline()
	}
	f.spinning = f.spinning && f.graph != nil
	if f.graph != nil {
		f.byHandle = make(map[scene.Handle]int, len(f.handles))
		f.rest = make([]common.Transform, len(f.handles))
		for id, h := range f.handles {
			f.byHandle[h] = id
			f.rest[id] = f.graph.LocalTransform(h)
		}
	}
	return f
}

func (f *fieldImpl) baseline() ItemState {
	return ItemState{Scale: 1, Color: f.base}
}

func (f *fieldImpl) Rows() int {
	return f.rows
}

func (f *fieldImpl) Cols() int {
	return f.cols
}

func (f *fieldImpl) id(row, col int) int {
	return row*f.cols + col
}

func (f *fieldImpl) Trigger(row, col int) bool {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return false
	}
	origin := f.id(row, col)
	if f.items[origin].Active {
		return false
	}
	f.items[origin].Active = true

	f.schedule = f.schedule[:0]
	f.wave(row, col, 0)
	for i := 1; i <= f.reach; i++ {
		f.wave(row-i, col, i)
		f.wave(row+i, col, i)
	}
	slices.SortStableFunc(f.schedule, func(a, b Activation) int {
		if a.Delay != b.Delay {
			return cmpDuration(a.Delay, b.Delay)
		}
		return a.ItemID - b.ItemID
	})
	return true
}

func cmpDuration(a, b time.Duration) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// wave schedules the activations of one row that lies rowOffset rows from the origin.
// Columns spread both ways around the ring until the combined distance exceeds the reach.
func (f *fieldImpl) wave(row, center, rowOffset int) {
	if row < 0 || row >= f.rows {
		return
	}
	seen := make(map[int]struct{}, 2*(f.reach-rowOffset)+1)
	for k := 0; k <= f.reach-rowOffset; k++ {
		for _, c := range [2]int{center - k, center + k} {
			c = ((c % f.cols) + f.cols) % f.cols
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			f.activate(row, c, rowOffset+k)
		}
	}
}

func (f *fieldImpl) activate(row, col, distance int) {
	id := f.id(row, col)
	delay := time.Duration(distance) * f.stepDelay
	f.schedule = append(f.schedule, Activation{ItemID: id, Row: row, Col: col, Delay: delay, Offset: distance})

	var timer clock.TimerID
	timer = f.sched.After(delay, func() {
		delete(f.pending, timer)
		f.queues[id] = append(f.queues[id], Effect{Offset: distance})
	})
	f.pending[timer] = struct{}{}
}

func (f *fieldImpl) Hover(ray common.Ray) bool {
	if f.graph == nil {
		return false
	}
	hit, ok := f.graph.Intersect(ray, f.handles)
	if !ok {
		return false
	}
	id, ok := f.byHandle[hit.Handle]
	if !ok {
		return false
	}
	return f.Trigger(id/f.cols, id%f.cols)
}

func (f *fieldImpl) Schedule() []Activation {
	return slices.Clone(f.schedule)
}

// phase is the signed step of an effect at age. Over ages 1..lifetime the steps sum to zero,
// so a finished effect leaves no net displacement.
func (f *fieldImpl) phase(age int) float64 {
	return float64(f.lifetime+1)/2 - float64(age)
}

func (f *fieldImpl) Tick() {
	if f.spinning {
		t := f.graph.LocalTransform(f.spinGroup)
		t.Rotation = common.Compose(f.spin, t.Rotation)
		f.graph.SetLocalTransform(f.spinGroup, t)
	}

	for id, queue := range f.queues {
		st := &f.items[id]
		kept := queue[:0]
		for _, e := range queue {
			e.Age++
			if e.Age > f.lifetime {
				continue
			}
			p := f.phase(e.Age)
			st.Displacement += p * (f.move - float64(e.Offset)*f.falloff)
			st.Scale += f.scaleStep * p
			st.Color.H += p / 30
			st.Color.L = common.Clamp(st.Color.L-p/80, 70, 100)
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(f.queues, id)
			*st = f.baseline()
		} else {
			f.queues[id] = kept
		}
		f.write(id)
	}
}

// write pushes the decoration of id to the bound graph.
func (f *fieldImpl) write(id int) {
	if f.graph == nil || id >= len(f.handles) {
		return
	}
	st := f.items[id]
	rest := f.rest[id]
	normal := common.SafeUnit(rest.Position, r3.Vec{Y: 1})
	t := rest
	t.Position = r3.Add(rest.Position, r3.Scale(st.Displacement, normal))
	t.Scale = r3.Scale(st.Scale, rest.Scale)
	h := f.handles[id]
	f.graph.SetLocalTransform(h, t)
	f.graph.SetUniform(h, "hue", st.Color.H)
	f.graph.SetUniform(h, "saturation", st.Color.S)
	f.graph.SetUniform(h, "lightness", st.Color.L)
}

func (f *fieldImpl) Item(id int) ItemState {
	if id < 0 || id >= len(f.items) {
		return f.baseline()
	}
	return f.items[id]
}

func (f *fieldImpl) QueueLen(id int) int {
	return len(f.queues[id])
}

func (f *fieldImpl) ActiveItems() []int {
	out := make([]int, 0, len(f.queues))
	for id := range f.queues {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (f *fieldImpl) Reset() {
	for timer := range f.pending {
		f.sched.Cancel(timer)
	}
	clear(f.pending)
	for id := range f.queues {
		delete(f.queues, id)
		f.items[id] = f.baseline()
		f.write(id)
	}
	for i := range f.items {
		f.items[i].Active = false
	}
	f.schedule = f.schedule[:0]
}
