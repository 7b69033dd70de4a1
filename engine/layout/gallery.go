package layout

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/cull"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/tween"
)

// Uniform names written by the gallery.
const (
	UniformThreshold = "threshold"
	UniformOpacity   = "opacity"
	UniformHover     = "hover"
)

// Gallery defaults.
const (
	DefaultPlaneWidth  = 10
	DefaultPlaneHeight = 10.0 * 1080 / 1920
	DefaultSegments    = 16
	DefaultStagger     = 50 * time.Millisecond
	DefaultDuration    = 900 * time.Millisecond
	DefaultHoverTime   = 500 * time.Millisecond
	DefaultFovY        = 60.0
	DefaultWaveAmount  = 0.05
)

// Item is one tracked gallery plane.
type Item struct {
	Index  int
	Handle scene.Handle

	// Mode is the layout the item is currently placed in.
	Mode Mode

	Spiral  Placement
	Horizon Placement

	// Line and Column locate the item in the horizon layout.
	Line   int
	Column int

	// View carries the world position and in-view flag maintained by the culler.
	View *cull.Item
}

// Gallery switches a set of planes between a spiral and a horizon layout. A transition starts
// when a boundary item of the current layout comes into view, hides every item with a staggered
// delay, moves them into the other layout and shows them again. Only one transition runs at a
// time.
type Gallery interface {
	// Items returns the tracked items in stagger order.
	Items() []*Item

	// Views returns the cull records of every item, for Culler.UpdateAll.
	Views() []*cull.Item

	// Handles returns the item nodes, for hit-testing.
	Handles() []scene.Handle

	// Mode returns the current global mode.
	Mode() Mode

	// Phase returns the choreography phase.
	Phase() Phase

	// Changing reports whether a transition holds the lock.
	Changing() bool

	// Transition returns the in-flight transition, if any.
	Transition() (Transition, bool)

	// Setup runs the first placement into mode with instant hides. Ignored while changing.
	//
	// Parameters:
	//   - mode: the starting layout
	//
	// Returns:
	//   - bool: true if the setup was scheduled
	Setup(mode Mode) bool

	// Observe checks the boundary items of the current layout after culling and starts a
	// transition when one is in view. It does nothing while a transition holds the lock.
	//
	// Returns:
	//   - bool: true if a transition started
	Observe() bool

	// Advance moves the layout groups by one frame of scroll.
	//
	// Parameters:
	//   - speed: the current scroll speed
	//   - direction: -1 or +1
	Advance(speed, direction float64)

	// Deform writes the speed-dependent vertex wave for in-view horizon items.
	// Call after culling so world positions are current.
	Deform(speed, direction float64)

	// Hover cross-fades the hover uniform from the previous target to hit.
	//
	// Parameters:
	//   - hit: the hovered item node
	//   - ok: false when nothing is hovered
	Hover(hit scene.Handle, ok bool)

	// Pointer moves the spot light to follow the pointer in normalized device coordinates.
	Pointer(ndcX, ndcY float64)

	// Update pushes running tween values. Call once per frame.
	Update()

	// SetViewport records the viewport size used for camera distance and bounds.
	SetViewport(width, height float64)

	// CameraDistance returns the camera distance for the current mode and viewport.
	CameraDistance() float64

	// Bounds returns the visible bounds for the current mode and viewport.
	Bounds() common.Bounds

	// Lights returns the spot and directional light nodes.
	Lights() (spot, directional scene.Handle)

	// Events drains the events emitted since the last call.
	Events() []Event
}

type galleryImpl struct {
	graph  scene.Graph
	sched  clock.Scheduler
	tw     tween.Tweener
	culler cull.Culler

	count      int
	width      float64
	height     float64
	segments   int
	spiralCfg  SpiralConfig
	horizonCfg HorizonConfig
	stagger    time.Duration
	duration   time.Duration
	hoverTime  time.Duration
	ease       tween.EaseFunc
	fovY       float64
	waveAmount float64
	viewW      float64
	viewH      float64

	items   []*Item
	views   []*cull.Item
	handles []scene.Handle

	spiralGroup scene.Handle
	spiralAngle float64
	spiralRise  float64
	lineWraps   []scene.Handle
	lines       []scene.Handle
	lineShift   []float64
	spot        scene.Handle
	directional scene.Handle

	spiralStart, spiralEnd   int
	horizonStart, horizonEnd int

	mode        Mode
	phase       Phase
	current     *Transition
	outstanding int
	events      []Event

	hovered     scene.Handle
	hovering    bool
	hoverTweens map[scene.Handle]tween.ID
}

var _ Gallery = &galleryImpl{}

// NewGallery builds a gallery of count planes in graph. Item nodes, layout groups and the two
// lights are created immediately; nothing is placed until Setup.
//
// Parameters:
//   - graph: the scene graph to build into
//   - sched: scheduler driving the show and hide tweens
//   - count: number of items
//   - options: functional options to configure the gallery
//
// Returns:
//   - Gallery: the new gallery
func NewGallery(graph scene.Graph, sched clock.Scheduler, count int, options ...GalleryBuilderOption) Gallery {
	if graph == nil || sched == nil {
		panic("layout: NewGallery requires a graph and a scheduler")
	}
	if count <= 0 {
		panic("layout: NewGallery requires at least one item")
	}
	g := &galleryImpl{
		graph:       graph,
		sched:       sched,
		count:       count,
		width:       DefaultPlaneWidth,
		height:      DefaultPlaneHeight,
		segments:    DefaultSegments,
		spiralCfg:   DefaultSpiral,
		horizonCfg:  DefaultHorizon,
		stagger:     DefaultStagger,
		duration:    DefaultDuration,
		hoverTime:   DefaultHoverTime,
		ease:        tween.Power2Out,
		fovY:        common.Radians(DefaultFovY),
		waveAmount:  DefaultWaveAmount,
		viewW:       1920,
		viewH:       1080,
		hoverTweens: make(map[scene.Handle]tween.ID),
	}
	for _, option := range options {
		option(g)
	}
	if g.tw == nil {
		g.tw = tween.NewTweener(sched)
	}
	g.horizonCfg.Lines = max(g.horizonCfg.Lines, 1)
	g.build()
	return g
}

func (g *galleryImpl) build() {
	g.spiralGroup = g.graph.AddGroup(scene.Root)
	for i := 0; i < g.horizonCfg.Lines; i++ {
		wrap := g.graph.AddGroup(scene.Root)
		t := common.IdentityTransform()
		t.Position.Y = LineOffsetY(g.horizonCfg, g.height, i)
		t.Rotation = common.EulerXYZ(0, 0, common.Radians(g.horizonCfg.InclinationDeg))
		g.graph.SetLocalTransform(wrap, t)
		g.lineWraps = append(g.lineWraps, wrap)
		g.lines = append(g.lines, g.graph.AddGroup(wrap))
	}
	g.lineShift = make([]float64, len(g.lines))

	g.spot = g.graph.AddNode(scene.Root, at(r3.Vec{Z: 50}), 0)
	g.directional = g.graph.AddNode(scene.Root, at(r3.Vec{Z: 10}), 0)
	g.graph.SetVisible(g.spot, false)
	g.graph.SetVisible(g.directional, false)

	flat := PlaneVertices(g.width, g.height, g.segments)
	curved := CurveVertices(flat, g.spiralCfg.Distance)
	perLine := PerLine(g.horizonCfg, g.count)
	hitRadius := g.height / 2

	g.items = make([]*Item, g.count)
	g.views = make([]*cull.Item, g.count)
	g.handles = make([]scene.Handle, g.count)
	for i := range g.count {
		sp, sr := SpiralPosition(g.spiralCfg, i, g.count)
		line, col, hp := HorizonPosition(g.horizonCfg, g.width, i, g.count)
		h := g.graph.AddNode(scene.Root, common.IdentityTransform(), hitRadius)
		view := &cull.Item{Handle: h}
		g.items[i] = &Item{
			Index:   i,
			Handle:  h,
			Spiral:  Placement{Position: sp, Rotation: sr, Vertices: curved},
			Horizon: Placement{Position: hp, Rotation: common.IdentityRotation(), Vertices: flat},
			Line:    min(line, len(g.lines)-1),
			Column:  col,
			View:    view,
		}
		g.views[i] = view
		g.handles[i] = h
		g.graph.SetUniform(h, UniformOpacity, 0)
	}

	g.spiralStart, g.spiralEnd = 0, g.count-1
	g.horizonStart, g.horizonEnd = 0, min(perLine, g.count)-1
}

func at(p r3.Vec) common.Transform {
	t := common.IdentityTransform()
	t.Position = p
	return t
}

func (g *galleryImpl) Items() []*Item {
	return g.items
}

func (g *galleryImpl) Views() []*cull.Item {
	return g.views
}

func (g *galleryImpl) Handles() []scene.Handle {
	return g.handles
}

func (g *galleryImpl) Mode() Mode {
	return g.mode
}

func (g *galleryImpl) Phase() Phase {
	return g.phase
}

func (g *galleryImpl) Changing() bool {
	return g.current != nil
}

func (g *galleryImpl) Transition() (Transition, bool) {
	if g.current == nil {
		return Transition{}, false
	}
	return *g.current, true
}

func (g *galleryImpl) Setup(mode Mode) bool {
	if g.current != nil {
		common.Logf("[Layout] setup into %s ignored: transition %s in flight", mode, g.current.ID)
		return false
	}
	if mode != ModeHorizon {
		mode = ModeSpiral
	}
	g.begin(Transition{From: g.mode, To: mode, Boundary: BoundaryNone, Initial: true})
	return true
}

func (g *galleryImpl) Observe() bool {
	if g.current != nil || g.mode == ModeNone {
		return false
	}
	start, end := g.spiralStart, g.spiralEnd
	if g.mode == ModeHorizon {
		start, end = g.horizonStart, g.horizonEnd
	}
	var boundary Boundary
	switch {
	case g.views[end].InView:
		boundary = BoundaryEnd
	case g.views[start].InView:
		boundary = BoundaryStart
	default:
		return false
	}
	g.begin(Transition{From: g.mode, To: g.mode.Other(), Boundary: boundary})
	return true
}

// begin takes the lock and schedules a hide for every item.
func (g *galleryImpl) begin(tr Transition) {
	tr.ID = uuid.New()
	tr.Delay = g.stagger
	g.current = &tr
	g.phase = PhaseHiding
	g.outstanding = len(g.items)
	g.emit(EventTransitionStarted, g.mode)
	common.Logf("[Layout] transition %s: %s -> %s (%s boundary)", tr.ID, tr.From, tr.To, tr.Boundary)

	// The destination layout starts from its rest pose.
	if tr.To == ModeSpiral {
		g.spiralRise = 0
		g.writeSpiralGroup()
	} else {
		for i := range g.lines {
			g.lineShift[i] = 0
			g.graph.SetLocalTransform(g.lines[i], at(r3.Vec{}))
		}
	}

	delays := g.staggerDelays(!tr.Initial, tr.Boundary == BoundaryEnd)
	for i, item := range g.items {
		duration := time.Duration(0)
		if item.View.InView && !tr.Initial {
			duration = g.duration
		}
		g.tw.Start(tween.Tween{
			From:     g.graph.Uniform(item.Handle, UniformThreshold),
			To:       0,
			Duration: duration,
			Delay:    delays[i],
			Ease:     g.ease,
			OnUpdate: g.uniformSetter(item.Handle, UniformThreshold),
			OnComplete: func() {
				g.hidden(item, tr.To)
			},
		})
	}
}

// staggerDelays returns one delay per item. When counting, only in-view items advance the
// stagger index; reversed runs it from the last in-view item back to the first.
func (g *galleryImpl) staggerDelays(counting, reversed bool) []time.Duration {
	inView := 0
	if counting {
		for _, v := range g.views {
			if v.InView {
				inView++
			}
		}
	}
	out := make([]time.Duration, len(g.items))
	k := 0
	for i, v := range g.views {
		idx := k
		if reversed {
			idx = max(inView-1-k, 0)
		}
		out[i] = time.Duration(idx) * g.stagger
		if counting && v.InView {
			k++
		}
	}
	return out
}

// hidden moves a fully hidden item into the destination layout.
func (g *galleryImpl) hidden(item *Item, to Mode) {
	place, group := item.Spiral, g.spiralGroup
	if to == ModeHorizon {
		place, group = item.Horizon, g.lines[item.Line]
	}
	g.graph.Reparent(item.Handle, group)
	item.Mode = to
	for j, v := range place.Vertices {
		g.graph.SetVertexOffset(item.Handle, j, v)
	}
	g.graph.SetLocalTransform(item.Handle, place.Transform())
	g.graph.SetUniform(item.Handle, UniformOpacity, 0)

	g.outstanding--
	if g.outstanding == 0 {
		g.allHidden()
	}
}

func (g *galleryImpl) allHidden() {
	tr := g.current
	g.mode = tr.To
	g.graph.SetVisible(g.spot, g.mode == ModeSpiral)
	g.graph.SetVisible(g.directional, g.mode == ModeHorizon)
	g.emit(EventModeChanged, g.mode)
	g.refreshViews()

	g.phase = PhaseShowing
	g.outstanding = len(g.items)
	delays := g.staggerDelays(true, tr.Boundary != BoundaryEnd)
	for i, item := range g.items {
		h := item.Handle
		g.tw.Start(tween.Tween{
			From:     g.graph.Uniform(h, UniformThreshold),
			To:       1,
			Duration: g.duration,
			Delay:    delays[i],
			Ease:     g.ease,
			OnStart: func() {
				g.graph.SetUniform(h, UniformOpacity, 1)
			},
			OnUpdate:   g.uniformSetter(h, UniformThreshold),
			OnComplete: g.shown,
		})
	}
}

// refreshViews re-culls the items in their new layout when a culler is attached.
func (g *galleryImpl) refreshViews() {
	if g.culler == nil {
		return
	}
	g.culler.SetBounds(g.Bounds())
	g.culler.UpdateAll(g.graph, g.views)
}

func (g *galleryImpl) shown() {
	g.outstanding--
	if g.outstanding > 0 {
		return
	}
	id := g.current.ID
	g.emit(EventTransitionCompleted, g.mode)
	g.current = nil
	g.phase = PhaseStable
	common.Logf("[Layout] transition %s complete, mode %s", id, g.mode)
}

func (g *galleryImpl) emit(kind EventKind, mode Mode) {
	ev := Event{Kind: kind, Mode: mode}
	if g.current != nil {
		ev.Transition = g.current.ID
	}
	g.events = append(g.events, ev)
}

func (g *galleryImpl) uniformSetter(h scene.Handle, name string) func(float64) {
	return func(v float64) {
		g.graph.SetUniform(h, name, v)
	}
}

func (g *galleryImpl) Advance(speed, direction float64) {
	g.spiralAngle += speed * -0.001 * direction
	g.spiralRise += speed * 0.015 * direction
	g.writeSpiralGroup()
	for i, line := range g.lines {
		dir := 1.0
		if i%2 == 0 {
			dir = -1
		}
		g.lineShift[i] += speed * 0.015 * direction * dir
		g.graph.SetLocalTransform(line, at(r3.Vec{X: g.lineShift[i]}))
	}
}

func (g *galleryImpl) writeSpiralGroup() {
	t := at(r3.Vec{Y: g.spiralRise})
	t.Rotation = common.EulerXYZ(0, g.spiralAngle, 0)
	g.graph.SetLocalTransform(g.spiralGroup, t)
}

func (g *galleryImpl) Deform(speed, direction float64) {
	amp := direction * (speed - 1) * g.waveAmount
	for _, item := range g.items {
		if item.Mode != ModeHorizon || !item.View.InView {
			continue
		}
		wx := item.View.Position.X
		for j, v := range item.Horizon.Vertices {
			v.Z += amp * math.Cos((wx+v.X)/g.width*2)
			g.graph.SetVertexOffset(item.Handle, j, v)
		}
	}
}

func (g *galleryImpl) Hover(hit scene.Handle, ok bool) {
	if ok && g.hovering && hit == g.hovered {
		return
	}
	if g.hovering {
		g.fadeHover(g.hovered, 0)
	}
	g.hovered, g.hovering = hit, ok
	if ok {
		g.fadeHover(hit, 1)
	}
}

func (g *galleryImpl) fadeHover(h scene.Handle, to float64) {
	if id, ok := g.hoverTweens[h]; ok {
		g.tw.Cancel(id)
	}
	g.hoverTweens[h] = g.tw.Start(tween.Tween{
		From:     g.graph.Uniform(h, UniformHover),
		To:       to,
		Duration: g.hoverTime,
		Ease:     tween.Power1Out,
		OnUpdate: g.uniformSetter(h, UniformHover),
		OnComplete: func() {
			delete(g.hoverTweens, h)
		},
	})
}

func (g *galleryImpl) Pointer(ndcX, ndcY float64) {
	b := g.Bounds()
	t := g.graph.LocalTransform(g.spot)
	t.Position.X = ndcX * b.Right
	t.Position.Y = ndcY * b.Top
	g.graph.SetLocalTransform(g.spot, t)
}

func (g *galleryImpl) Update() {
	g.tw.Update()
}

func (g *galleryImpl) SetViewport(width, height float64) {
	if width > 0 && height > 0 {
		g.viewW, g.viewH = width, height
	}
}

func (g *galleryImpl) CameraDistance() float64 {
	if g.mode == ModeHorizon {
		return 13 * 1.5 * 1080 / g.viewH
	}
	return 15 * 2 * 1920 / g.viewW
}

func (g *galleryImpl) Bounds() common.Bounds {
	return common.VisibleBounds(g.CameraDistance(), g.fovY, g.viewW/g.viewH)
}

func (g *galleryImpl) Lights() (scene.Handle, scene.Handle) {
	return g.spot, g.directional
}

func (g *galleryImpl) Events() []Event {
	out := g.events
	g.events = nil
	return out
}
