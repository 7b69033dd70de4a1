package rig

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// Carousel uniform names.
const (
	UniformHover   = "hover"
	UniformOpacity = "opacity"
)

// Carousel is a cylinder of image planes. Without input it turns slowly on its own; scrolling
// and pointer movement blend in a wheel-driven turn, a pointer-driven turn and a small tilt.
// Scrolling also slides the cylinder vertically within the viewport.
type Carousel interface {
	Rig
	ScrollListener
	PointerListener

	// Hover marks the plane hit by ray and clears the previous one.
	//
	// Parameters:
	//   - ray: the pointer ray
	//
	// Returns:
	//   - bool: true if a plane is hovered
	Hover(ray common.Ray) bool

	// Pick returns the index of the plane hit by ray.
	//
	// Parameters:
	//   - ray: the pointer ray
	//
	// Returns:
	//   - int: row-major plane index
	//   - bool: false if no plane was hit
	Pick(ray common.Ray) (int, bool)

	// SetViewport rescales the planes for a viewport size.
	SetViewport(width, height float64)

	// Planes returns every plane handle in row-major order.
	Planes() []scene.Handle

	// TargetY returns the scroll target.
	TargetY() float64

	// PositionY returns the cylinder's vertical position.
	PositionY() float64

	// Rotation returns the cylinder's tilt and turn in radians.
	Rotation() (x, y float64)

	// Factor returns the input blend factor in [0, 1].
	Factor() float64
}

type carouselImpl struct {
	graph   scene.Graph
	sched   clock.Scheduler
	wheel   input.Sampler
	pointer input.Sampler
	blender motion.TransitionBlender

	rows, cols   int
	radius       float64
	height       float64
	rowSpacing   float64
	cameraZ      float64
	mobile       bool
	wheelScale   float64
	smoothY      float64
	smoothTurn   float64
	autoTurn     float64
	pointerTurn  float64
	pointerTilt  float64
	maxTilt      float64
	planeOpacity float64

	root    scene.Handle
	planes  []scene.Handle
	rests   []common.Transform
	hovered scene.Handle

	targetY    float64
	posY       float64
	rotX, rotY float64
	mouseX     float64
	mouseY     float64
	lastX      float64
	lastY      float64
}

var _ Carousel = &carouselImpl{}

// NewCarousel builds a rows x cols cylinder of planes under parent. Each plane sits just outside
// the cylinder wall facing outward.
// Panics if graph or sched is nil.
//
// Parameters:
//   - graph: the scene graph to build into
//   - sched: the scheduler driving the input inactivity timers
//   - parent: the parent group (scene.Root for top level)
//   - options: functional options to configure the carousel
//
// Returns:
//   - Carousel: the new carousel at rest
func NewCarousel(graph scene.Graph, sched clock.Scheduler, parent scene.Handle, options ...CarouselBuilderOption) Carousel {
	if graph == nil {
		panic("rig: NewCarousel requires a non-nil Graph")
	}
	if sched == nil {
		panic("rig: NewCarousel requires a non-nil Scheduler")
	}
	c := &carouselImpl{
		graph:        graph,
		sched:        sched,
		rows:         8,
		cols:         8,
		radius:       5,
		height:       20,
		rowSpacing:   20,
		cameraZ:      8,
		wheelScale:   0.001,
		smoothY:      0.1,
		smoothTurn:   0.06,
		autoTurn:     0.08,
		pointerTurn:  0.5 * 0.07,
		pointerTilt:  0.1 * 0.05,
		maxTilt:      math.Pi / 314,
		planeOpacity: 0.5,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.mobile {
		c.cameraZ = 12
		c.radius *= 0.7
		c.height *= 0.7
		c.rowSpacing *= 0.7
		c.wheelScale = 0.01
		c.planeOpacity = 0.8
	}
	c.wheel = input.NewSampler(sched, input.WithTimeout(input.TouchTimeout))
	c.pointer = input.NewSampler(sched, input.WithTimeout(input.PointerTimeout))
	if c.blender == nil {
		c.blender = motion.NewTransitionBlender()
	}
	c.build(parent)
	return c
}

func (c *carouselImpl) build(parent scene.Handle) {
	c.root = c.graph.AddGroup(parent)
	ring := c.radius + 0.1
	rowHeight := c.rowSpacing / float64(c.rows)
	for i := range c.rows {
		y := c.rowSpacing/2 - (float64(i)+0.5)*rowHeight
		for j := range c.cols {
			theta := float64(j) / float64(c.cols) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			t := common.IdentityTransform()
			t.Position = r3.Vec{X: cos * ring, Y: y, Z: sin * ring}
			t.Rotation = common.LookRotation(r3.Vec{X: cos, Z: sin}, r3.Vec{Y: 1})
			h := c.graph.AddNode(c.root, t, rowHeight/2)
			c.graph.SetUniform(h, UniformOpacity, c.planeOpacity)
			c.planes = append(c.planes, h)
			c.rests = append(c.rests, t)
		}
	}
}

func (c *carouselImpl) OnScroll(delta float64, touch bool) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	c.wheel.OnEvent(delta, c.sched.Now())
	scale := c.wheelScale
	if touch && !c.mobile {
		scale = 0.01
	}
	next := c.targetY + delta*scale

	// Past either end of the viewport only scrolling back is accepted.
	top := c.height / 2
	limit := c.cameraZ + 5
	if (c.posY+top <= limit || next < c.targetY) && (c.posY-top >= -limit || next > c.targetY) {
		c.targetY = next
	}
}

func (c *carouselImpl) OnPointer(cx, cy float64) {
	c.pointer.OnEvent(math.Hypot(cx-c.lastX, cy-c.lastY), c.sched.Now())
	c.lastX, c.lastY = cx, cy
	c.mouseX, c.mouseY = cx, cy
}

func (c *carouselImpl) Update(dt time.Duration) {
	f := c.blender.Tick(c.wheel.Sample().Active || c.pointer.Sample().Active)

	wheelTurn := (c.targetY - c.rotY) * c.smoothTurn
	auto := -c.autoTurn * dt.Seconds()
	c.rotY += wheelTurn*f + c.mouseX*c.pointerTurn*f + auto*(1-f)
	c.rotX = common.Clamp(c.rotX+c.mouseY*c.pointerTilt*f, -c.maxTilt, c.maxTilt)
	c.posY += (c.targetY - c.posY) * c.smoothY

	t := withRotation(common.IdentityTransform(), c.rotX, c.rotY, 0)
	t.Position = r3.Vec{Y: c.posY}
	c.graph.SetLocalTransform(c.root, t)
}

func (c *carouselImpl) Root() scene.Handle {
	return c.root
}

func (c *carouselImpl) Hover(ray common.Ray) bool {
	hit, ok := c.graph.Intersect(ray, c.planes)
	next := scene.Root
	if ok {
		next = hit.Handle
	}
	if next != c.hovered {
		if c.hovered != scene.Root {
			c.graph.SetUniform(c.hovered, UniformHover, 0)
		}
		if next != scene.Root {
			c.graph.SetUniform(next, UniformHover, 1)
		}
		c.hovered = next
	}
	return ok
}

func (c *carouselImpl) Pick(ray common.Ray) (int, bool) {
	hit, ok := c.graph.Intersect(ray, c.planes)
	if !ok {
		return 0, false
	}
	for i, h := range c.planes {
		if h == hit.Handle {
			return i, true
		}
	}
	return 0, false
}

func (c *carouselImpl) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s := planeScale(width, height, c.mobile)
	for i, h := range c.planes {
		t := c.rests[i]
		t.Scale = r3.Vec{X: s, Y: s, Z: 1}
		c.rests[i] = t
		c.graph.SetLocalTransform(h, t)
	}
}

// planeScale picks a plane scale from the viewport's short side, or its width on mobile.
func planeScale(width, height float64, mobile bool) float64 {
	if mobile {
		return width / 300
	}
	base := 1400.0
	if width < 1500 {
		base = 800
	}
	if width/height > 1 {
		return height / base
	}
	return width / base
}

func (c *carouselImpl) Planes() []scene.Handle {
	return append([]scene.Handle(nil), c.planes...)
}

func (c *carouselImpl) TargetY() float64 {
	return c.targetY
}

func (c *carouselImpl) PositionY() float64 {
	return c.posY
}

func (c *carouselImpl) Rotation() (x, y float64) {
	return c.rotX, c.rotY
}

func (c *carouselImpl) Factor() float64 {
	return c.blender.Factor()
}
