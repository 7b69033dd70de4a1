package engine

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/cull"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/layout"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/path"
	"github.com/Carmen-Shannon/oxy-motion/engine/pulse"
	"github.com/Carmen-Shannon/oxy-motion/engine/rig"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// KeyVelocity is the velocity an arrow key holds the scroll input at.
const KeyVelocity = 50

// Frame is the outcome of one FrameTick.
type Frame struct {
	// Transforms holds every local transform written during the frame, ordered by handle.
	Transforms []scene.TransformUpdate

	// Events holds the gallery choreography edges reached during the frame.
	Events []layout.Event

	// Speed and Direction are the scroll speed and its sign after the frame.
	Speed     float64
	Direction float64

	// Factor is the input blend factor after the frame.
	Factor float64

	// Flight is the homing state after the frame; Flying is false when nothing moved.
	Flight path.Step
	Flying bool

	// Fired counts the scheduler callbacks run at the start of the frame.
	Fired int
}

// Core is the animation core a host drives. Input callbacks only record state; all motion
// happens in FrameTick, so a host must call every method from one goroutine.
type Core interface {
	// OnPointerDelta feeds a pointer drag. It orbits the camera and marks pointer input active.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels
	//   - dy: vertical movement in pixels
	OnPointerDelta(dx, dy float64)

	// OnPointerMove hit-tests the pointer against the scene and updates hover state.
	//
	// Parameters:
	//   - x, y: pointer position in pixels from the top-left corner
	//   - width, height: viewport size in pixels
	OnPointerMove(x, y, width, height float64)

	// OnWheelDelta feeds a wheel delta. It is swallowed while a gallery transition runs.
	OnWheelDelta(dy float64)

	// OnTouchDelta feeds a vertical touch drag delta.
	OnTouchDelta(dy float64)

	// OnKeyDown handles a key press. Up and down arrows hold the scroll input, left and right
	// orbit the camera and any other key goes to the rigs.
	//
	// Returns:
	//   - bool: true if the key was used
	OnKeyDown(code uint32) bool

	// OnKeyUp handles a key release.
	OnKeyUp(code uint32)

	// SetTarget starts a homing flight toward a destination.
	//
	// Parameters:
	//   - id: the destination id
	//
	// Returns:
	//   - error: wraps *path.InvalidTargetError for unknown ids or when no homing is configured
	SetTarget(id string) error

	// SetViewport resizes the camera and every viewport-dependent component.
	SetViewport(width, height float64)

	// FrameTick advances the core by one frame.
	//
	// Parameters:
	//   - dt: elapsed time since the previous frame
	//
	// Returns:
	//   - Frame: what changed during the frame
	FrameTick(dt time.Duration) Frame

	// Speed returns the current scroll speed.
	Speed() float64

	// Factor returns the current input blend factor.
	Factor() float64

	Scheduler() clock.Scheduler
	Graph() scene.Graph
	Camera() camera.Camera

	// Component accessors return nil when the component is not configured.
	Gallery() layout.Gallery
	Field() pulse.Field
	Homing() path.Homing
	Flyer() scene.Handle
	Carousel() rig.Carousel
	Fan() rig.Fan
	BoxRings() rig.BoxRings
}

type sphereConfig struct {
	radius   float64
	splitRow int
	splitCol int
	spin     float64
	options  []pulse.FieldBuilderOption
}

type coreImpl struct {
	sched  clock.Scheduler
	graph  scene.Graph
	rec    *scene.Recorder
	cam    camera.Camera
	culler cull.Culler

	wheel   input.Sampler
	touch   input.Sampler
	pointer input.Sampler

	speed   motion.SpeedController
	blender motion.TransitionBlender

	gallery  layout.Gallery
	field    pulse.Field
	homing   path.Homing
	flyer    scene.Handle
	carousel rig.Carousel
	fan      rig.Fan
	rings    rig.BoxRings
	rigs     []rig.Rig
	keys     []rig.KeyListener

	// Construction settings collected from builder options.
	wheelTimeout   time.Duration
	touchTimeout   time.Duration
	pointerTimeout time.Duration
	speedOptions   []motion.SpeedControllerBuilderOption
	blendOptions   []motion.TransitionBlenderBuilderOption
	cullerOptions  []cull.CullerBuilderOption
	galleryCount   int
	galleryMode    layout.Mode
	galleryOptions []layout.GalleryBuilderOption
	sphere         *sphereConfig
	homingOptions  []path.HomingBuilderOption
	useHoming      bool
	carouselOpts   []rig.CarouselBuilderOption
	useCarousel    bool
	fanOptions     []rig.FanBuilderOption
	useFan         bool
	ringOptions    []rig.BoxRingsBuilderOption
	useRings       bool

	viewW, viewH float64
	direction    float64
}

var _ Core = &coreImpl{}

// NewCore builds a core and every component enabled by options. Components share one scheduler
// and write through one recording graph so FrameTick can report what changed.
//
// Parameters:
//   - options: functional options to configure the core
//
// Returns:
//   - Core: the new core, with the gallery (if any) set up in its starting mode
func NewCore(options ...CoreBuilderOption) Core {
	c := &coreImpl{
		wheelTimeout:   input.WheelTimeout,
		touchTimeout:   input.TouchTimeout,
		pointerTimeout: input.PointerTimeout,
		galleryMode:    layout.ModeSpiral,
		viewW:          1920,
		viewH:          1080,
		direction:      1,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.sched == nil {
		c.sched = clock.NewScheduler()
	}
	if c.graph == nil {
		c.graph = scene.NewGraph()
	}
	c.rec = scene.NewRecorder(c.graph)

	c.wheel = input.NewSampler(c.sched, input.WithTimeout(c.wheelTimeout))
	c.touch = input.NewSampler(c.sched, input.WithTimeout(c.touchTimeout))
	c.pointer = input.NewSampler(c.sched, input.WithTimeout(c.pointerTimeout))
	c.speed = motion.NewSpeedController(c.speedOptions...)
	c.blender = motion.NewTransitionBlender(c.blendOptions...)
	c.culler = cull.NewCuller(c.cullerOptions...)

	c.build()
	c.SetViewport(c.viewW, c.viewH)
	if c.gallery != nil {
		c.gallery.Setup(c.galleryMode)
	}
	c.rec.Flush()
	return c
}

func (c *coreImpl) build() {
	if c.galleryCount > 0 {
		opts := append([]layout.GalleryBuilderOption{
			layout.WithCuller(c.culler),
			layout.WithViewport(c.viewW, c.viewH),
		}, c.galleryOptions...)
		c.gallery = layout.NewGallery(c.rec, c.sched, c.galleryCount, opts...)
	}

	if s := c.sphere; s != nil {
		transforms, rows, cols := pulse.SphereLayout(s.radius, s.splitRow, s.splitCol)
		group := c.rec.AddGroup(scene.Root)
		handles := make([]scene.Handle, len(transforms))
		for i, t := range transforms {
			handles[i] = c.rec.AddNode(group, t, tileRadius(s.radius, cols))
		}
		opts := append([]pulse.FieldBuilderOption{
			pulse.WithRings(rows, cols),
			pulse.WithNodes(c.rec, handles),
			pulse.WithSpin(group, r3.Vec{Y: 1}, s.spin),
		}, s.options...)
		c.field = pulse.NewField(c.sched, opts...)
	}

	if c.useHoming {
		c.homing = path.NewHoming(c.homingOptions...)
		c.flyer = c.rec.AddNode(scene.Root, c.flightTransform(), 0.5)
	}

	if c.useCarousel {
		blender := motion.NewTransitionBlender(c.blendOptions...)
		opts := append([]rig.CarouselBuilderOption{rig.WithBlender(blender)}, c.carouselOpts...)
		c.carousel = rig.NewCarousel(c.rec, c.sched, scene.Root, opts...)
		c.rigs = append(c.rigs, c.carousel)
	}
	if c.useFan {
		c.fan = rig.NewFan(c.rec, scene.Root, c.fanOptions...)
		c.rigs = append(c.rigs, c.fan)
		c.keys = append(c.keys, c.fan)
	}
	if c.useRings {
		c.rings = rig.NewBoxRings(c.rec, scene.Root, c.ringOptions...)
		c.rigs = append(c.rigs, c.rings)
	}

	if c.cam == nil {
		radius := 150.0
		if c.gallery != nil {
			radius = c.gallery.CameraDistance()
		}
		c.cam = camera.NewCamera(camera.WithController(camera.NewCameraController(
			camera.WithRadius(radius),
			camera.WithRadiusBounds(1, math.Max(2000, radius)),
		)))
	}
}

// tileRadius approximates a hit radius from the arc a sphere tile covers.
func tileRadius(radius float64, cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return radius * math.Pi / float64(cols)
}

func (c *coreImpl) flightTransform() common.Transform {
	t := common.IdentityTransform()
	t.Position = c.homing.Position()
	t.Rotation = c.homing.Orientation()
	return t
}

func (c *coreImpl) changing() bool {
	return c.gallery != nil && c.gallery.Changing()
}

func (c *coreImpl) OnPointerDelta(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	if ctrl := c.cam.Controller(); ctrl != nil {
		ctrl.Drag(dx, dy)
	}
	c.pointer.OnEvent(math.Hypot(dx, dy), c.sched.Now())
}

func (c *coreImpl) OnPointerMove(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	ndcX, ndcY := input.NormalizePointer(x, y, width, height)
	ray := c.cam.Ray(ndcX, ndcY)
	if c.gallery != nil {
		c.gallery.Pointer(ndcX, ndcY)
		hit, ok := c.rec.Intersect(ray, c.gallery.Handles())
		c.gallery.Hover(hit.Handle, ok)
	}
	if c.field != nil {
		c.field.Hover(ray)
	}
	if c.carousel != nil {
		c.carousel.Hover(ray)
		c.carousel.OnPointer(input.CenteredPointer(x, y, width, height))
	}
}

func (c *coreImpl) OnWheelDelta(dy float64) {
	if c.carousel != nil {
		c.carousel.OnScroll(dy, false)
	}
	if c.changing() {
		c.wheel.Deactivate()
		return
	}
	c.wheel.OnEvent(dy, c.sched.Now())
}

func (c *coreImpl) OnTouchDelta(dy float64) {
	if c.carousel != nil {
		c.carousel.OnScroll(dy, true)
	}
	if c.changing() {
		c.touch.Deactivate()
		return
	}
	c.touch.OnEvent(dy, c.sched.Now())
}

func (c *coreImpl) OnKeyDown(code uint32) bool {
	switch code {
	case common.KeyUp, common.KeyDown:
		if c.changing() {
			c.wheel.Deactivate()
			return true
		}
		direction := 1.0
		if code == common.KeyUp {
			direction = -1
		}
		c.wheel.Hold(KeyVelocity, direction)
		return true
	case common.KeyLeft, common.KeyRight:
		ctrl := c.cam.Controller()
		if ctrl == nil {
			return false
		}
		if code == common.KeyLeft {
			ctrl.OrbitLeft()
		} else {
			ctrl.OrbitRight()
		}
		return true
	}
	used := false
	for _, l := range c.keys {
		used = l.OnKey(code) || used
	}
	return used
}

func (c *coreImpl) OnKeyUp(code uint32) {
	if code == common.KeyUp || code == common.KeyDown {
		c.wheel.Release()
	}
}

func (c *coreImpl) SetTarget(id string) error {
	if c.homing == nil {
		return fmt.Errorf("engine: no homing configured: %w", &path.InvalidTargetError{ID: id})
	}
	if err := c.homing.SetTarget(id); err != nil {
		common.Logf("[Engine] target %q rejected", id)
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *coreImpl) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.viewW, c.viewH = width, height
	c.cam.SetAspect(width / height)
	if c.gallery != nil {
		c.gallery.SetViewport(width, height)
		c.culler.SetBounds(c.gallery.Bounds())
	}
	if c.carousel != nil {
		c.carousel.SetViewport(width, height)
	}
}

// scrollSample picks the held or most recently active scroll source.
func (c *coreImpl) scrollSample() input.Sample {
	wheel := c.wheel.Sample()
	if wheel.Active {
		return wheel
	}
	if touch := c.touch.Sample(); touch.Active {
		return touch
	}
	return wheel
}

func (c *coreImpl) FrameTick(dt time.Duration) Frame {
	fired := c.sched.Advance(dt)

	sample := c.scrollSample()
	if sample.Active {
		c.direction = sample.Direction
	}
	speed := c.speed.Tick(sample, !c.changing())
	factor := c.blender.Tick(sample.Active || c.pointer.Sample().Active)

	var flight path.Step
	var flying bool
	if c.homing != nil {
		if flight, flying = c.homing.Tick(); flying {
			c.rec.SetLocalTransform(c.flyer, c.flightTransform())
		}
	}
	if c.field != nil {
		c.field.Tick()
	}
	if c.gallery != nil {
		c.gallery.Advance(speed, c.direction)
	}
	for _, r := range c.rigs {
		r.Update(dt)
	}

	var events []layout.Event
	if c.gallery != nil {
		c.gallery.Update()
		c.culler.SetBounds(c.gallery.Bounds())
		c.culler.UpdateAll(c.rec, c.gallery.Views())
		c.gallery.Deform(speed, c.direction)
		c.gallery.Observe()
		events = c.gallery.Events()
		for _, e := range events {
			if e.Kind != layout.EventModeChanged {
				continue
			}
			if ctrl := c.cam.Controller(); ctrl != nil {
				ctrl.SetRadius(c.gallery.CameraDistance())
			}
			c.culler.SetBounds(c.gallery.Bounds())
		}
	}

	return Frame{
		Transforms: c.rec.Flush(),
		Events:     events,
		Speed:      speed,
		Direction:  c.direction,
		Factor:     factor,
		Flight:     flight,
		Flying:     flying,
		Fired:      fired,
	}
}

func (c *coreImpl) Speed() float64 {
	return c.speed.Speed()
}

func (c *coreImpl) Factor() float64 {
	return c.blender.Factor()
}

func (c *coreImpl) Scheduler() clock.Scheduler {
	return c.sched
}

func (c *coreImpl) Graph() scene.Graph {
	return c.graph
}

func (c *coreImpl) Camera() camera.Camera {
	return c.cam
}

func (c *coreImpl) Gallery() layout.Gallery {
	return c.gallery
}

func (c *coreImpl) Field() pulse.Field {
	return c.field
}

func (c *coreImpl) Homing() path.Homing {
	return c.homing
}

func (c *coreImpl) Flyer() scene.Handle {
	return c.flyer
}

func (c *coreImpl) Carousel() rig.Carousel {
	return c.carousel
}

func (c *coreImpl) Fan() rig.Fan {
	return c.fan
}

func (c *coreImpl) BoxRings() rig.BoxRings {
	return c.rings
}
