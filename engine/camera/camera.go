package camera

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up r3.Vec

	fov    float64
	aspect float64
	near   float64
	far    float64

	controller CameraController
}

// Camera is a perspective camera. Position and look-at target come from an attached
// CameraController; the camera turns them into pointer rays and visible bounds.
type Camera interface {
	// Up returns the camera's up vector.
	Up() r3.Vec

	// Fov returns the vertical field of view in radians.
	Fov() float64

	// Aspect returns the aspect ratio (width / height).
	Aspect() float64

	// Near returns the near clipping plane distance.
	Near() float64

	// Far returns the far clipping plane distance.
	Far() float64

	// Position returns the world-space camera position, or the origin without a controller.
	Position() r3.Vec

	// Target returns the look-at point, or -Z without a controller.
	Target() r3.Vec

	// Ray returns the world-space ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndcX: horizontal coordinate in [-1, 1], +1 at the right edge
	//   - ndcY: vertical coordinate in [-1, 1], +1 at the top edge
	//
	// Returns:
	//   - common.Ray: ray from the camera position with a unit direction
	Ray(ndcX, ndcY float64) common.Ray

	// VisibleBounds returns the rectangle visible at distance in front of the camera.
	//
	// Parameters:
	//   - distance: distance from the camera
	//
	// Returns:
	//   - common.Bounds: visible rectangle centered on the view axis
	VisibleBounds(distance float64) common.Bounds

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// SetUp sets the camera's up vector.
	SetUp(up r3.Vec)

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float64)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float64)

	// SetController attaches a CameraController to the camera.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     r3.Vec{Y: 1},
		fov:    60.0 * (math.Pi / 180.0),
		aspect: 16.0 / 9.0,
		near:   0.1,
		far:    10000.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Up() r3.Vec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() r3.Vec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return r3.Vec{}
	}
	return c.controller.Position()
}

func (c *cameraImpl) Target() r3.Vec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return r3.Vec{Z: -1}
	}
	return c.controller.Target()
}

func (c *cameraImpl) Ray(ndcX, ndcY float64) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, target := r3.Vec{}, r3.Vec{Z: -1}
	if c.controller != nil {
		pos, target = c.controller.Position(), c.controller.Target()
	}
	forward, right, up := axes(pos, target, c.up)
	tanHalf := math.Tan(c.fov / 2)
	dir := r3.Add(forward, r3.Add(
		r3.Scale(ndcX*tanHalf*c.aspect, right),
		r3.Scale(ndcY*tanHalf, up),
	))
	return common.Ray{Origin: pos, Direction: common.SafeUnit(dir, forward)}
}

// axes returns the forward, right and up unit vectors of a camera at pos looking at target.
func axes(pos, target, worldUp r3.Vec) (forward, right, up r3.Vec) {
	forward = common.SafeUnit(r3.Sub(target, pos), r3.Vec{Z: -1})
	right = common.SafeUnit(r3.Cross(forward, worldUp), r3.Vec{X: 1})
	up = r3.Cross(right, forward)
	return forward, right, up
}

func (c *cameraImpl) VisibleBounds(distance float64) common.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.VisibleBounds(distance, c.fov, c.aspect)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetUp(up r3.Vec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fov > 0 {
		c.fov = fov
	}
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}
