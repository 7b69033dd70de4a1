package path

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

var worldUp = r3.Vec{Y: 1}

// Step is the state of a Homing controller after one tick.
type Step struct {
	Position    r3.Vec
	Orientation r3.Rotation
	Heading     r3.Vec
	Speed       float64
	Remaining   float64
	Arrived     bool
}

// Homing steers a point over the surface of a sphere toward a destination by blending its
// heading with the direction to the target, scaled by a turn rate.
type Homing interface {
	// AddDestination registers or replaces a destination.
	AddDestination(d Destination)

	// Destinations returns the registered destinations in registration order.
	Destinations() []Destination

	// SetTarget starts a move toward the destination with the given id.
	// Unknown ids return *InvalidTargetError and leave the state untouched.
	//
	// Parameters:
	//   - id: the destination id
	//
	// Returns:
	//   - error: *InvalidTargetError if id is not registered
	SetTarget(id string) error

	// PlaceAt moves the point directly over a destination without flying,
	// rotating the orientation from the pole onto it.
	PlaceAt(id string) error

	// Tick advances one frame. Returns false when no move is in progress, in which case the
	// position is unchanged.
	//
	// Returns:
	//   - Step: the state after the tick
	//   - bool: true if the tick moved the point
	Tick() (Step, bool)

	// Position returns the current position.
	Position() r3.Vec

	// Heading returns the current unit heading.
	Heading() r3.Vec

	// Orientation returns the accumulated orientation.
	Orientation() r3.Rotation

	// Speed returns the current speed.
	Speed() float64

	// Moving reports whether a move is in progress.
	Moving() bool

	// Remaining returns the distance left to the target, or 0 when idle.
	Remaining() float64

	// Target returns the current target destination and whether one was ever set.
	Target() (Destination, bool)
}

type homingImpl struct {
	radius         float64
	altitude       float64
	turnRate       float64
	maxSpeed       float64
	minSpeed       float64
	acceleration   float64
	nearDistance   float64
	arrivalEpsilon float64

	destinations map[string]Destination
	order        []string

	position    r3.Vec
	heading     r3.Vec
	hasHeading  bool
	orientation r3.Rotation
	speed       float64

	target    Destination
	targetPos r3.Vec
	hasTarget bool
	moving    bool
}

var _ Homing = &homingImpl{}

// NewHoming creates a Homing controller on a sphere of radius 50 with altitude factor 1.1,
// turn rate 0.1 and speed clamped to [0.1, 0.5]. The initial position is over the north pole.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Homing: the new controller
func NewHoming(options ...HomingBuilderOption) Homing {
	h := &homingImpl{
		radius:         50,
		altitude:       1.1,
		turnRate:       0.1,
		maxSpeed:       0.5,
		minSpeed:       0.1,
		acceleration:   0.01,
		nearDistance:   15,
		arrivalEpsilon: 0.2,
		destinations:   make(map[string]Destination),
		orientation:    common.IdentityRotation(),
	}
	h.position = r3.Scale(h.radius*h.altitude, worldUp)
	for _, opt := range options {
		opt(h)
	}
	if h.minSpeed > h.maxSpeed {
		h.minSpeed = h.maxSpeed
	}
	return h
}

func (h *homingImpl) AddDestination(d Destination) {
	if _, ok := h.destinations[d.ID]; !ok {
		h.order = append(h.order, d.ID)
	}
	h.destinations[d.ID] = d
}

func (h *homingImpl) Destinations() []Destination {
	out := make([]Destination, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.destinations[id])
	}
	return out
}

func (h *homingImpl) SetTarget(id string) error {
	d, ok := h.destinations[id]
	if !ok {
		return &InvalidTargetError{ID: id}
	}
	h.target = d
	h.targetPos = h.project(d.Position, h.position)
	h.hasTarget = true
	h.moving = true
	if !h.hasHeading {
		h.heading = common.SafeUnit(r3.Sub(h.targetPos, h.position), worldUp)
		h.hasHeading = true
	}
	common.Logf("[Path] flying to %q (%.2f away)", id, r3.Norm(r3.Sub(h.targetPos, h.position)))
	return nil
}

func (h *homingImpl) PlaceAt(id string) error {
	d, ok := h.destinations[id]
	if !ok {
		return &InvalidTargetError{ID: id}
	}
	dir := common.SafeUnit(d.Position, worldUp)
	from := common.SafeUnit(h.position, worldUp)
	h.orientation = common.Compose(common.RotationBetween(from, dir), h.orientation)
	h.position = r3.Scale(h.radius*h.altitude, dir)
	h.heading = dir
	h.hasHeading = true
	h.moving = false
	h.speed = 0
	return nil
}

func (h *homingImpl) Tick() (Step, bool) {
	if !h.moving {
		return h.step(false), false
	}

	toTarget := r3.Sub(h.targetPos, h.position)
	remaining := r3.Norm(toTarget)

	if remaining < h.nearDistance {
		h.speed -= h.acceleration
	} else {
		h.speed += h.acceleration
	}
	h.speed = common.Clamp(h.speed, h.minSpeed, h.maxSpeed)

	if remaining <= h.arrivalEpsilon {
		h.position = h.targetPos
		h.speed = 0
		h.moving = false
		common.Logf("[Path] arrived at %q", h.target.ID)
		return h.step(true), true
	}

	prev := h.heading
	blended := r3.Add(h.heading, r3.Scale(h.turnRate, common.SafeUnit(toTarget, prev)))
	h.heading = common.SafeUnit(blended, prev)

	next := r3.Add(h.position, r3.Scale(h.speed, h.heading))
	h.position = h.project(next, h.position)

	h.orientation = common.Compose(common.RotationBetween(prev, h.heading), h.orientation)
	return h.step(false), true
}

// project places p on the flight sphere, keeping fallback's direction if p is degenerate.
func (h *homingImpl) project(p, fallback r3.Vec) r3.Vec {
	dir := common.SafeUnit(p, common.SafeUnit(fallback, worldUp))
	return r3.Scale(h.radius*h.altitude, dir)
}

func (h *homingImpl) step(arrived bool) Step {
	return Step{
		Position:    h.position,
		Orientation: h.orientation,
		Heading:     h.heading,
		Speed:       h.speed,
		Remaining:   h.Remaining(),
		Arrived:     arrived,
	}
}

func (h *homingImpl) Position() r3.Vec {
	return h.position
}

func (h *homingImpl) Heading() r3.Vec {
	return h.heading
}

func (h *homingImpl) Orientation() r3.Rotation {
	return h.orientation
}

func (h *homingImpl) Speed() float64 {
	return h.speed
}

func (h *homingImpl) Moving() bool {
	return h.moving
}

func (h *homingImpl) Remaining() float64 {
	if !h.moving {
		return 0
	}
	return r3.Norm(r3.Sub(h.targetPos, h.position))
}

func (h *homingImpl) Target() (Destination, bool) {
	return h.target, h.hasTarget
}
