package path

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// HomingBuilderOption is a functional option for configuring a Homing controller.
type HomingBuilderOption func(*homingImpl)

// WithRadius sets the sphere radius. The current position is re-projected onto the new sphere.
//
// Parameters:
//   - radius: sphere radius (default 50)
//
// Returns:
//   - HomingBuilderOption: option function to apply
func WithRadius(radius float64) HomingBuilderOption {
	return func(h *homingImpl) {
		if radius > 0 {
			h.radius = radius
			h.position = h.project(h.position, worldUp)
		}
	}
}

// WithAltitude sets the altitude factor applied to the radius when flying.
//
// Parameters:
//   - altitude: multiplier on the radius (default 1.1)
//
// Returns:
//   - HomingBuilderOption: option function to apply
func WithAltitude(altitude float64) HomingBuilderOption {
	return func(h *homingImpl) {
		if altitude > 0 {
			h.altitude = altitude
			h.position = h.project(h.position, worldUp)
		}
	}
}

// WithTurnRate sets how strongly the direction to the target bends the heading per tick.
func WithTurnRate(rate float64) HomingBuilderOption {
	return func(h *homingImpl) {
		h.turnRate = rate
	}
}

// WithMaxSpeed sets the maximum distance travelled per tick.
func WithMaxSpeed(speed float64) HomingBuilderOption {
	return func(h *homingImpl) {
		h.maxSpeed = speed
	}
}

// WithMinSpeed sets the minimum distance travelled per tick while moving.
func WithMinSpeed(speed float64) HomingBuilderOption {
	return func(h *homingImpl) {
		h.minSpeed = speed
	}
}

// WithAcceleration sets the per-tick speed change.
func WithAcceleration(a float64) HomingBuilderOption {
	return func(h *homingImpl) {
		h.acceleration = a
	}
}

// WithNearDistance sets the remaining distance below which the controller slows down.
func WithNearDistance(d float64) HomingBuilderOption {
	return func(h *homingImpl) {
		h.nearDistance = d
	}
}

// WithArrivalEpsilon sets the remaining distance at which the point snaps onto the target.
func WithArrivalEpsilon(eps float64) HomingBuilderOption {
	return func(h *homingImpl) {
		if eps > 0 {
			h.arrivalEpsilon = eps
		}
	}
}

// WithPosition sets the starting position. It is used as given, not projected,
// and is pulled onto the flight sphere by the first tick.
//
// Parameters:
//   - p: the starting position
//
// Returns:
//   - HomingBuilderOption: option function to apply
func WithPosition(p r3.Vec) HomingBuilderOption {
	return func(h *homingImpl) {
		h.position = p
	}
}

// WithHeading sets the starting heading. Without it the first SetTarget heads straight at the target.
func WithHeading(dir r3.Vec) HomingBuilderOption {
	return func(h *homingImpl) {
		h.heading = common.SafeUnit(dir, worldUp)
		h.hasHeading = true
	}
}

// WithDestinations registers destinations in order.
func WithDestinations(ds ...Destination) HomingBuilderOption {
	return func(h *homingImpl) {
		for _, d := range ds {
			h.AddDestination(d)
		}
	}
}
