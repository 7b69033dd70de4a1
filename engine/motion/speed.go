package motion

import (
	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
)

// SpeedController integrates sampled input velocity into a clamped scalar speed.
// Renewed input accelerates immediately; otherwise speed decays geometrically toward the floor.
type SpeedController interface {
	// Tick advances the controller by one frame.
	//
	// Parameters:
	//   - sample: the current input sample
	//   - enabled: false suppresses acceleration (e.g. during a mode transition)
	//
	// Returns:
	//   - float64: the updated speed, always within [floor, ceiling]
	Tick(sample input.Sample, enabled bool) float64

	// Speed returns the current speed.
	Speed() float64

	// Floor returns the minimum speed.
	Floor() float64

	// Ceiling returns the maximum speed.
	Ceiling() float64

	// Reset returns the controller to the floor speed.
	Reset()
}

type speedControllerImpl struct {
	gain    float64
	ceiling float64
	floor   float64
	decay   float64

	speed        float64
	prevVelocity float64
}

var _ SpeedController = &speedControllerImpl{}

// NewSpeedController creates a SpeedController with gain 0.2, ceiling 50, floor 1 and decay 0.1.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - SpeedController: the new controller, starting at the floor speed
func NewSpeedController(options ...SpeedControllerBuilderOption) SpeedController {
	sc := &speedControllerImpl{
		gain:    0.2,
		ceiling: 50,
		floor:   1,
		decay:   0.1,
	}
	for _, opt := range options {
		opt(sc)
	}
	if sc.ceiling < sc.floor {
		sc.ceiling = sc.floor
	}
	sc.speed = sc.floor
	return sc
}

func (sc *speedControllerImpl) Tick(sample input.Sample, enabled bool) float64 {
	if enabled && sample.Active && sample.Velocity > sc.prevVelocity {
		sc.speed = min(sc.speed+sample.Velocity*sc.gain, sc.ceiling)
		sc.prevVelocity = sample.Velocity
	} else {
		sc.speed = max(sc.speed-sc.speed*sc.decay, sc.floor)
		sc.prevVelocity = 0
	}
	sc.speed = common.Clamp(sc.speed, sc.floor, sc.ceiling)
	return sc.speed
}

func (sc *speedControllerImpl) Speed() float64 {
	return sc.speed
}

func (sc *speedControllerImpl) Floor() float64 {
	return sc.floor
}

func (sc *speedControllerImpl) Ceiling() float64 {
	return sc.ceiling
}

func (sc *speedControllerImpl) Reset() {
	sc.speed = sc.floor
	sc.prevVelocity = 0
}
