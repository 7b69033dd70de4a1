package motion

// SpeedControllerBuilderOption is a functional option for configuring a SpeedController.
type SpeedControllerBuilderOption func(*speedControllerImpl)

// WithGain sets the multiplier applied to input velocity on acceleration.
//
// Parameters:
//   - gain: speed added per unit of velocity (default 0.2)
//
// Returns:
//   - SpeedControllerBuilderOption: option function to apply
func WithGain(gain float64) SpeedControllerBuilderOption {
	return func(sc *speedControllerImpl) {
		sc.gain = gain
	}
}

// WithCeiling sets the maximum speed.
//
// Parameters:
//   - ceiling: the speed cap (default 50)
//
// Returns:
//   - SpeedControllerBuilderOption: option function to apply
func WithCeiling(ceiling float64) SpeedControllerBuilderOption {
	return func(sc *speedControllerImpl) {
		sc.ceiling = ceiling
	}
}

// WithFloor sets the minimum speed the controller coasts down to.
//
// Parameters:
//   - floor: the resting speed (default 1)
//
// Returns:
//   - SpeedControllerBuilderOption: option function to apply
func WithFloor(floor float64) SpeedControllerBuilderOption {
	return func(sc *speedControllerImpl) {
		sc.floor = floor
	}
}

// WithDecay sets the fraction of speed removed per idle frame.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - decay: geometric decay rate (default 0.1)
//
// Returns:
//   - SpeedControllerBuilderOption: option function to apply
func WithDecay(decay float64) SpeedControllerBuilderOption {
	return func(sc *speedControllerImpl) {
		if decay > 0 && decay <= 1 {
			sc.decay = decay
		}
	}
}

// TransitionBlenderBuilderOption is a functional option for configuring a TransitionBlender.
type TransitionBlenderBuilderOption func(*transitionBlenderImpl)

// WithStep sets the per-frame change of the blend factor. Values <= 0 are ignored.
//
// Parameters:
//   - step: factor increment per frame (default 0.03)
//
// Returns:
//   - TransitionBlenderBuilderOption: option function to apply
func WithStep(step float64) TransitionBlenderBuilderOption {
	return func(tb *transitionBlenderImpl) {
		if step > 0 {
			tb.step = step
		}
	}
}
