package rig

// FanBuilderOption is a functional option for configuring a Fan.
type FanBuilderOption func(f *fanImpl)

// WithLevels sets the number of power levels above off.
func WithLevels(n int) FanBuilderOption {
	return func(f *fanImpl) {
		if n > 0 {
			f.levels = n
		}
	}
}

// WithBlades sets how many blades the hub carries.
func WithBlades(n int) FanBuilderOption {
	return func(f *fanImpl) {
		if n > 0 {
			f.bladeCount = n
		}
	}
}

// WithSpinRamp sets how fast blade speed follows the power level and how much blade angle
// one unit of speed adds per frame.
//
// Parameters:
//   - step: speed change per frame
//   - spin: radians per frame per unit of speed
//
// Returns:
//   - FanBuilderOption: option function to apply
func WithSpinRamp(step, spin float64) FanBuilderOption {
	return func(f *fanImpl) {
		f.speed.Step = step
		f.spin = spin
	}
}

// WithSwing sets the swing phase step in degrees per frame and the swing amplitude in radians.
func WithSwing(stepDeg, amplitude float64) FanBuilderOption {
	return func(f *fanImpl) {
		f.swingStep = stepDeg
		f.swingAmp = amplitude
	}
}
