package input

import "time"

// SamplerBuilderOption is a functional option for configuring a Sampler.
type SamplerBuilderOption func(*samplerImpl)

// WithTimeout sets the inactivity timeout. Values <= 0 keep the default.
//
// Parameters:
//   - d: how long the source stays active after its last event
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithTimeout(d time.Duration) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if d > 0 {
			s.timeout = d
		}
	}
}
