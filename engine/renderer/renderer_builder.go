package renderer

import "github.com/Carmen-Shannon/oxy-motion/common"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithBackdrop sets the colours Backdrop blends between.
//
// Parameters:
//   - idle: the colour at factor 0
//   - driven: the colour at factor 1
//
// Returns:
//   - RendererBuilderOption: a function that applies the colours to a renderer
func WithBackdrop(idle, driven common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.idle = idle
		r.driven = driven
	}
}

// WithDeviceLabel sets the debug label of the GPU device.
func WithDeviceLabel(label string) RendererBuilderOption {
	return func(r *renderer) {
		r.label = label
	}
}
