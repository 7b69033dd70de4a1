package renderer

import "github.com/Carmen-Shannon/oxy-motion/common"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// RendererBackend is the GPU side of the Renderer.
type RendererBackend interface {
	// ConfigureSurface (re)configures the surface for a pixel size.
	ConfigureSurface(width, height int)

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// Clear runs one clear pass with c and presents it.
	//
	// Returns:
	//   - error: an error if the surface texture or command encoder cannot be acquired
	Clear(c common.Color) error

	// Release frees every GPU object held by the backend.
	Release()
}
