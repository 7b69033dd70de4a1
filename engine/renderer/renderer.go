package renderer

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// Default backdrop colours, blended by the input factor.
var (
	DefaultIdleColor   = common.Color{R: 0.02, G: 0.02, B: 0.03, A: 1}
	DefaultDrivenColor = common.Color{R: 0.08, G: 0.06, B: 0.12, A: 1}
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	idle   common.Color
	driven common.Color

	// Pre-creation config collected from builder options
	label                string
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer draws the frame backdrop. The animation core owns geometry; the renderer only clears
// the surface to a colour that follows the input blend factor.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Clear fills the surface with c and presents it.
	Clear(c common.Color) error

	// Backdrop clears to the idle colour blended toward the driven colour by factor.
	//
	// Parameters:
	//   - factor: the input blend factor in [0, 1]
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Backdrop(factor float64) error

	// SetPresentMode changes the present mode and reconfigures the surface.
	SetPresentMode(mode PresentMode, width, height int)

	// BackendType returns the backend in use.
	BackendType() RendererBackendType

	// Release frees the GPU objects.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the given surface and configures it for width x height.
// Returns an error if no adapter or device is available.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, typically from window.Window.SurfaceDescriptor
//   - width, height: initial surface size in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the GPU could not be initialised
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
		idle:        DefaultIdleColor,
		driven:      DefaultDrivenColor,
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, common.Coalesce(r.label, "Main Device"))
	if err != nil {
		return nil, err
	}
	r.backend = backend
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Clear(c common.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Clear(c)
}

func (r *renderer) Backdrop(factor float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Clear(common.MixColor(r.idle, r.driven, factor))
}

func (r *renderer) SetPresentMode(mode PresentMode, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
