package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/engine/camera"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/cull"
	"github.com/Carmen-Shannon/oxy-motion/engine/layout"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/path"
	"github.com/Carmen-Shannon/oxy-motion/engine/pulse"
	"github.com/Carmen-Shannon/oxy-motion/engine/rig"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// CoreBuilderOption is a functional option applied to a core during construction via NewCore.
type CoreBuilderOption func(*coreImpl)

// WithScheduler drives the core from an external scheduler. A fresh one is created otherwise.
func WithScheduler(s clock.Scheduler) CoreBuilderOption {
	return func(c *coreImpl) {
		c.sched = s
	}
}

// WithGraph builds components into an existing scene graph instead of a new in-memory one.
func WithGraph(g scene.Graph) CoreBuilderOption {
	return func(c *coreImpl) {
		c.graph = g
	}
}

// WithCamera replaces the default orbit camera used for hover rays.
func WithCamera(cam camera.Camera) CoreBuilderOption {
	return func(c *coreImpl) {
		c.cam = cam
	}
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height float64) CoreBuilderOption {
	return func(c *coreImpl) {
		if width > 0 && height > 0 {
			c.viewW, c.viewH = width, height
		}
	}
}

// WithGallery enables the spiral/horizon gallery.
//
// Parameters:
//   - count: number of gallery planes
//   - options: gallery options; the core's culler and viewport are applied first
//
// Returns:
//   - CoreBuilderOption: a function that applies the gallery option to a core
func WithGallery(count int, options ...layout.GalleryBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.galleryCount = count
		c.galleryOptions = append(c.galleryOptions, options...)
	}
}

// WithStartMode sets the layout the gallery is set up in.
func WithStartMode(mode layout.Mode) CoreBuilderOption {
	return func(c *coreImpl) {
		c.galleryMode = mode
	}
}

// WithPulseSphere enables a wave pulse field laid out on a sphere. The tile group spins slowly
// around the vertical axis.
//
// Parameters:
//   - radius: sphere radius
//   - splitRow: latitude bands around the full circle
//   - splitCol: tiles per row
//   - options: field options, applied after the layout bindings
//
// Returns:
//   - CoreBuilderOption: a function that applies the pulse option to a core
func WithPulseSphere(radius float64, splitRow, splitCol int, options ...pulse.FieldBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.sphere = &sphereConfig{
			radius:   radius,
			splitRow: splitRow,
			splitCol: splitCol,
			spin:     0.001,
			options:  options,
		}
	}
}

// WithHoming enables great-circle flight. A flyer node follows the flight every frame.
func WithHoming(options ...path.HomingBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.useHoming = true
		c.homingOptions = append(c.homingOptions, options...)
	}
}

// WithCarousel enables the cylinder carousel. Its blend factor uses the core's blend options.
func WithCarousel(options ...rig.CarouselBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.useCarousel = true
		c.carouselOpts = append(c.carouselOpts, options...)
	}
}

// WithFan enables the desk fan rig and routes unbound keys to it.
func WithFan(options ...rig.FanBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.useFan = true
		c.fanOptions = append(c.fanOptions, options...)
	}
}

// WithBoxRings enables the counter-rotating box rings rig.
func WithBoxRings(options ...rig.BoxRingsBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.useRings = true
		c.ringOptions = append(c.ringOptions, options...)
	}
}

// WithCuller configures the viewport culler shared by the gallery.
func WithCuller(options ...cull.CullerBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.cullerOptions = append(c.cullerOptions, options...)
	}
}

// WithInputTimeouts overrides the inactivity timeouts of the scroll and pointer samplers.
// Zero values keep the defaults.
//
// Parameters:
//   - wheel: wheel and arrow key timeout
//   - touch: touch drag timeout
//   - pointer: pointer drag timeout
//
// Returns:
//   - CoreBuilderOption: a function that applies the timeouts to a core
func WithInputTimeouts(wheel, touch, pointer time.Duration) CoreBuilderOption {
	return func(c *coreImpl) {
		if wheel > 0 {
			c.wheelTimeout = wheel
		}
		if touch > 0 {
			c.touchTimeout = touch
		}
		if pointer > 0 {
			c.pointerTimeout = pointer
		}
	}
}

// WithSpeed configures the scroll speed controller.
func WithSpeed(options ...motion.SpeedControllerBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.speedOptions = append(c.speedOptions, options...)
	}
}

// WithBlend configures the input blend factor.
func WithBlend(options ...motion.TransitionBlenderBuilderOption) CoreBuilderOption {
	return func(c *coreImpl) {
		c.blendOptions = append(c.blendOptions, options...)
	}
}
