package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/engine/profiler"
	"github.com/Carmen-Shannon/oxy-motion/engine/renderer"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to change its interval.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow attaches a window whose input is routed to the core. Its size becomes the initial
// viewport.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer attaches a renderer that draws the backdrop on its own goroutine.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCore drives an existing core instead of building one.
func WithCore(c Core) EngineBuilderOption {
	return func(e *engine) {
		e.core = c
	}
}

// WithCoreOptions collects options for the core the engine builds. Ignored with WithCore.
//
// Parameters:
//   - options: core options, applied in order
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCoreOptions(options ...CoreBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.coreOptions = append(e.coreOptions, options...)
	}
}

// WithMailboxSize sets how many input closures may wait for the next tick before Post blocks.
func WithMailboxSize(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.mailbox = make(chan func(Core), n)
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
