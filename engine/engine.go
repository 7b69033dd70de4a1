package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/profiler"
	"github.com/Carmen-Shannon/oxy-motion/engine/renderer"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render and window threads around a single Core.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	mailbox         chan func(Core)    // Input handed from host callbacks to the tick goroutine

	running bool
	started bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	core        Core
	coreOptions []CoreBuilderOption

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate   time.Duration
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	frameCallback    func(Frame)
	lastFactor       float64
}

// Engine is the main entry point for a running program.
// It owns the Core and drives it from a fixed-rate tick goroutine. Host input never touches the
// core directly: callbacks Post closures which the tick goroutine runs before each frame.
type Engine interface {
	// Core returns the driven core. Only touch it from closures passed to Post once the
	// engine has started.
	Core() Core

	// Window returns the underlying window, or nil when running headless.
	Window() window.Window

	// Post queues fn to run on the tick goroutine before the next frame.
	// Blocks while the mailbox is full.
	//
	// Parameters:
	//   - fn: the closure to run with the core
	//
	// Returns:
	//   - bool: false if the engine has quit and fn will never run
	Post(fn func(Core)) bool

	// SetFrameCallback registers the function called with every frame on the tick goroutine.
	//
	// Parameters:
	//   - callback: function receiving the frame (or nil to disable)
	SetFrameCallback(callback func(Frame))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	SetRenderFrameLimit(fps float64)

	// Start launches the tick and render goroutines without blocking. Calling it twice is a no-op.
	Start()

	// Run starts the engine and blocks until the window closes, or until Quit without a window.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Wait blocks until every engine goroutine has returned.
	Wait()
}

// NewEngine creates a new Engine with the provided options.
// A core is built from the collected core options unless WithCore supplied one.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		mailbox:         make(chan func(Core), 256),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.core == nil {
		if e.window != nil {
			e.coreOptions = append([]CoreBuilderOption{
				WithViewport(float64(e.window.Width()), float64(e.window.Height())),
			}, e.coreOptions...)
		}
		e.core = NewCore(e.coreOptions...)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow routes window input into the mailbox.
func (e *engine) bindWindow() {
	w := e.window
	w.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		e.Post(func(c Core) {
			c.SetViewport(float64(width), float64(height))
		})
	})
	w.SetScrollCallback(func(delta float64) {
		e.Post(func(c Core) {
			c.OnWheelDelta(delta)
		})
	})
	w.SetKeyDownCallback(func(code uint32) {
		e.Post(func(c Core) {
			c.OnKeyDown(code)
		})
	})
	w.SetKeyUpCallback(func(code uint32) {
		e.Post(func(c Core) {
			c.OnKeyUp(code)
		})
	})
	w.SetPointerMoveCallback(func(x, y float64) {
		width, height := float64(w.Width()), float64(w.Height())
		e.Post(func(c Core) {
			c.OnPointerMove(x, y, width, height)
		})
	})
	w.SetPointerDragCallback(func(dx, dy float64) {
		e.Post(func(c Core) {
			c.OnPointerDelta(dx, dy)
		})
	})
}

func (e *engine) Core() Core {
	return e.core
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Post(fn func(Core)) bool {
	if fn == nil {
		return false
	}
	select {
	case <-e.quitChannel:
		return false
	default:
	}
	select {
	case e.mailbox <- fn:
		return true
	case <-e.quitChannel:
		return false
	}
}

func (e *engine) SetFrameCallback(callback func(Frame)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) Start() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.running = true
	e.mu.Unlock()
	e.handle()
}

func (e *engine) Run() {
	e.Start()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
	if e.renderer != nil {
		e.renderer.Release()
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Wait() {
	e.wg.Wait()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
	if e.renderer != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

// handleEngine runs the fixed-rate tick loop. Each tick drains the mailbox, advances the core
// by the measured elapsed time and reports the frame. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick)
			lastTick = now

			e.drain()
			frame := e.core.FrameTick(dt)

			e.mu.Lock()
			e.lastFactor = frame.Factor
			callback := e.frameCallback
			profiling := e.profilingEnabled
			e.mu.Unlock()

			if callback != nil {
				callback(frame)
			}
			if profiling {
				e.profiler.Tick(profiler.Stats{
					Speed:   frame.Speed,
					Factor:  frame.Factor,
					Updates: len(frame.Transforms),
				})
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// drain runs every queued input closure.
func (e *engine) drain() {
	for {
		select {
		case fn := <-e.mailbox:
			fn(e.core)
		default:
			return
		}
	}
}

// handleRender clears the surface to the backdrop colour of the latest frame.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.Logf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			start := time.Now()

			e.mu.Lock()
			factor := e.lastFactor
			e.mu.Unlock()

			if err := e.renderer.Backdrop(factor); err != nil {
				common.Logf("[Engine] frame skipped: %v", err)
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if !running {
		e.engineTickRate = newRate
		return
	}
	// Replace any pending update that the tick goroutine has not picked up yet.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

// tickInterval converts a rate to a ticker period, defaulting to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
