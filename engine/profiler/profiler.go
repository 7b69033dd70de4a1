package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// Stats is the core state reported alongside the frame rate.
type Stats struct {
	Speed   float64
	Factor  float64
	Updates int
}

// Profiler tracks frame rate, heap usage and the animation state for performance monitoring.
// Outputs one log line per interval.
type Profiler struct {
	now            func() time.Time
	frameCount     int
	updateCount    int
	lastTime       time.Time
	updateInterval time.Duration
	readMemory     bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
		readMemory:     true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame. Logs frame rate, memory and the latest core state
// when the update interval has elapsed.
//
// Parameters:
//   - s: the state after the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(s Stats) bool {
	p.frameCount++
	p.updateCount += s.Updates
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	updates := float64(p.updateCount) / float64(p.frameCount)
	if p.readMemory {
		runtime.ReadMemStats(&p.memStats)
		heapMB := float64(p.memStats.Alloc) / 1024 / 1024
		allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()
		gcCount := p.memStats.NumGC
		common.Logf("[Profiler] FPS: %.2f | Speed: %.2f | Factor: %.2f | Updates/frame: %.1f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
			fps, s.Speed, s.Factor, updates, heapMB, allocRateMB, gcCount-p.lastGCCount)
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
	} else {
		common.Logf("[Profiler] FPS: %.2f | Speed: %.2f | Factor: %.2f | Updates/frame: %.1f",
			fps, s.Speed, s.Factor, updates)
	}

	p.frameCount = 0
	p.updateCount = 0
	p.lastTime = current
	return true
}
