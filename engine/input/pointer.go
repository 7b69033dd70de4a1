package input

import (
	"math"
	"time"
)

// NormalizePointer maps a pixel position to normalized device coordinates,
// x and y in [-1, 1] with +y up. A zero-sized viewport maps to the origin.
func NormalizePointer(x, y, width, height float64) (ndcX, ndcY float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/width*2 - 1, -(y/height*2 - 1)
}

// CenteredPointer maps a pixel position to [-0.5, 0.5] on both axes with +y down.
func CenteredPointer(x, y, width, height float64) (cx, cy float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/width - 0.5, y/height - 0.5
}

// Default tap limits.
const (
	TapMaxDuration = 300 * time.Millisecond
	TapMaxDistance = 10.0
)

// TapDetector recognises a short, nearly stationary touch as a tap.
// The zero value uses TapMaxDuration and TapMaxDistance.
type TapDetector struct {
	MaxDuration time.Duration
	MaxDistance float64

	startX, startY float64
	startAt        time.Duration
	down           bool
}

// Begin records the start of a touch.
func (d *TapDetector) Begin(x, y float64, at time.Duration) {
	d.startX, d.startY = x, y
	d.startAt = at
	d.down = true
}

// End finishes the touch started by Begin and reports whether it was a tap.
// Without a matching Begin it reports false.
//
// Parameters:
//   - x, y: the touch end position in pixels
//   - at: the touch end timestamp
//
// Returns:
//   - bool: true if the touch was short enough and moved little enough
func (d *TapDetector) End(x, y float64, at time.Duration) bool {
	if !d.down {
		return false
	}
	d.down = false
	maxDuration := d.MaxDuration
	if maxDuration <= 0 {
		maxDuration = TapMaxDuration
	}
	maxDistance := d.MaxDistance
	if maxDistance <= 0 {
		maxDistance = TapMaxDistance
	}
	dist := math.Hypot(x-d.startX, y-d.startY)
	return at-d.startAt < maxDuration && dist < maxDistance
}

// DragTracker turns absolute cursor positions into movement deltas. Deltas are only reported
// while a button is held; the first position after a press starts the drag without a delta.
type DragTracker struct {
	lastX, lastY float64
	known        bool
	pressed      bool
}

// Press starts a drag.
func (d *DragTracker) Press() {
	d.pressed = true
	d.known = false
}

// Release ends the drag.
func (d *DragTracker) Release() {
	d.pressed = false
}

// Pressed reports whether a drag is in progress.
func (d *DragTracker) Pressed() bool {
	return d.pressed
}

// Move records a cursor position.
//
// Parameters:
//   - x, y: the cursor position in pixels
//
// Returns:
//   - dx, dy: movement since the previous position
//   - ok: true if the movement belongs to a drag
func (d *DragTracker) Move(x, y float64) (dx, dy float64, ok bool) {
	if d.known {
		dx, dy = x-d.lastX, y-d.lastY
	}
	ok = d.pressed && d.known
	d.lastX, d.lastY = x, y
	d.known = true
	return dx, dy, ok
}
