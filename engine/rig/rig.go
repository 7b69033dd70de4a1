// Package rig holds small self-contained animated assemblies: a desk fan, counter-rotating
// rings of boxes and a scrollable cylinder carousel. Each rig owns a subtree of a scene.Graph
// and rewrites its transforms once per frame.
package rig

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// Rig is an assembly animated one frame at a time.
type Rig interface {
	// Update advances the rig by one frame.
	//
	// Parameters:
	//   - dt: elapsed frame time; per-frame rigs ignore it
	Update(dt time.Duration)

	// Root returns the group holding the rig's nodes.
	Root() scene.Handle
}

// ScrollListener receives wheel or touch scroll deltas.
type ScrollListener interface {
	OnScroll(delta float64, touch bool)
}

// PointerListener receives the pointer position centered on the viewport, both axes in
// [-0.5, 0.5] with +y down.
type PointerListener interface {
	OnPointer(cx, cy float64)
}

// KeyListener receives key presses and reports whether the key was used.
type KeyListener interface {
	OnKey(code uint32) bool
}

// withRotation returns rest with its rotation replaced.
func withRotation(rest common.Transform, x, y, z float64) common.Transform {
	rest.Rotation = common.EulerXYZ(x, y, z)
	return rest
}
