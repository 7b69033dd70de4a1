package pulse

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// FieldBuilderOption is a functional option for configuring a wave Field.
type FieldBuilderOption func(f *fieldImpl)

// WithRings sets the grid size. Columns wrap around; rows do not.
//
// Parameters:
//   - rows: number of rows
//   - cols: tiles per row
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithRings(rows, cols int) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.rows = rows
		f.cols = cols
	}
}

// WithReach sets the largest ring distance a pulse travels.
func WithReach(reach int) FieldBuilderOption {
	return func(f *fieldImpl) {
		if reach >= 0 {
			f.reach = reach
		}
	}
}

// WithStepDelay sets the delay added per unit of ring distance.
func WithStepDelay(d time.Duration) FieldBuilderOption {
	return func(f *fieldImpl) {
		if d >= 0 {
			f.stepDelay = d
		}
	}
}

// WithLifetime sets how many ticks an effect animates before it is removed.
func WithLifetime(ticks int) FieldBuilderOption {
	return func(f *fieldImpl) {
		if ticks > 0 {
			f.lifetime = ticks
		}
	}
}

// WithMove sets the displacement per unit of phase and how much it shrinks per ring distance.
//
// Parameters:
//   - move: displacement step at the origin
//   - falloff: reduction of the step per unit of ring distance
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithMove(move, falloff float64) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.move = move
		f.falloff = falloff
	}
}

// WithScaleStep sets the scale change per unit of phase.
func WithScaleStep(step float64) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.scaleStep = step
	}
}

// WithBaseColor sets the resting tile colour.
func WithBaseColor(c HSL) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.base = c
	}
}

// WithNodes binds tiles to scene nodes. handles[id] is the node of tile id; its local transform
// at construction is the rest pose that displacement and scale are applied to.
//
// Parameters:
//   - graph: the scene graph owning the nodes
//   - handles: one node per tile, in id order
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithNodes(graph scene.Graph, handles []scene.Handle) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.graph = graph
		f.handles = handles
	}
}

// WithSpin rotates group by angle radians around axis every tick. Requires WithNodes.
//
// Parameters:
//   - group: the group holding the tiles
//   - axis: spin axis (normalized internally)
//   - angle: radians per tick
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithSpin(group scene.Handle, axis r3.Vec, angle float64) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.spinGroup = group
		f.spin = common.AxisAngle(axis, angle)
		f.spinning = true
	}
}
