package scene

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// TransformUpdate is one local transform written during a frame.
type TransformUpdate struct {
	Handle    Handle
	Transform common.Transform
}

// Recorder wraps a Graph and remembers every local transform written through it, so a frame
// can report the transforms it changed. Only the last write per handle is kept.
type Recorder struct {
	Graph

	written map[Handle]common.Transform
}

var _ Graph = &Recorder{}

// NewRecorder wraps g.
func NewRecorder(g Graph) *Recorder {
	return &Recorder{
		Graph:   g,
		written: make(map[Handle]common.Transform),
	}
}

// SetLocalTransform forwards to the wrapped graph and records the write.
func (r *Recorder) SetLocalTransform(h Handle, t common.Transform) {
	r.Graph.SetLocalTransform(h, t)
	r.written[h] = t
}

// Flush returns the recorded updates ordered by handle and clears the record.
func (r *Recorder) Flush() []TransformUpdate {
	if len(r.written) == 0 {
		return nil
	}
	out := make([]TransformUpdate, 0, len(r.written))
	for h, t := range r.written {
		out = append(out, TransformUpdate{Handle: h, Transform: t})
	}
	slices.SortFunc(out, func(a, b TransformUpdate) int {
		switch {
		case a.Handle < b.Handle:
			return -1
		case a.Handle > b.Handle:
			return 1
		}
		return 0
	})
	clear(r.written)
	return out
}
