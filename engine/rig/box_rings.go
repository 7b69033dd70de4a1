package rig

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// BoxRings lays boxes out in horizontal rings on a sphere-like silhouette. Every frame each
// ring drifts around the vertical axis, even rows one way and odd rows the other.
type BoxRings interface {
	Rig

	// Rows returns the number of rings.
	Rows() int

	// RowSize returns how many boxes ring row holds, or 0 for an unknown row.
	RowSize(row int) int

	// Boxes returns every box handle, row by row.
	Boxes() []scene.Handle

	// Tick returns the number of frames advanced so far.
	Tick() int
}

type ringBox struct {
	handle scene.Handle
	radius float64
	y      float64
	step   float64
	row    int
	index  int
}

type boxRingsImpl struct {
	graph scene.Graph

	rows     int
	diameter float64
	offset   float64
	spacing  float64
	drift    float64

	root     scene.Handle
	boxes    []ringBox
	rowSizes []int
	move     int
}

var _ BoxRings = &boxRingsImpl{}

// NewBoxRings builds the rings under parent. Row i sits at latitude 90 - i*180/(rows-1) degrees,
// its radius pushed out by a fixed offset, and holds enough boxes to cover its circumference at
// the configured spacing.
// Panics if graph is nil or fewer than two rows are configured.
//
// Parameters:
//   - graph: the scene graph to build into
//   - parent: the parent group (scene.Root for top level)
//   - options: functional options to configure the rings
//
// Returns:
//   - BoxRings: the new rings at frame 0
func NewBoxRings(graph scene.Graph, parent scene.Handle, options ...BoxRingsBuilderOption) BoxRings {
	if graph == nil {
		panic("rig: NewBoxRings requires a non-nil Graph")
	}
	br := &boxRingsImpl{
		graph:    graph,
		rows:     21,
		diameter: 20,
		offset:   2,
		spacing:  2,
		drift:    0.02,
	}
	for _, opt := range options {
		opt(br)
	}
	if br.rows < 2 {
		panic("rig: NewBoxRings requires at least two rows")
	}

	br.root = graph.AddGroup(parent)
	br.rowSizes = make([]int, br.rows)
	for i := range br.rows {
		lat := common.Radians(90 - float64(i)*180/float64(br.rows-1))
		radius := br.diameter*math.Cos(lat) + br.offset
		y := br.diameter * math.Sin(lat)
		count := int(math.Ceil(radius * 2 * math.Pi / br.spacing))
		br.rowSizes[i] = count
		for j := range count {
			b := ringBox{
				handle: graph.AddNode(br.root, common.IdentityTransform(), 0.5),
				radius: radius,
				y:      y,
				step:   2 * math.Pi / float64(count),
				row:    i,
				index:  j,
			}
			br.place(b)
			br.boxes = append(br.boxes, b)
		}
	}
	return br
}

// place writes the transform of b for the current frame.
func (br *boxRingsImpl) place(b ringBox) {
	direction := float64(br.move)
	if b.row%2 != 0 {
		direction = -direction
	}
	angle := float64(b.index)*b.step + direction/b.radius*br.drift
	sin, cos := math.Sincos(angle)
	t := withRotation(common.IdentityTransform(), 0, angle, 0)
	t.Position = r3.Vec{X: b.radius * sin, Y: b.y, Z: b.radius * cos}
	br.graph.SetLocalTransform(b.handle, t)
}

func (br *boxRingsImpl) Update(time.Duration) {
	br.move++
	for _, b := range br.boxes {
		br.place(b)
	}
}

func (br *boxRingsImpl) Root() scene.Handle {
	return br.root
}

func (br *boxRingsImpl) Rows() int {
	return br.rows
}

func (br *boxRingsImpl) RowSize(row int) int {
	if row < 0 || row >= len(br.rowSizes) {
		return 0
	}
	return br.rowSizes[row]
}

func (br *boxRingsImpl) Boxes() []scene.Handle {
	out := make([]scene.Handle, len(br.boxes))
	for i, b := range br.boxes {
		out[i] = b.handle
	}
	return out
}

func (br *boxRingsImpl) Tick() int {
	return br.move
}
