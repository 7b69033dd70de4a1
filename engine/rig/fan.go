package rig

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

// Fan is a desk fan with stepped power levels and optional horizontal and vertical swing.
// Blade speed ramps toward the power level by a fixed step per frame.
type Fan interface {
	Rig
	KeyListener

	// Toggle switches the fan on at level 1, or off.
	Toggle()

	// Faster raises the power level by one, up to the top level. Ignored while off.
	Faster()

	// Slower lowers the power level by one, down to 1. Ignored while off.
	Slower()

	// SetSwing enables or disables the horizontal and vertical swing.
	SetSwing(horizontal, vertical bool)

	// On reports whether the fan is switched on.
	On() bool

	// Power returns the power level, 0 while off.
	Power() int

	// Speed returns the current blade speed.
	Speed() float64

	// BladeAngle returns the accumulated blade rotation in radians.
	BladeAngle() float64

	// Body returns the group that swings.
	Body() scene.Handle

	// Blades returns the group that spins.
	Blades() scene.Handle
}

type fanImpl struct {
	graph scene.Graph

	levels     int
	bladeCount int
	spin       float64
	swingStep  float64
	swingAmp   float64

	root, body, blades   scene.Handle
	bodyRest, bladesRest common.Transform

	on, swingH, swingV   bool
	power                int
	speed                motion.Ramp
	move                 float64
	horizontal, vertical float64
}

var _ Fan = &fanImpl{}

// NewFan builds a fan under parent: a stand group lifted 6 units, a swinging body and a blade
// hub 9 units forward holding evenly spaced blades.
// Panics if graph is nil.
//
// Parameters:
//   - graph: the scene graph to build into
//   - parent: the parent group (scene.Root for top level)
//   - options: functional options to configure the fan
//
// Returns:
//   - Fan: the new fan, switched off
func NewFan(graph scene.Graph, parent scene.Handle, options ...FanBuilderOption) Fan {
	if graph == nil {
		panic("rig: NewFan requires a non-nil Graph")
	}
	f := &fanImpl{
		graph:      graph,
		levels:     5,
		bladeCount: 4,
		spin:       0.1,
		swingStep:  0.4,
		swingAmp:   0.3,
		speed:      motion.Ramp{Step: 0.01, Round: true},
	}
	for _, opt := range options {
		opt(f)
	}

	f.root = graph.AddGroup(parent)
	rootT := common.IdentityTransform()
	rootT.Position = r3.Vec{Y: 6}
	graph.SetLocalTransform(f.root, rootT)

	f.body = graph.AddGroup(f.root)
	f.bodyRest = graph.LocalTransform(f.body)

	f.blades = graph.AddGroup(f.body)
	f.bladesRest = common.IdentityTransform()
	f.bladesRest.Position = r3.Vec{Z: 9}
	graph.SetLocalTransform(f.blades, f.bladesRest)

	for i := range f.bladeCount {
		wrap := graph.AddGroup(f.blades)
		graph.SetLocalTransform(wrap, withRotation(common.IdentityTransform(), 0, 0, 2*math.Pi*float64(i)/float64(f.bladeCount)))
		graph.AddNode(wrap, withRotation(common.IdentityTransform(), 0, 0.2, 0), 0)
	}
	return f
}

func (f *fanImpl) Update(time.Duration) {
	f.speed.Tick(float64(f.power))
	f.move -= common.Round2(f.speed.Value * f.spin)
	f.graph.SetLocalTransform(f.blades, withRotation(f.bladesRest, 0, 0, f.move))

	if !f.on {
		return
	}
	swung := false
	if f.swingH {
		f.horizontal += f.swingStep
		swung = true
	}
	if f.swingV {
		f.vertical += f.swingStep
		swung = true
	}
	if swung {
		f.graph.SetLocalTransform(f.body, withRotation(f.bodyRest,
			math.Sin(common.Radians(f.vertical))*f.swingAmp,
			math.Sin(common.Radians(f.horizontal))*f.swingAmp,
			0,
		))
	}
}

func (f *fanImpl) Root() scene.Handle {
	return f.root
}

func (f *fanImpl) OnKey(code uint32) bool {
	switch code {
	case common.KeyP:
		f.Toggle()
	case common.KeyF:
		f.Faster()
	case common.KeyS:
		f.Slower()
	case common.KeyH:
		f.SetSwing(!f.swingH, f.swingV)
	case common.KeyV:
		f.SetSwing(f.swingH, !f.swingV)
	default:
		return false
	}
	return true
}

func (f *fanImpl) Toggle() {
	if f.on {
		f.on = false
		f.power = 0
		return
	}
	f.on = true
	f.step(1)
}

func (f *fanImpl) Faster() {
	if f.on {
		f.step(1)
	}
}

func (f *fanImpl) Slower() {
	if f.on {
		f.step(-1)
	}
}

// step changes the power level. From 0 any step lands on level 1.
func (f *fanImpl) step(delta int) {
	if f.power == 0 {
		f.power = 1
		return
	}
	f.power = max(1, min(f.power+delta, f.levels))
}

func (f *fanImpl) SetSwing(horizontal, vertical bool) {
	f.swingH = horizontal
	f.swingV = vertical
}

func (f *fanImpl) On() bool {
	return f.on
}

func (f *fanImpl) Power() int {
	return f.power
}

func (f *fanImpl) Speed() float64 {
	return f.speed.Value
}

func (f *fanImpl) BladeAngle() float64 {
	return f.move
}

func (f *fanImpl) Body() scene.Handle {
	return f.body
}

func (f *fanImpl) Blades() scene.Handle {
	return f.blades
}
