package motion

import (
	"math"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// TransitionBlender ramps a factor between 0 (idle, autonomous motion) and 1
// (input-driven motion) by a fixed step per frame.
type TransitionBlender interface {
	// Tick moves the factor one step toward 1 when active, toward 0 otherwise.
	//
	// Parameters:
	//   - active: whether the user is interacting this frame
	//
	// Returns:
	//   - float64: the updated factor in [0, 1]
	Tick(active bool) float64

	// Factor returns the current factor.
	Factor() float64

	// Blend mixes an idle value and a driven value by the current factor.
	Blend(idle, driven float64) float64
}

type transitionBlenderImpl struct {
	step   float64
	factor float64
}

var _ TransitionBlender = &transitionBlenderImpl{}

// NewTransitionBlender creates a TransitionBlender with step 0.03, starting at factor 0.
func NewTransitionBlender(options ...TransitionBlenderBuilderOption) TransitionBlender {
	tb := &transitionBlenderImpl{step: 0.03}
	for _, opt := range options {
		opt(tb)
	}
	return tb
}

func (tb *transitionBlenderImpl) Tick(active bool) float64 {
	if active {
		tb.factor = math.Min(tb.factor+tb.step, 1)
	} else {
		tb.factor = math.Max(tb.factor-tb.step, 0)
	}
	return tb.factor
}

func (tb *transitionBlenderImpl) Factor() float64 {
	return tb.factor
}

func (tb *transitionBlenderImpl) Blend(idle, driven float64) float64 {
	return common.Lerp(idle, driven, tb.factor)
}

// Ramp moves a value toward a target by a fixed step per tick without overshooting.
// The zero value never moves; set Step before use.
type Ramp struct {
	Value float64
	Step  float64

	// Round snaps the value to two decimals after each step.
	Round bool
}

// Tick moves Value one step toward target and returns it.
func (r *Ramp) Tick(target float64) float64 {
	if r.Value == target || r.Step <= 0 {
		return r.Value
	}
	if math.Abs(target-r.Value) <= r.Step {
		r.Value = target
		return r.Value
	}
	if target < r.Value {
		r.Value -= r.Step
	} else {
		r.Value += r.Step
	}
	if r.Round {
		r.Value = common.Round2(r.Value)
	}
	return r.Value
}
