package tween

// EaseFunc maps linear progress t in [0, 1] to eased progress.
type EaseFunc func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// Power1Out decelerates quadratically.
func Power1Out(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Power2Out decelerates cubically. This is the gallery's show/hide curve.
func Power2Out(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Power2In accelerates cubically.
func Power2In(t float64) float64 {
	return t * t * t
}

// Power2InOut accelerates then decelerates cubically.
func Power2InOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
