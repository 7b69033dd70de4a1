package common

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// MixColor interpolates between a and b by t, clamping t to [0, 1].
//
// Parameters:
//   - a: the colour at t = 0
//   - b: the colour at t = 1
//   - t: the blend amount
//
// Returns:
//   - Color: the blended colour
func MixColor(a, b Color, t float64) Color {
	t = Clamp(t, 0, 1)
	return Color{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
		A: Lerp(a.A, b.A, t),
	}
}
