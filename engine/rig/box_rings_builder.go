package rig

// BoxRingsBuilderOption is a functional option for configuring BoxRings.
type BoxRingsBuilderOption func(br *boxRingsImpl)

// WithRows sets the number of rings from pole to pole.
func WithRows(n int) BoxRingsBuilderOption {
	return func(br *boxRingsImpl) {
		br.rows = n
	}
}

// WithSilhouette sets the sphere the rings follow.
//
// Parameters:
//   - diameter: distance scale of the silhouette
//   - offset: extra radius added to every ring
//
// Returns:
//   - BoxRingsBuilderOption: option function to apply
func WithSilhouette(diameter, offset float64) BoxRingsBuilderOption {
	return func(br *boxRingsImpl) {
		br.diameter = diameter
		br.offset = offset
	}
}

// WithSpacing sets the arc length reserved for each box.
func WithSpacing(spacing float64) BoxRingsBuilderOption {
	return func(br *boxRingsImpl) {
		if spacing > 0 {
			br.spacing = spacing
		}
	}
}

// WithDrift sets how far a ring turns per frame, scaled down by the ring radius.
func WithDrift(drift float64) BoxRingsBuilderOption {
	return func(br *boxRingsImpl) {
		br.drift = drift
	}
}
