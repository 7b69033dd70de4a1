package cull

import "github.com/Carmen-Shannon/oxy-motion/common"

// CullerBuilderOption is a functional option for configuring a Culler.
type CullerBuilderOption func(c *cullerImpl)

// WithBounds sets the initial visible bounds.
func WithBounds(b common.Bounds) CullerBuilderOption {
	return func(c *cullerImpl) {
		c.bounds = b
	}
}

// WithMargin sets the growth applied to each side of the bounds before testing.
//
// Parameters:
//   - x: horizontal margin
//   - y: vertical margin
//
// Returns:
//   - CullerBuilderOption: option function to apply
func WithMargin(x, y float64) CullerBuilderOption {
	return func(c *cullerImpl) {
		c.marginX = x
		c.marginY = y
	}
}

// WithParallelThreshold sets the batch size above which UpdateAll uses the worker pool.
func WithParallelThreshold(n int) CullerBuilderOption {
	return func(c *cullerImpl) {
		c.threshold = n
	}
}

// WithWorkers sets the worker pool size. Values below 2 keep culling on the calling goroutine.
func WithWorkers(n int) CullerBuilderOption {
	return func(c *cullerImpl) {
		c.workers = n
	}
}
