package rig

import "github.com/Carmen-Shannon/oxy-motion/engine/motion"

// CarouselBuilderOption is a functional option for configuring a Carousel.
type CarouselBuilderOption func(c *carouselImpl)

// WithGrid sets the number of plane rows and columns.
func WithGrid(rows, cols int) CarouselBuilderOption {
	return func(c *carouselImpl) {
		if rows > 0 && cols > 0 {
			c.rows = rows
			c.cols = cols
		}
	}
}

// WithCylinder sets the cylinder radius, its height and the vertical span shared by the rows.
//
// Parameters:
//   - radius: cylinder radius
//   - height: cylinder height, used for the scroll limits
//   - rowSpacing: total height the plane rows are spread over
//
// Returns:
//   - CarouselBuilderOption: option function to apply
func WithCylinder(radius, height, rowSpacing float64) CarouselBuilderOption {
	return func(c *carouselImpl) {
		c.radius = radius
		c.height = height
		c.rowSpacing = rowSpacing
	}
}

// WithCameraDistance sets the camera distance used for the scroll limits.
func WithCameraDistance(z float64) CarouselBuilderOption {
	return func(c *carouselImpl) {
		c.cameraZ = z
	}
}

// WithAutoTurn sets the idle turn rate in radians per second.
func WithAutoTurn(rate float64) CarouselBuilderOption {
	return func(c *carouselImpl) {
		c.autoTurn = rate
	}
}

// WithMobile shrinks the cylinder for touch screens and raises the scroll sensitivity.
func WithMobile() CarouselBuilderOption {
	return func(c *carouselImpl) {
		c.mobile = true
	}
}

// WithBlender shares a TransitionBlender with the carousel.
func WithBlender(b motion.TransitionBlender) CarouselBuilderOption {
	return func(c *carouselImpl) {
		c.blender = b
	}
}
