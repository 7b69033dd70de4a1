package layout

import (
	"time"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/cull"
	"github.com/Carmen-Shannon/oxy-motion/engine/tween"
)

// GalleryBuilderOption is a functional option for configuring a Gallery.
type GalleryBuilderOption func(g *galleryImpl)

// WithPlaneSize sets the size of every item plane.
//
// Parameters:
//   - width: plane width (default 10)
//   - height: plane height (default 10 * 1080 / 1920)
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithPlaneSize(width, height float64) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if width > 0 && height > 0 {
			g.width, g.height = width, height
		}
	}
}

// WithSegments sets the number of plane cells per side.
func WithSegments(n int) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if n > 0 {
			g.segments = n
		}
	}
}

// WithSpiral sets the spiral layout parameters.
func WithSpiral(cfg SpiralConfig) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.spiralCfg = cfg
	}
}

// WithHorizon sets the horizon layout parameters.
func WithHorizon(cfg HorizonConfig) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.horizonCfg = cfg
	}
}

// WithStagger sets the delay between consecutive in-view items in a hide or show wave.
func WithStagger(d time.Duration) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if d >= 0 {
			g.stagger = d
		}
	}
}

// WithDuration sets the length of a single hide or show.
func WithDuration(d time.Duration) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if d >= 0 {
			g.duration = d
		}
	}
}

// WithHoverTime sets the hover cross-fade length.
func WithHoverTime(d time.Duration) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if d >= 0 {
			g.hoverTime = d
		}
	}
}

// WithEase sets the easing of hides and shows.
func WithEase(ease tween.EaseFunc) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if ease != nil {
			g.ease = ease
		}
	}
}

// WithFovY sets the camera field of view, in degrees, used for the visible bounds.
func WithFovY(deg float64) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if deg > 0 {
			g.fovY = common.Radians(deg)
		}
	}
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height float64) GalleryBuilderOption {
	return func(g *galleryImpl) {
		if width > 0 && height > 0 {
			g.viewW, g.viewH = width, height
		}
	}
}

// WithTweener shares an existing Tweener instead of creating one.
func WithTweener(tw tween.Tweener) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.tw = tw
	}
}

// WithCuller lets the gallery re-cull its items right after they move into a new layout,
// so the show stagger follows what is visible in that layout.
func WithCuller(c cull.Culler) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.culler = c
	}
}
