package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-motion/engine"
	"github.com/Carmen-Shannon/oxy-motion/engine/cull"
	"github.com/Carmen-Shannon/oxy-motion/engine/layout"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/path"
	"github.com/Carmen-Shannon/oxy-motion/engine/pulse"
	"github.com/Carmen-Shannon/oxy-motion/engine/rig"
)

// maxFileSize bounds tuning files.
const maxFileSize = 1 * 1024 * 1024

// DestinationConfig is a named flight destination in degrees.
type DestinationConfig struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Tuning is the JSON tuning file. Every field is optional; unset fields keep the component
// defaults. Components are only enabled when their section is present.
type Tuning struct {
	TickRate *float64 `json:"tick_rate,omitempty"`

	// Input inactivity timeouts, duration strings like "50ms".
	WheelTimeout   *string `json:"wheel_timeout,omitempty"`
	TouchTimeout   *string `json:"touch_timeout,omitempty"`
	PointerTimeout *string `json:"pointer_timeout,omitempty"`

	// Scroll speed and blend.
	SpeedGain    *float64 `json:"speed_gain,omitempty"`
	SpeedCeiling *float64 `json:"speed_ceiling,omitempty"`
	SpeedFloor   *float64 `json:"speed_floor,omitempty"`
	SpeedDecay   *float64 `json:"speed_decay,omitempty"`
	BlendStep    *float64 `json:"blend_step,omitempty"`

	// Gallery.
	GalleryCount *int    `json:"gallery_count,omitempty"`
	StartMode    *string `json:"start_mode,omitempty"` // "spiral" or "horizon"
	Stagger      *string `json:"stagger,omitempty"`
	Duration     *string `json:"duration,omitempty"`
	HoverTime    *string `json:"hover_time,omitempty"`

	// Culling.
	CullMarginX           *float64 `json:"cull_margin_x,omitempty"`
	CullMarginY           *float64 `json:"cull_margin_y,omitempty"`
	CullParallelThreshold *int     `json:"cull_parallel_threshold,omitempty"`
	CullWorkers           *int     `json:"cull_workers,omitempty"`

	// Homing. Destinations enable it.
	GlobeRadius  *float64            `json:"globe_radius,omitempty"`
	TurnRate     *float64            `json:"turn_rate,omitempty"`
	MaxSpeed     *float64            `json:"max_speed,omitempty"`
	MinSpeed     *float64            `json:"min_speed,omitempty"`
	Destinations []DestinationConfig `json:"destinations,omitempty"`

	// Pulse sphere. SphereRadius enables it.
	SphereRadius   *float64 `json:"sphere_radius,omitempty"`
	SphereSplitRow *int     `json:"sphere_split_row,omitempty"`
	SphereSplitCol *int     `json:"sphere_split_col,omitempty"`
	PulseStepDelay *string  `json:"pulse_step_delay,omitempty"`
	PulseLifetime  *int     `json:"pulse_lifetime,omitempty"`

	// Rigs.
	Fan      *bool `json:"fan,omitempty"`
	BoxRings *bool `json:"box_rings,omitempty"`
	Carousel *bool `json:"carousel,omitempty"`
	Mobile   *bool `json:"mobile,omitempty"`
}

// Load reads a Tuning from a JSON file.
// The file must have a .json extension and be at most 1 MiB.
//
// Parameters:
//   - file: path to the tuning file
//
// Returns:
//   - *Tuning: the parsed and validated tuning
//   - error: a wrapped error if the file cannot be read, parsed or validated
func Load(file string) (*Tuning, error) {
	cleanPath := filepath.Clean(file)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	t := &Tuning{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return t, nil
}

// Validate checks that set values are usable.
func (t *Tuning) Validate() error {
	durations := map[string]*string{
		"wheel_timeout":    t.WheelTimeout,
		"touch_timeout":    t.TouchTimeout,
		"pointer_timeout":  t.PointerTimeout,
		"stagger":          t.Stagger,
		"duration":         t.Duration,
		"hover_time":       t.HoverTime,
		"pulse_step_delay": t.PulseStepDelay,
	}
	for name, v := range durations {
		if _, err := parseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, *v, err)
		}
	}

	if t.TickRate != nil && *t.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %f", *t.TickRate)
	}
	if t.BlendStep != nil && (*t.BlendStep <= 0 || *t.BlendStep > 1) {
		return fmt.Errorf("blend_step must be in (0, 1], got %f", *t.BlendStep)
	}
	if t.SpeedDecay != nil && (*t.SpeedDecay < 0 || *t.SpeedDecay > 1) {
		return fmt.Errorf("speed_decay must be in [0, 1], got %f", *t.SpeedDecay)
	}
	if t.SpeedFloor != nil && t.SpeedCeiling != nil && *t.SpeedFloor > *t.SpeedCeiling {
		return fmt.Errorf("speed_floor %f exceeds speed_ceiling %f", *t.SpeedFloor, *t.SpeedCeiling)
	}
	if t.GalleryCount != nil && *t.GalleryCount <= 0 {
		return fmt.Errorf("gallery_count must be positive, got %d", *t.GalleryCount)
	}
	if t.StartMode != nil && *t.StartMode != "spiral" && *t.StartMode != "horizon" {
		return fmt.Errorf("start_mode must be \"spiral\" or \"horizon\", got %q", *t.StartMode)
	}
	if t.SphereRadius != nil && *t.SphereRadius <= 0 {
		return fmt.Errorf("sphere_radius must be positive, got %f", *t.SphereRadius)
	}
	if t.SphereSplitRow != nil && *t.SphereSplitRow < 4 {
		return fmt.Errorf("sphere_split_row must be at least 4, got %d", *t.SphereSplitRow)
	}

	seen := make(map[string]bool, len(t.Destinations))
	for _, d := range t.Destinations {
		if d.ID == "" {
			return fmt.Errorf("destination without id")
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate destination %q", d.ID)
		}
		seen[d.ID] = true
		if d.Lat < -90 || d.Lat > 90 {
			return fmt.Errorf("destination %q latitude out of range: %f", d.ID, d.Lat)
		}
	}
	return nil
}

// parseDuration parses an optional duration string. Unset and empty values give 0.
func parseDuration(v *string) (time.Duration, error) {
	if v == nil || *v == "" {
		return 0, nil
	}
	return time.ParseDuration(*v)
}

// duration returns the parsed value of a validated duration field.
func duration(v *string) time.Duration {
	d, _ := parseDuration(v)
	return d
}

// GetTickRate returns the tick rate or the 60Hz default.
func (t *Tuning) GetTickRate() float64 {
	if t.TickRate == nil {
		return 60
	}
	return *t.TickRate
}

// GetGlobeRadius returns the homing sphere radius or the default of 50.
func (t *Tuning) GetGlobeRadius() float64 {
	if t.GlobeRadius == nil {
		return 50
	}
	return *t.GlobeRadius
}

// CoreOptions converts the set fields into core options. Call Validate (or use Load) first.
//
// Returns:
//   - []engine.CoreBuilderOption: the options, in a fixed order
func (t *Tuning) CoreOptions() []engine.CoreBuilderOption {
	var out []engine.CoreBuilderOption

	out = append(out, engine.WithInputTimeouts(duration(t.WheelTimeout), duration(t.TouchTimeout), duration(t.PointerTimeout)))

	var speed []motion.SpeedControllerBuilderOption
	if t.SpeedGain != nil {
		speed = append(speed, motion.WithGain(*t.SpeedGain))
	}
	if t.SpeedCeiling != nil {
		speed = append(speed, motion.WithCeiling(*t.SpeedCeiling))
	}
	if t.SpeedFloor != nil {
		speed = append(speed, motion.WithFloor(*t.SpeedFloor))
	}
	if t.SpeedDecay != nil {
		speed = append(speed, motion.WithDecay(*t.SpeedDecay))
	}
	if len(speed) > 0 {
		out = append(out, engine.WithSpeed(speed...))
	}
	if t.BlendStep != nil {
		out = append(out, engine.WithBlend(motion.WithStep(*t.BlendStep)))
	}

	var culling []cull.CullerBuilderOption
	if t.CullMarginX != nil || t.CullMarginY != nil {
		x, y := float64(cull.DefaultMarginX), float64(cull.DefaultMarginY)
		if t.CullMarginX != nil {
			x = *t.CullMarginX
		}
		if t.CullMarginY != nil {
			y = *t.CullMarginY
		}
		culling = append(culling, cull.WithMargin(x, y))
	}
	if t.CullParallelThreshold != nil {
		culling = append(culling, cull.WithParallelThreshold(*t.CullParallelThreshold))
	}
	if t.CullWorkers != nil {
		culling = append(culling, cull.WithWorkers(*t.CullWorkers))
	}
	if len(culling) > 0 {
		out = append(out, engine.WithCuller(culling...))
	}

	if t.GalleryCount != nil {
		var gallery []layout.GalleryBuilderOption
		if d := duration(t.Stagger); d > 0 {
			gallery = append(gallery, layout.WithStagger(d))
		}
		if d := duration(t.Duration); d > 0 {
			gallery = append(gallery, layout.WithDuration(d))
		}
		if d := duration(t.HoverTime); d > 0 {
			gallery = append(gallery, layout.WithHoverTime(d))
		}
		out = append(out, engine.WithGallery(*t.GalleryCount, gallery...))
		if t.StartMode != nil && *t.StartMode == "horizon" {
			out = append(out, engine.WithStartMode(layout.ModeHorizon))
		}
	}

	if len(t.Destinations) > 0 {
		radius := t.GetGlobeRadius()
		dests := make([]path.Destination, len(t.Destinations))
		for i, d := range t.Destinations {
			dests[i] = path.LatLng(d.ID, d.Lat, d.Lng, radius)
		}
		homing := []path.HomingBuilderOption{path.WithRadius(radius), path.WithDestinations(dests...)}
		if t.TurnRate != nil {
			homing = append(homing, path.WithTurnRate(*t.TurnRate))
		}
		if t.MaxSpeed != nil {
			homing = append(homing, path.WithMaxSpeed(*t.MaxSpeed))
		}
		if t.MinSpeed != nil {
			homing = append(homing, path.WithMinSpeed(*t.MinSpeed))
		}
		out = append(out, engine.WithHoming(homing...))
	}

	if t.SphereRadius != nil {
		splitRow, splitCol := 30, 60
		if t.SphereSplitRow != nil {
			splitRow = *t.SphereSplitRow
		}
		if t.SphereSplitCol != nil {
			splitCol = *t.SphereSplitCol
		}
		var field []pulse.FieldBuilderOption
		if d := duration(t.PulseStepDelay); d > 0 {
			field = append(field, pulse.WithStepDelay(d))
		}
		if t.PulseLifetime != nil {
			field = append(field, pulse.WithLifetime(*t.PulseLifetime))
		}
		out = append(out, engine.WithPulseSphere(*t.SphereRadius, splitRow, splitCol, field...))
	}

	if t.Fan != nil && *t.Fan {
		out = append(out, engine.WithFan())
	}
	if t.BoxRings != nil && *t.BoxRings {
		out = append(out, engine.WithBoxRings())
	}
	if t.Carousel != nil && *t.Carousel {
		var carousel []rig.CarouselBuilderOption
		if t.Mobile != nil && *t.Mobile {
			carousel = append(carousel, rig.WithMobile())
		}
		out = append(out, engine.WithCarousel(carousel...))
	}
	return out
}
