package card

import (
	"math"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

// Defaults for a card presentation.
const (
	DefaultDismissThreshold  = 240.0
	DefaultDimAlpha          = 0.51
	DefaultCornerRadius      = 10.0
	DefaultContentAdjustment = 13.0
	// MinTopInset is the smallest gap kept above the card, even on hosts
	// without a safe area.
	MinTopInset = 30.0
)

// DefaultIndicatorColor is the light grey of the drag indicator.
var DefaultIndicatorColor = graphics.RGB(202, 201, 207)

// HostMetrics carries the screen facts that would otherwise be ambient
// lookups.
type HostMetrics struct {
	// SafeAreaTop is the host's top safe-area inset.
	SafeAreaTop float64
	// DisplayScale is device pixels per logical unit. Zero means 1.
	DisplayScale float64
}

// Config is the per-presentation configuration. It is read-only once the
// presentation begins, except for the custom height, which the presented
// content may change at any time through Transition.UpdateCustomHeight.
type Config struct {
	ScaleEnabled          bool
	FrictionEnabled       bool
	SwipeToDismissEnabled bool
	TapToDismissEnabled   bool
	ShowIndicator         bool
	IndicatorColor        graphics.Color
	DismissThreshold      float64
	CornerRadius          float64
	DimAlpha              float64
	// TopInset is max(SafeAreaTop, MinTopInset).
	TopInset float64
	// ContentAdjustment is the gap between the scaled background card and
	// the top of the presented card.
	ContentAdjustment float64
	DisplayScale      float64

	customHeight    float64
	hasCustomHeight bool
}

// Option configures a Config.
type Option func(*Config)

// NewConfig builds a configuration from host metrics and options.
func NewConfig(metrics HostMetrics, opts ...Option) *Config {
	scale := metrics.DisplayScale
	if scale <= 0 {
		scale = 1
	}
	c := &Config{
		ScaleEnabled:          true,
		FrictionEnabled:       true,
		SwipeToDismissEnabled: true,
		TapToDismissEnabled:   true,
		ShowIndicator:         true,
		IndicatorColor:        DefaultIndicatorColor,
		DismissThreshold:      DefaultDismissThreshold,
		CornerRadius:          DefaultCornerRadius,
		DimAlpha:              DefaultDimAlpha,
		TopInset:              math.Max(metrics.SafeAreaTop, MinTopInset),
		ContentAdjustment:     DefaultContentAdjustment,
		DisplayScale:          scale,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithScale toggles scaling of the presenting snapshot.
func WithScale(enabled bool) Option {
	return func(c *Config) { c.ScaleEnabled = enabled }
}

// WithFriction toggles rubber-band friction on the drag.
func WithFriction(enabled bool) Option {
	return func(c *Config) { c.FrictionEnabled = enabled }
}

// WithSwipeToDismiss toggles interactive dismissal.
func WithSwipeToDismiss(enabled bool) Option {
	return func(c *Config) { c.SwipeToDismissEnabled = enabled }
}

// WithTapToDismiss toggles dismissal by tapping the dimmed background.
func WithTapToDismiss(enabled bool) Option {
	return func(c *Config) { c.TapToDismissEnabled = enabled }
}

// WithIndicator toggles the drag indicator.
func WithIndicator(show bool) Option {
	return func(c *Config) { c.ShowIndicator = show }
}

// WithIndicatorColor sets the drag indicator's tint.
func WithIndicatorColor(c graphics.Color) Option {
	return func(cfg *Config) { cfg.IndicatorColor = c }
}

// WithCustomHeight sets the initial custom content height.
func WithCustomHeight(h float64) Option {
	return func(c *Config) { c.SetCustomHeight(h) }
}

// WithDismissThreshold sets the translation at which a released drag
// dismisses. Non-positive values keep the default.
func WithDismissThreshold(v float64) Option {
	return func(c *Config) {
		if v > 0 {
			c.DismissThreshold = v
		}
	}
}

// WithCornerRadius sets the card corner radius.
func WithCornerRadius(r float64) Option {
	return func(c *Config) { c.CornerRadius = math.Max(r, 0) }
}

// WithDimAlpha sets the resting opacity of the dimming overlay.
func WithDimAlpha(a float64) Option {
	return func(c *Config) { c.DimAlpha = math.Min(math.Max(a, 0), 1) }
}

// WithContentAdjustment sets the gap above the presented card.
func WithContentAdjustment(v float64) Option {
	return func(c *Config) { c.ContentAdjustment = math.Max(v, 0) }
}

// WithDisplayScale overrides the display scale used for pixel rounding.
// Non-positive values are ignored.
func WithDisplayScale(scale float64) Option {
	return func(c *Config) {
		if scale > 0 {
			c.DisplayScale = scale
		}
	}
}

// CustomHeight returns the custom height and whether one is set.
func (c *Config) CustomHeight() (float64, bool) {
	return c.customHeight, c.hasCustomHeight
}

// SetCustomHeight sets the custom content height. Range checking happens
// against the container when the frame is computed.
func (c *Config) SetCustomHeight(h float64) {
	c.customHeight = h
	c.hasCustomHeight = true
}

// ClearCustomHeight reverts to a full-height card.
func (c *Config) ClearCustomHeight() {
	c.customHeight = 0
	c.hasCustomHeight = false
}
