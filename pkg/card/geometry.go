package card

import (
	"math"

	"github.com/go-drift/cardsheet/pkg/errors"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// Friction constants. They were tuned by eye and have no derivation.
const (
	elasticThreshold  = 120.0
	translationFactor = 0.5
	frictionArc       = 30.0
	frictionLinear    = 10.0
)

// Background effect constants.
const (
	snapshotScaleDivisor = 6000.0
	dimScaleFactor       = 15.0
)

// PresentedFrame computes the card frame inside container.
//
// The result always satisfies y >= 0 and y+height == container.Height. A
// custom height outside [0, container.Height] is clamped; the returned
// RangeError describes the clamp and is nil otherwise.
func PresentedFrame(container graphics.Size, cfg *Config) (graphics.Rect, *errors.RangeError) {
	h := container.Height
	effective := h
	var rangeErr *errors.RangeError
	if custom, ok := cfg.CustomHeight(); ok {
		effective = custom
		if custom < 0 || custom > h {
			rangeErr = &errors.RangeError{Field: "customHeight", Value: custom, Min: 0, Max: math.Max(h, 0)}
			effective = rangeErr.Clamped()
		}
	}
	y := cfg.TopInset + cfg.ContentAdjustment + (h - effective)
	y = math.Min(math.Max(y, 0), math.Max(h, 0))
	return graphics.Rect{X: 0, Y: y, Width: container.Width, Height: h - y}, rangeErr
}

// OffscreenFrame returns target moved just below the container.
func OffscreenFrame(container graphics.Size, target graphics.Rect) graphics.Rect {
	return target.WithY(container.Height)
}

// PresentingScaleFactor is the scale applied to the presenting snapshot so
// that its top edge lands at TopInset when scaled about its center.
func PresentingScaleFactor(container graphics.Size, cfg *Config) float64 {
	if !cfg.ScaleEnabled || container.Height <= 0 {
		return 1
	}
	return 1 - 2*cfg.TopInset/container.Height
}

// FrictionTranslation maps a raw vertical drag to the card's on-screen
// offset. Without friction the card follows the finger downward only. With
// friction, movement halves below the elastic threshold, upward included, and
// decelerates logarithmically past it; the curve is continuous at the
// threshold.
func FrictionTranslation(raw float64, cfg *Config) float64 {
	if !cfg.FrictionEnabled {
		return graphics.PixelRound(math.Max(raw, 0), cfg.DisplayScale)
	}
	var t float64
	if raw < elasticThreshold {
		t = raw * translationFactor
	} else {
		over := raw - elasticThreshold
		t = frictionArc*math.Atan(over/elasticThreshold) + over/frictionLinear + elasticThreshold*translationFactor
	}
	return graphics.PixelRound(t, cfg.DisplayScale)
}

// SnapshotScale is the extra scale applied to the background snapshot while
// the card is dragged down by translation.
func SnapshotScale(translation float64) float64 {
	return 1 + translation/snapshotScaleDivisor
}

// DimAlphaFor is the dimming opacity for a drag translation, clamped to a
// valid opacity.
func DimAlphaFor(translation, baseAlpha float64) float64 {
	alpha := baseAlpha - (SnapshotScale(translation)-1)*dimScaleFactor
	return math.Min(math.Max(alpha, 0), 1)
}
