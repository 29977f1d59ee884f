package graphics

import "math"

// PixelRound rounds a logical value to the nearest device pixel for the
// given display scale (device pixels per logical unit). A non-positive scale
// is treated as 1.
func PixelRound(v, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return math.Round(v*scale) / scale
}
