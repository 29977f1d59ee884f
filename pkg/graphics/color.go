package graphics

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied color stored as ARGB (0xAARRGGBB). It
// implements color.Color.
type Color uint32

// RGB constructs an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color(0xFF<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Alpha returns the alpha component in [0, 1].
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / 255
}

// WithAlpha returns the color with alpha a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	a = math.Min(math.Max(a, 0), 1)
	return Color(uint32(math.Round(a*255))<<24 | uint32(c)&0x00FFFFFF)
}

// NRGBA converts c to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

// RGBA returns alpha-premultiplied components, as color.Color requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)
