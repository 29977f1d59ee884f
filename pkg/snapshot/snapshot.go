// Package snapshot renders the presenting background the way a card
// presentation shows it: a scaled, rounded, dimmed still of the content
// underneath the card.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// Capture renders v through its Snapshotter capability.
func Capture(v card.View) (image.Image, error) {
	s, ok := v.(card.Snapshotter)
	if !ok {
		return nil, fmt.Errorf("snapshot: %T cannot render a snapshot", v)
	}
	img, err := s.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return img, nil
}

// Compose draws src into dst scaled about the centre of dst, clips it to
// rounded corners of cornerRadius, and darkens the whole of dst with black
// at dimAlpha. Pixels outside the scaled snapshot are black.
func Compose(dst draw.Image, src image.Image, scale, dimAlpha, cornerRadius float64) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(graphics.ColorBlack), image.Point{}, draw.Src)

	target := scaledRect(bounds, scale)
	if !target.Empty() && !src.Bounds().Empty() {
		scaled := image.NewRGBA(target)
		draw.CatmullRom.Scale(scaled, target, src, src.Bounds(), draw.Src, nil)
		draw.DrawMask(dst, target, scaled, target.Min, &roundedMask{rect: target, radius: cornerRadius * scale}, target.Min, draw.Over)
	}

	if dimAlpha <= 0 {
		return
	}
	dim := graphics.ColorBlack.WithAlpha(dimAlpha)
	draw.Draw(dst, bounds, image.NewUniform(dim), image.Point{}, draw.Over)
}

func scaledRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale <= 0 {
		return image.Rectangle{}
	}
	w := float64(r.Dx()) * scale
	h := float64(r.Dy()) * scale
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	return image.Rect(
		int(math.Round(cx-w/2)), int(math.Round(cy-h/2)),
		int(math.Round(cx+w/2)), int(math.Round(cy+h/2)),
	)
}

// roundedMask is an alpha mask that is opaque inside a rounded rectangle.
type roundedMask struct {
	rect   image.Rectangle
	radius float64
}

func (m *roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m *roundedMask) Bounds() image.Rectangle { return m.rect }

func (m *roundedMask) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.rect) {
		return color.Transparent
	}
	r := math.Min(m.radius, math.Min(float64(m.rect.Dx()), float64(m.rect.Dy()))/2)
	if r <= 0 {
		return color.Opaque
	}
	// Sample at the pixel centre.
	px, py := float64(x)+0.5, float64(y)+0.5
	left, right := float64(m.rect.Min.X)+r, float64(m.rect.Max.X)-r
	top, bottom := float64(m.rect.Min.Y)+r, float64(m.rect.Max.Y)-r

	cx := math.Max(left, math.Min(px, right))
	cy := math.Max(top, math.Min(py, bottom))
	dist := math.Hypot(px-cx, py-cy)
	switch {
	case dist <= r-0.5:
		return color.Opaque
	case dist >= r+0.5:
		return color.Transparent
	}
	return color.Alpha{A: uint8(math.Round((r + 0.5 - dist) * 0xff))}
}
