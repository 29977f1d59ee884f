package graphics

import "fmt"

// Transform is a 2D affine transform limited to scale and translation, the
// only kinds the card transition applies. Scaling is about the view's center,
// matching how hosts anchor layer transforms.
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
}

// IdentityTransform leaves a view untouched.
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// TranslationTransform moves a view by (dx, dy).
func TranslationTransform(dx, dy float64) Transform {
	return Transform{ScaleX: 1, ScaleY: 1, TranslateX: dx, TranslateY: dy}
}

// ScaleTransform scales a view uniformly.
func ScaleTransform(s float64) Transform {
	return Transform{ScaleX: s, ScaleY: s}
}

// IsIdentity reports whether t has no visible effect.
func (t Transform) IsIdentity() bool {
	return t.ApproxEqual(IdentityTransform)
}

// ApproxEqual reports whether t and other are equal within epsilon.
func (t Transform) ApproxEqual(other Transform) bool {
	return floatEqual(t.ScaleX, other.ScaleX) &&
		floatEqual(t.ScaleY, other.ScaleY) &&
		floatEqual(t.TranslateX, other.TranslateX) &&
		floatEqual(t.TranslateY, other.TranslateY)
}

// Concat applies t first, then other.
func (t Transform) Concat(other Transform) Transform {
	return Transform{
		ScaleX:     t.ScaleX * other.ScaleX,
		ScaleY:     t.ScaleY * other.ScaleY,
		TranslateX: t.TranslateX*other.ScaleX + other.TranslateX,
		TranslateY: t.TranslateY*other.ScaleY + other.TranslateY,
	}
}

// Apply maps r through t, scaling about the center of r.
func (t Transform) Apply(r Rect) Rect {
	c := r.Center()
	w := r.Width * t.ScaleX
	h := r.Height * t.ScaleY
	return Rect{
		X:      c.X - w*0.5 + t.TranslateX,
		Y:      c.Y - h*0.5 + t.TranslateY,
		Width:  w,
		Height: h,
	}
}

// LerpTransform interpolates between two transforms component-wise.
func LerpTransform(a, b Transform, t float64) Transform {
	return Transform{
		ScaleX:     a.ScaleX + (b.ScaleX-a.ScaleX)*t,
		ScaleY:     a.ScaleY + (b.ScaleY-a.ScaleY)*t,
		TranslateX: a.TranslateX + (b.TranslateX-a.TranslateX)*t,
		TranslateY: a.TranslateY + (b.TranslateY-a.TranslateY)*t,
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("scale(%.4g,%.4g) translate(%.4g,%.4g)", t.ScaleX, t.ScaleY, t.TranslateX, t.TranslateY)
}
