package animation

import "github.com/go-drift/cardsheet/pkg/graphics"

// Tween interpolates between Begin and End values based on animation progress.
//
// Tween maps the 0-1 range of an [AnimationController] to any value range or
// type. Use the helper constructors for the types the transition animates, or
// create custom tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t. At t = 1 it returns End
// exactly, free of rounding.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil || t == 1 {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value using the controller's current value.
func (tw *Tween[T]) Transform(controller *AnimationController) T {
	return tw.Evaluate(controller.Value)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenRect creates a tween for view frames.
func TweenRect(begin, end graphics.Rect) *Tween[graphics.Rect] {
	return &Tween[graphics.Rect]{Begin: begin, End: end, Lerp: graphics.LerpRect}
}

// TweenTransform creates a tween for view transforms.
func TweenTransform(begin, end graphics.Transform) *Tween[graphics.Transform] {
	return &Tween[graphics.Transform]{Begin: begin, End: end, Lerp: graphics.LerpTransform}
}
