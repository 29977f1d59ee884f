package animation

import "math"

// Easing curves transform linear animation progress into natural-feeling
// motion. Each curve takes t in [0, 1] and returns the eased value. Set an
// [AnimationController]'s Curve field to apply one.

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// criticalSettle is ω·T for a critically damped spring that is within 0.1%
// of rest at the end of its duration: (1 + x)e^(-x) = 0.001 at x ≈ 9.2335.
const criticalSettle = 9.2335

// CriticallyDampedCurve returns the displacement of a critically damped
// spring (damping ratio 1, no overshoot) normalised to a unit duration.
//
// initialVelocity is expressed in units of total distance per unit duration,
// so 1 means the spring starts out moving as if it would cover the whole
// distance linearly over the duration. The curve is forced to exactly 1 at
// t = 1 so fixed-duration animations always land on their target.
func CriticallyDampedCurve(initialVelocity float64) func(float64) float64 {
	w := criticalSettle
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return 1 - (1+(w-initialVelocity)*t)*math.Exp(-w*t)
	}
}
