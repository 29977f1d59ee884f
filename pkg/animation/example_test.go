package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// This example shows how to create and control an animation.
func ExampleAnimationController() {
	controller := animation.NewAnimationController(600 * time.Millisecond)
	controller.Curve = animation.CriticallyDampedCurve(0)

	// Listen for value changes
	controller.AddListener(func() {
		fmt.Printf("Value: %.2f\n", controller.Value)
	})

	// Animate forward (0 -> 1); the host pumps frames with StepTickers
	controller.Forward()

	// Abandon the animation without a status change
	controller.Stop()

	// Clean up when done
	controller.Dispose()
}

// This example shows how to listen for animation status changes.
func ExampleAnimationController_statusListener() {
	controller := animation.NewAnimationController(0)

	controller.AddStatusListener(func(status animation.AnimationStatus) {
		fmt.Println("status:", status)
	})

	controller.Forward()
	animation.StepTickers()
	controller.Dispose()

	// Output:
	// status: forward
	// status: completed
}

// This example shows how to tween a view frame.
func ExampleTweenRect() {
	offscreen := graphics.Rect{X: 0, Y: 800, Width: 400, Height: 757}
	target := graphics.Rect{X: 0, Y: 43, Width: 400, Height: 757}
	frames := animation.TweenRect(offscreen, target)

	mid := frames.Evaluate(0.5)
	fmt.Printf("Midpoint y: %.1f\n", mid.Y)

	// Output:
	// Midpoint y: 421.5
}

// This example shows how to use spring physics for natural motion.
func ExampleSpringSimulation() {
	sim := animation.NewSpringSimulation(
		animation.CriticalSpring(600*time.Millisecond),
		120,  // current position, e.g. a dragged card
		-120, // initial velocity toward rest
		0,    // rest position
	)

	dt := 1.0 / 60
	for !sim.Step(dt) {
		_ = sim.Position()
	}

	fmt.Printf("Final position: %.0f\n", sim.Position())

	// Output:
	// Final position: 0
}

// This example shows the critically damped easing curve.
func ExampleCriticallyDampedCurve() {
	curve := animation.CriticallyDampedCurve(0)

	fmt.Printf("Progress 0.0 -> %.2f\n", curve(0.0))
	fmt.Printf("Progress 1.0 -> %.2f\n", curve(1.0))

	// Output:
	// Progress 0.0 -> 0.00
	// Progress 1.0 -> 1.00
}
