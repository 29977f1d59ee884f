// Package testing provides fakes and a tester for exercising card
// transitions without a real view toolkit.
//
// # Quick Start
//
// A tester owns a FakeHost, a Transition wired to it and a FakeClock.
// Present, drag far enough past the friction curve, and settle:
//
//	func TestDragDismiss(t *testing.T) {
//	    tester := drifttest.NewHostTesterWithT(t)
//	    if err := tester.Present(); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    tester.DragFrom(graphics.Offset{X: 195, Y: 400}, graphics.Offset{Y: 1600}, 40)
//	    tester.PumpAndSettle(2 * time.Second)
//
//	    if tester.Transition.Phase() != card.PhaseDetached {
//	        t.Error("expected the card to be dismissed")
//	    }
//	}
//
// # Snapshot Testing
//
// A Snapshot records the phase, dismissal state, indicator and every fake
// view's frame, transform and opacity as JSON:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/presented.snapshot.json")
//
// Update snapshots with:
//
//	CARDSHEET_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Animations only advance when frames are pumped. Step the clock by hand to
// inspect a transition part way through:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/cardsheet/pkg/testing"
package testing
