// Package gestures turns raw pointer events into pan and tap gestures and
// arbitrates which recognizers own a pointer.
//
// The host hit-tests each pointer-down and forwards it to the recognizers
// attached to the views under the pointer via AddPointer; subsequent events
// for that pointer go to HandleEvent. Recognizers compete in a
// [GestureArena]. A winner normally rejects every other member, unless the
// arena's Simultaneous policy lets both keep recognizing.
package gestures

import (
	"fmt"
	"time"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

// DefaultTouchSlop is the distance a pointer must travel before a drag is
// recognized.
const DefaultTouchSlop = 8.0

// PointerPhase is the lifecycle phase of a pointer event.
type PointerPhase int

const (
	// PointerPhaseDown is the first contact.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove is movement while in contact.
	PointerPhaseMove
	// PointerPhaseUp is the end of contact.
	PointerPhaseUp
	// PointerPhaseCancel means the system took the pointer away.
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a single pointer sample in container coordinates.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Phase     PointerPhase
	// Time is when the sample was taken. Zero means "now".
	Time time.Time
}

func (e PointerEvent) timestamp() time.Time {
	if e.Time.IsZero() {
		return time.Now()
	}
	return e.Time
}

// PointerHandler receives pointer events routed by the host.
type PointerHandler interface {
	// AddPointer is called with the pointer-down event when the handler's
	// view is hit.
	AddPointer(event PointerEvent)
	// HandleEvent is called for every later event of a tracked pointer.
	HandleEvent(event PointerEvent)
}
