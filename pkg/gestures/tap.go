package gestures

import (
	"math"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

// TapRecognizer recognizes a down/up pair that stays within the touch slop.
// It claims the pointer only on release, so any drag that resolves first
// takes the pointer away from it.
type TapRecognizer struct {
	Arena *GestureArena
	OnTap func(position graphics.Offset)

	pointer  int64
	tracking bool
	start    graphics.Offset
	rejected bool
	accepted bool
	disposed bool
}

// NewTapRecognizer creates a tap recognizer competing in arena. A nil arena
// uses DefaultArena.
func NewTapRecognizer(arena *GestureArena) *TapRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &TapRecognizer{Arena: arena}
}

// AddPointer starts tracking a pointer-down.
func (t *TapRecognizer) AddPointer(event PointerEvent) {
	if t.disposed || t.tracking {
		return
	}
	t.pointer = event.PointerID
	t.tracking = true
	t.start = event.Position
	t.rejected = false
	t.accepted = false
	t.Arena.Add(event.PointerID, t)
}

// HandleEvent processes move, up and cancel events for the tracked pointer.
func (t *TapRecognizer) HandleEvent(event PointerEvent) {
	if t.disposed || !t.tracking || event.PointerID != t.pointer {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		d := event.Position.Sub(t.start)
		if !t.rejected && math.Hypot(d.X, d.Y) > DefaultTouchSlop {
			t.rejected = true
			t.Arena.Reject(t.pointer, t)
		}
	case PointerPhaseUp:
		t.tracking = false
		if t.rejected {
			return
		}
		t.Arena.Resolve(t.pointer, t)
		if t.accepted && !t.disposed && t.OnTap != nil {
			t.OnTap(event.Position)
		}
	case PointerPhaseCancel:
		t.tracking = false
		if !t.rejected {
			t.rejected = true
			t.Arena.Reject(t.pointer, t)
		}
	}
}

// AcceptGesture implements ArenaMember.
func (t *TapRecognizer) AcceptGesture(pointerID int64) {
	if pointerID == t.pointer && !t.rejected {
		t.accepted = true
	}
}

// RejectGesture implements ArenaMember.
func (t *TapRecognizer) RejectGesture(pointerID int64) {
	if pointerID == t.pointer {
		t.rejected = true
	}
}

// Dispose detaches the recognizer. Future events are ignored.
func (t *TapRecognizer) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	if t.tracking && !t.rejected {
		t.Arena.Reject(t.pointer, t)
	}
	t.tracking = false
	t.OnTap = nil
}
