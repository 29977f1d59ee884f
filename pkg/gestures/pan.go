package gestures

import (
	"math"
	"time"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

// DragStartDetails describes the moment a pan is recognized.
type DragStartDetails struct {
	// Position is where the pointer first touched down.
	Position graphics.Offset
	// Translation is the movement since touch-down at recognition time.
	Translation graphics.Offset
}

// DragUpdateDetails describes a pan movement.
type DragUpdateDetails struct {
	Position graphics.Offset
	// Delta is the movement since the previous update.
	Delta graphics.Offset
	// Translation is the total movement since touch-down.
	Translation graphics.Offset
}

// DragEndDetails describes the end of a pan.
type DragEndDetails struct {
	Position    graphics.Offset
	Translation graphics.Offset
	// Velocity is the smoothed release velocity in units per second.
	Velocity graphics.Offset
}

// PanRecognizer recognizes vertically dominant drags.
//
// Once the pointer leaves the touch slop vertically, ShouldBegin is asked
// whether to claim the pointer. Horizontal movement past the slop rejects
// the gesture so horizontal scrollers keep it. A disposed recognizer ignores
// every event and fires no further callbacks.
type PanRecognizer struct {
	Arena       *GestureArena
	ShouldBegin func(p *PanRecognizer) bool
	OnStart     func(DragStartDetails)
	OnUpdate    func(DragUpdateDetails)
	OnEnd       func(DragEndDetails)
	OnCancel    func()
	// Slop overrides DefaultTouchSlop when positive.
	Slop float64

	pointer  int64           // current pointer being tracked
	tracking bool            // true between down and up/cancel
	start    graphics.Offset // initial touch position
	last     graphics.Offset // most recent touch position
	lastTime time.Time       // timestamp of last update (for velocity)
	velocity graphics.Offset // smoothed velocity in units/second
	accepted bool            // true after winning the arena
	reject   bool            // true if the gesture was rejected
	started  bool            // true after OnStart has been called
	disposed bool
}

// NewPanRecognizer creates a pan recognizer competing in arena. A nil arena
// uses DefaultArena.
func NewPanRecognizer(arena *GestureArena) *PanRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &PanRecognizer{Arena: arena}
}

// AddPointer starts tracking a pointer-down.
func (p *PanRecognizer) AddPointer(event PointerEvent) {
	if p.disposed || p.Arena == nil {
		return
	}
	if p.tracking && !p.reject {
		// Single-pointer recognizer: extra fingers are ignored.
		return
	}
	p.pointer = event.PointerID
	p.tracking = true
	p.start = event.Position
	p.last = event.Position
	p.lastTime = event.timestamp()
	p.velocity = graphics.Offset{}
	p.accepted = false
	p.reject = false
	p.started = false
	p.Arena.Add(event.PointerID, p)
}

// HandleEvent processes move, up and cancel events for the tracked pointer.
func (p *PanRecognizer) HandleEvent(event PointerEvent) {
	if p.disposed || !p.tracking || event.PointerID != p.pointer || p.reject {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		p.handleMove(event)
	case PointerPhaseUp:
		p.handleUp(event)
	case PointerPhaseCancel:
		p.handleCancel()
	}
}

func (p *PanRecognizer) slop() float64 {
	if p.Slop > 0 {
		return p.Slop
	}
	return DefaultTouchSlop
}

func (p *PanRecognizer) handleMove(event PointerEvent) {
	now := event.timestamp()
	dt := now.Sub(p.lastTime).Seconds()

	total := event.Position.Sub(p.start)
	primary := math.Abs(total.Y)
	orthogonal := math.Abs(total.X)

	if !p.accepted {
		if primary > p.slop() && primary >= orthogonal {
			if p.ShouldBegin == nil || p.ShouldBegin(p) {
				p.Arena.Resolve(p.pointer, p)
			} else {
				p.reject = true
				p.Arena.Reject(p.pointer, p)
				return
			}
		} else if orthogonal > p.slop() {
			p.reject = true
			p.Arena.Reject(p.pointer, p)
			return
		}
		if p.reject || p.disposed {
			return
		}
	}

	delta := event.Position.Sub(p.last)
	if dt > 0 {
		// Exponential smoothing for stable release velocity
		p.velocity = graphics.Offset{
			X: p.velocity.X*0.8 + (delta.X/dt)*0.2,
			Y: p.velocity.Y*0.8 + (delta.Y/dt)*0.2,
		}
	}
	p.last = event.Position
	p.lastTime = now

	if p.accepted {
		p.ensureStarted()
		if p.OnUpdate != nil && !p.disposed {
			p.OnUpdate(DragUpdateDetails{
				Position:    event.Position,
				Delta:       delta,
				Translation: total,
			})
		}
	}
}

func (p *PanRecognizer) handleUp(event PointerEvent) {
	p.tracking = false
	if p.accepted {
		if p.OnEnd != nil {
			p.OnEnd(DragEndDetails{
				Position:    event.Position,
				Translation: event.Position.Sub(p.start),
				Velocity:    p.velocity,
			})
		}
		return
	}
	p.reject = true
	p.Arena.Reject(p.pointer, p)
}

func (p *PanRecognizer) handleCancel() {
	p.tracking = false
	if p.accepted && p.OnCancel != nil {
		p.OnCancel()
	}
	p.reject = true
	p.Arena.Reject(p.pointer, p)
}

// AcceptGesture implements ArenaMember.
func (p *PanRecognizer) AcceptGesture(pointerID int64) {
	if pointerID != p.pointer || p.reject || p.disposed {
		return
	}
	p.accepted = true
	p.ensureStarted()
}

// RejectGesture implements ArenaMember.
func (p *PanRecognizer) RejectGesture(pointerID int64) {
	if pointerID != p.pointer {
		return
	}
	p.reject = true
}

func (p *PanRecognizer) ensureStarted() {
	if p.started {
		return
	}
	p.started = true
	if p.OnStart != nil {
		p.OnStart(DragStartDetails{
			Position:    p.start,
			Translation: p.last.Sub(p.start),
		})
	}
}

// Translation returns the movement since touch-down of the tracked pointer.
func (p *PanRecognizer) Translation() graphics.Offset {
	return p.last.Sub(p.start)
}

// IsActive reports whether the recognizer has claimed a pointer that is
// still down.
func (p *PanRecognizer) IsActive() bool {
	return p.tracking && p.accepted && !p.disposed
}

// Dispose detaches the recognizer for good. Pending and future events are
// dropped without callbacks.
func (p *PanRecognizer) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.tracking && p.Arena != nil {
		p.Arena.Reject(p.pointer, p)
	}
	p.tracking = false
	p.ShouldBegin = nil
	p.OnStart = nil
	p.OnUpdate = nil
	p.OnEnd = nil
	p.OnCancel = nil
}

// IsDisposed reports whether Dispose was called.
func (p *PanRecognizer) IsDisposed() bool {
	return p.disposed
}
