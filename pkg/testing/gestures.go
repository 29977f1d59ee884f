package testing

import (
	"fmt"

	"github.com/go-drift/cardsheet/pkg/gestures"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// pointerState tracks the handlers hit by a pointer-down.
type pointerState struct {
	handlers []gestures.PointerHandler
	position graphics.Offset
}

// TapAt simulates a tap at pos.
func (t *HostTester) TapAt(pos graphics.Offset) error {
	id := t.allocPointerID()
	if err := t.SendPointerDown(pos, id); err != nil {
		return err
	}
	return t.SendPointerUp(pos, id)
}

// DragFrom simulates a drag from start by delta in steps moves, one frame
// apart, and releases it.
func (t *HostTester) DragFrom(start, delta graphics.Offset, steps int) error {
	id, err := t.DragHold(start, delta, steps)
	if err != nil {
		return err
	}
	return t.SendPointerUp(t.pointers[id].position, id)
}

// DragHold is DragFrom without the release. It returns the pointer ID so
// the caller can keep moving, release or cancel it.
func (t *HostTester) DragHold(start, delta graphics.Offset, steps int) (int64, error) {
	if steps < 1 {
		steps = 1
	}
	id := t.allocPointerID()
	if err := t.SendPointerDown(start, id); err != nil {
		return 0, err
	}
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		pos := graphics.Offset{X: start.X + delta.X*frac, Y: start.Y + delta.Y*frac}
		t.clock.Advance(FrameDuration)
		if err := t.SendPointerMove(pos, id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SendPointerDown hit-tests pos and sends a pointer-down to every handler
// under it.
func (t *HostTester) SendPointerDown(pos graphics.Offset, pointerID int64) error {
	if _, busy := t.pointers[pointerID]; busy {
		return fmt.Errorf("pointer %d is already down", pointerID)
	}
	handlers := t.Host.hitTest(pos)
	t.pointers[pointerID] = &pointerState{handlers: handlers, position: pos}
	event := t.event(pointerID, pos, gestures.PointerPhaseDown)
	for _, h := range handlers {
		h.AddPointer(event)
	}
	return nil
}

// SendPointerMove sends a pointer-move for a pointer that is down.
func (t *HostTester) SendPointerMove(pos graphics.Offset, pointerID int64) error {
	state := t.pointers[pointerID]
	if state == nil {
		return fmt.Errorf("pointer %d is not down", pointerID)
	}
	state.position = pos
	t.dispatch(state, t.event(pointerID, pos, gestures.PointerPhaseMove))
	return nil
}

// SendPointerUp releases a pointer.
func (t *HostTester) SendPointerUp(pos graphics.Offset, pointerID int64) error {
	state := t.pointers[pointerID]
	if state == nil {
		return fmt.Errorf("pointer %d is not down", pointerID)
	}
	state.position = pos
	t.dispatch(state, t.event(pointerID, pos, gestures.PointerPhaseUp))
	t.release(pointerID)
	return nil
}

// SendPointerCancel cancels a pointer.
func (t *HostTester) SendPointerCancel(pointerID int64) error {
	state := t.pointers[pointerID]
	if state == nil {
		return fmt.Errorf("pointer %d is not down", pointerID)
	}
	t.dispatch(state, t.event(pointerID, state.position, gestures.PointerPhaseCancel))
	t.release(pointerID)
	return nil
}

func (t *HostTester) dispatch(state *pointerState, event gestures.PointerEvent) {
	for _, h := range state.handlers {
		h.HandleEvent(event)
	}
}

func (t *HostTester) release(pointerID int64) {
	delete(t.pointers, pointerID)
	t.Host.Arena.Release(pointerID)
}

func (t *HostTester) event(id int64, pos graphics.Offset, phase gestures.PointerPhase) gestures.PointerEvent {
	return gestures.PointerEvent{PointerID: id, Position: pos, Phase: phase, Time: t.clock.Now()}
}

func (t *HostTester) allocPointerID() int64 {
	t.nextID++
	return t.nextID
}
