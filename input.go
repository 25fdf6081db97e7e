package cursorfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	// KeyboardPointer is the PointerID of clicks synthesized from Enter or
	// Space. Such clicks carry no coordinates.
	KeyboardPointer = -1
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown EventType = iota // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
	EventPointerMove                  // the pointer moved, held or not
	EventClick                        // press then release, or keyboard activation
	eventTypeCount
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// PointerEvent carries the screen position of a pointer event.
type PointerEvent struct {
	X, Y      float64
	PointerID int
	Button    MouseButton
}

// InputSource delivers pointer events to registered callbacks. Callbacks run
// synchronously inside Poll. A source must not be shared between sessions:
// each one polls it every frame.
type InputSource interface {
	OnPointerDown(fn func(PointerEvent)) CallbackHandle
	OnPointerUp(fn func(PointerEvent)) CallbackHandle
	OnPointerMove(fn func(PointerEvent)) CallbackHandle
	OnClick(fn func(PointerEvent)) CallbackHandle
	Poll()
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

// handlerRegistry holds callbacks per event type.
type handlerRegistry struct {
	handlers [eventTypeCount][]pointerHandler
	nextID   uint32
}

func (r *handlerRegistry) add(event EventType, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers[event] = append(r.handlers[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: event}
}

func (r *handlerRegistry) fire(event EventType, ev PointerEvent) {
	for _, h := range r.handlers[event] {
		h.fn(ev)
	}
}

func (r *handlerRegistry) count() int {
	n := 0
	for _, hs := range r.handlers {
		n += len(hs)
	}
	return n
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing a handle
// twice, or the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	button MouseButton // button captured at press time
}

// EbitenInput reads mouse, touch and keyboard state from Ebitengine once per
// Poll. Synthetic events queued with the Inject methods take precedence over
// real input, one per Poll.
type EbitenInput struct {
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent

	// KeyboardActivation makes Enter and Space fire a click with
	// PointerID KeyboardPointer.
	KeyboardActivation bool
}

// NewEbitenInput creates an input source with keyboard activation enabled.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{KeyboardActivation: true}
}

// OnPointerDown registers a callback for pointer down events.
func (in *EbitenInput) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerDown, fn)
}

// OnPointerUp registers a callback for pointer up events.
func (in *EbitenInput) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerUp, fn)
}

// OnPointerMove registers a callback for pointer move events.
func (in *EbitenInput) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerMove, fn)
}

// OnClick registers a callback for click events.
func (in *EbitenInput) OnClick(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventClick, fn)
}

// ActiveHandlers returns the number of registered callbacks.
func (in *EbitenInput) ActiveHandlers() int {
	return in.handlers.count()
}

// Poll processes one frame of input and fires callbacks.
func (in *EbitenInput) Poll() {
	if in.processInjectedInput() {
		return
	}
	in.processMousePointer()
	in.processTouchPointers()
	in.processKeyboard()
}

func (in *EbitenInput) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down keep the stored button so it does not
	// change mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	in.processPointer(0, float64(mx), float64(my), pressed, button)
}

func (in *EbitenInput) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (in *EbitenInput) processKeyboard() {
	if !in.KeyboardActivation {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.handlers.fire(EventClick, PointerEvent{PointerID: KeyboardPointer})
	}
}

// processPointer runs the press/release/move state machine for one pointer.
func (in *EbitenInput) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton) {
	ps := &in.pointers[pointerID]
	moved := x != ps.lastX || y != ps.lastY

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.lastX, ps.lastY = x, y
		in.handlers.fire(EventPointerDown, PointerEvent{X: x, Y: y, PointerID: pointerID, Button: button})
	case !pressed && ps.down:
		ev := PointerEvent{X: x, Y: y, PointerID: pointerID, Button: ps.button}
		in.handlers.fire(EventClick, ev)
		in.handlers.fire(EventPointerUp, ev)
		ps.down = false
		ps.lastX, ps.lastY = x, y
	case moved:
		in.handlers.fire(EventPointerMove, PointerEvent{X: x, Y: y, PointerID: pointerID, Button: ps.button})
		ps.lastX, ps.lastY = x, y
	}
}
