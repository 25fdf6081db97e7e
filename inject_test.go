package cursorfx

import "testing"

func TestInjectClick(t *testing.T) {
	in := NewEbitenInput()
	var r recorder
	r.attach(in)

	in.InjectClick(50, 60)
	if in.Pending() != 2 {
		t.Fatalf("expected 2 queued events, got %d", in.Pending())
	}

	// Frame 1: press
	in.Poll()
	if in.Pending() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", in.Pending())
	}
	if len(r.events) != 1 || r.events[0] != EventPointerDown {
		t.Fatalf("frame 1 events = %v, want [down]", r.events)
	}

	// Frame 2: release fires click then up
	in.Poll()
	if in.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", in.Pending())
	}
	want := []EventType{EventPointerDown, EventClick, EventPointerUp}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, r.events[i], want[i])
		}
	}
	if r.last.X != 50 || r.last.Y != 60 || r.last.PointerID != 0 {
		t.Errorf("last event = %+v, want (50, 60) pointer 0", r.last)
	}
}

func TestInjectMove(t *testing.T) {
	in := NewEbitenInput()
	var r recorder
	r.attach(in)

	in.InjectMove(12, 34)
	in.Poll()

	if len(r.events) != 1 || r.events[0] != EventPointerMove {
		t.Fatalf("events = %v, want [move]", r.events)
	}
	if r.last.X != 12 || r.last.Y != 34 {
		t.Errorf("move at (%v, %v), want (12, 34)", r.last.X, r.last.Y)
	}
}

func TestInjectPath(t *testing.T) {
	in := NewEbitenInput()
	var xs []float64
	in.OnPointerMove(func(ev PointerEvent) { xs = append(xs, ev.X) })

	in.InjectPath(0, 0, 100, 0, 4)
	if in.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", in.Pending())
	}
	for in.Pending() > 0 {
		in.Poll()
	}

	want := []float64{25, 50, 75, 100}
	if len(xs) != len(want) {
		t.Fatalf("moves = %v, want %v", xs, want)
	}
	for i := range want {
		assertNear(t, "path x", xs[i], want[i])
	}
}

func TestInjectPathMinimumOneStep(t *testing.T) {
	in := NewEbitenInput()
	in.InjectPath(0, 0, 10, 10, 0)
	if in.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", in.Pending())
	}
}

func TestInjectPressDragRelease(t *testing.T) {
	in := NewEbitenInput()
	var r recorder
	r.attach(in)

	in.InjectPress(10, 10)
	in.InjectPress(20, 10)
	in.InjectRelease(20, 10)
	for in.Pending() > 0 {
		in.Poll()
	}

	// A held pointer that moves reports a move, not a second down.
	want := []EventType{EventPointerDown, EventPointerMove, EventClick, EventPointerUp}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, r.events[i], want[i])
		}
	}
}
