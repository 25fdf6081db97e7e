package cursorfx

import (
	"math"
	"testing"
)

// stillForces disables every force so tests can enable one at a time.
func stillForces() Forces {
	return Forces{Model: ForceDrift, Damping: 1}
}

func storeWith(ps ...Particle) *Store {
	s := NewStore(len(ps) + 1)
	for _, p := range ps {
		s.Push(p)
	}
	return s
}

func TestStepDecrementsLifespan(t *testing.T) {
	s := storeWith(
		Particle{Lifespan: 100, InitialLifespan: 100, Size: 1},
		Particle{Lifespan: 1, InitialLifespan: 50, Size: 1},
	)
	Step(s, DefaultForces(), Attractor{}, Rect{Width: 100, Height: 100}, seeded(1))

	ps := s.Particles()
	if ps[0].Lifespan != 99 || ps[1].Lifespan != 0 {
		t.Errorf("lifespans = %d, %d, want 99, 0", ps[0].Lifespan, ps[1].Lifespan)
	}
}

func TestStepScaleFollowsLifespan(t *testing.T) {
	s := storeWith(Particle{Lifespan: 100, InitialLifespan: 100, Size: 0.8})
	rng := seeded(2)
	f := stillForces()

	Step(s, f, Attractor{}, Rect{}, rng)
	assertNear(t, "scale after 1 step", s.Particles()[0].Scale, 0.8*0.99)

	for range 99 {
		Step(s, f, Attractor{}, Rect{}, rng)
	}
	p := s.Particles()[0]
	if p.Lifespan != 0 || p.Scale != 0 {
		t.Errorf("at lifespan %d scale = %v, want 0", p.Lifespan, p.Scale)
	}
	Step(s, f, Attractor{}, Rect{}, rng)
	p = s.Particles()[0]
	if !p.Expired() || p.Scale != 0 || p.Opacity() != 0 {
		t.Errorf("expired particle: lifespan %d scale %v opacity %v", p.Lifespan, p.Scale, p.Opacity())
	}
}

func TestStepScaleNeverNegative(t *testing.T) {
	s := storeWith(Particle{Lifespan: 10, InitialLifespan: 10, Size: -2})
	Step(s, stillForces(), Attractor{}, Rect{}, seeded(3))
	if got := s.Particles()[0].Scale; got != 0 {
		t.Errorf("Scale = %v, want 0", got)
	}
}

func TestStepDrift(t *testing.T) {
	s := storeWith(Particle{
		Pos: Vec2{10, 10}, Vel: Vec2{2, 2},
		Lifespan: 10, InitialLifespan: 10, Size: 1,
	})
	f := Forces{Model: ForceDrift, Damping: 0.5, Lift: 0.1}
	Step(s, f, Attractor{}, Rect{}, seeded(4))

	p := s.Particles()[0]
	assertNear(t, "Pos.X", p.Pos.X, 12)
	assertNear(t, "Pos.Y", p.Pos.Y, 12)
	assertNear(t, "Vel.X", p.Vel.X, 1)
	assertNear(t, "Vel.Y", p.Vel.Y, 0.9)
}

func TestStepRotation(t *testing.T) {
	s := storeWith(Particle{Rotation: 1, RotationSpeed: 0.25, Lifespan: 10, InitialLifespan: 10, Size: 1})
	Step(s, stillForces(), Attractor{}, Rect{}, seeded(5))
	assertNear(t, "Rotation", s.Particles()[0].Rotation, 1.25)
}

func TestStepAttraction(t *testing.T) {
	f := stillForces()
	f.AttractStrength = 0.01
	f.FieldRadius = 100

	tests := []struct {
		name   string
		cursor Attractor
		wantVX float64
	}{
		{"held inside radius", Attractor{Pos: Vec2{60, 50}, Active: true}, 0.1},
		{"released", Attractor{Pos: Vec2{60, 50}}, 0},
		{"held outside radius", Attractor{Pos: Vec2{500, 50}, Active: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storeWith(Particle{Pos: Vec2{50, 50}, Lifespan: 10, InitialLifespan: 10, Size: 1})
			Step(s, f, tt.cursor, Rect{}, seeded(6))
			p := s.Particles()[0]
			assertNear(t, "Vel.X", p.Vel.X, tt.wantVX)
			assertNear(t, "Vel.Y", p.Vel.Y, 0)
		})
	}
}

func TestStepWallBounce(t *testing.T) {
	f := stillForces()
	f.Walls = true
	f.Restitution = 0.5
	bounds := Rect{Width: 100, Height: 100}

	s := storeWith(
		Particle{Pos: Vec2{99, 50}, Vel: Vec2{5, 0}, Lifespan: 10, InitialLifespan: 10, Size: 1},
		Particle{Pos: Vec2{50, 1}, Vel: Vec2{0, -4}, Lifespan: 10, InitialLifespan: 10, Size: 1},
	)
	Step(s, f, Attractor{}, bounds, seeded(7))

	ps := s.Particles()
	assertNear(t, "right Pos.X", ps[0].Pos.X, 100)
	assertNear(t, "right Vel.X", ps[0].Vel.X, -2.5)
	assertNear(t, "top Pos.Y", ps[1].Pos.Y, 0)
	assertNear(t, "top Vel.Y", ps[1].Vel.Y, 2)
}

func TestStepWallsNeedBounds(t *testing.T) {
	f := stillForces()
	f.Walls = true
	s := storeWith(Particle{Pos: Vec2{-5, -5}, Vel: Vec2{-1, -1}, Lifespan: 10, InitialLifespan: 10, Size: 1})
	Step(s, f, Attractor{}, Rect{}, seeded(8))
	assertNear(t, "Pos.X", s.Particles()[0].Pos.X, -6)
}

func TestStepMaxSpeed(t *testing.T) {
	f := stillForces()
	f.MaxSpeed = 12
	s := storeWith(Particle{Vel: Vec2{50, -50}, Lifespan: 10, InitialLifespan: 10, Size: 1})
	Step(s, f, Attractor{}, Rect{}, seeded(9))
	p := s.Particles()[0]
	assertNear(t, "Vel.X", p.Vel.X, 12)
	assertNear(t, "Vel.Y", p.Vel.Y, -12)
}

func TestStepImpulseOnce(t *testing.T) {
	f := Forces{Model: ForceImpulse, Impulse: Range{Min: 2, Max: 2}}
	s := storeWith(Particle{Lifespan: 10, InitialLifespan: 10, Size: 1})
	rng := seeded(10)

	Step(s, f, Attractor{}, Rect{}, rng)
	p := s.Particles()[0]
	assertNear(t, "speed after kick", math.Sqrt(p.Vel.LenSq()), 2)
	assertNear(t, "distance after kick", math.Sqrt(p.Pos.LenSq()), 2)

	vel := p.Vel
	Step(s, f, Attractor{}, Rect{}, rng)
	p = s.Particles()[0]
	assertNear(t, "Vel.X after second step", p.Vel.X, vel.X)
	assertNear(t, "Vel.Y after second step", p.Vel.Y, vel.Y)
}

func TestStepImpulseGravity(t *testing.T) {
	f := Forces{Model: ForceImpulse, Gravity: 0.15}
	s := storeWith(Particle{Lifespan: 10, InitialLifespan: 20, Size: 1})
	Step(s, f, Attractor{}, Rect{}, seeded(11))
	assertNear(t, "Vel.Y", s.Particles()[0].Vel.Y, 0.15)
}

func TestStepWanderBounded(t *testing.T) {
	f := stillForces()
	f.Wander = 0.1
	s := storeWith(Particle{Lifespan: 1000, InitialLifespan: 1000, Size: 1})
	rng := seeded(12)
	for range 50 {
		before := s.Particles()[0].Vel.X
		Step(s, f, Attractor{}, Rect{}, rng)
		if d := math.Abs(s.Particles()[0].Vel.X - before); d > f.Wander {
			t.Fatalf("wander changed vx by %v, above %v", d, f.Wander)
		}
	}
}

func TestStepDefaultForcesStayInBounds(t *testing.T) {
	bounds := Rect{Width: 200, Height: 200}
	sp := NewSpawner(DefaultPolicy(), seeded(13))
	s := NewStore(100)
	for range 20 {
		sp.Clicked(100, 100)
	}
	sp.Flush(s, 2)

	rng := seeded(14)
	cursor := Attractor{Pos: Vec2{150, 150}, Active: true}
	for range 300 {
		Step(s, DefaultForces(), cursor, bounds, rng)
		for _, p := range s.Particles() {
			if p.Pos.X < 0 || p.Pos.X > 200 || p.Pos.Y < 0 || p.Pos.Y > 200 {
				t.Fatalf("particle escaped to %+v", p.Pos)
			}
			if math.IsNaN(p.Scale) || p.Scale < 0 {
				t.Fatalf("scale %v", p.Scale)
			}
		}
		s.Prune()
	}
	if s.Len() != 0 {
		t.Errorf("%d particles alive after 300 frames, want 0", s.Len())
	}
}

func TestForceModelText(t *testing.T) {
	for _, m := range []ForceModel{ForceDrift, ForceImpulse} {
		var got ForceModel
		if err := got.UnmarshalText([]byte(m.String())); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", m, err)
		}
		if got != m {
			t.Errorf("round trip %v = %v", m, got)
		}
	}
	var m ForceModel
	if err := m.UnmarshalText([]byte("float")); err == nil {
		t.Error("UnmarshalText accepted an unknown model")
	}
}
