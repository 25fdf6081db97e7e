package cursorfx

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// ForceModel selects how vertical velocity evolves between frames.
type ForceModel uint8

const (
	// ForceDrift damps velocity every frame and nudges particles upward, so
	// they decelerate and float.
	ForceDrift ForceModel = iota
	// ForceImpulse kicks each particle once on its first step and then lets
	// light gravity act without damping.
	ForceImpulse
)

// String returns the model name used in configuration.
func (m ForceModel) String() string {
	switch m {
	case ForceDrift:
		return "drift"
	case ForceImpulse:
		return "impulse"
	default:
		return fmt.Sprintf("ForceModel(%d)", uint8(m))
	}
}

// UnmarshalText parses "drift" or "impulse".
func (m *ForceModel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "drift":
		*m = ForceDrift
	case "impulse":
		*m = ForceImpulse
	default:
		return fmt.Errorf("unknown force model %q", text)
	}
	return nil
}

// Forces tunes the per-frame physics step. All quantities are per frame.
type Forces struct {
	Model ForceModel `env:"FORCE_MODEL"`
	// Damping multiplies velocity every frame under ForceDrift.
	Damping float64 `env:"DAMPING"`
	// Lift is subtracted from vy every frame under ForceDrift.
	Lift float64 `env:"LIFT"`
	// Wander is the maximum random change of vx per frame.
	Wander float64 `env:"WANDER"`
	// Gravity is added to vy every frame under ForceImpulse.
	Gravity float64 `env:"GRAVITY"`
	// Impulse is the speed range of the one-time kick under ForceImpulse.
	Impulse Range `envPrefix:"IMPULSE_"`
	// AttractStrength scales the pull toward a held pointer.
	AttractStrength float64 `env:"ATTRACT_STRENGTH"`
	// FieldRadius limits the pointer pull to nearby particles.
	FieldRadius float64 `env:"FIELD_RADIUS"`
	// Walls makes particles bounce off the surface edges.
	Walls bool `env:"WALLS"`
	// Restitution is the fraction of speed kept after a wall bounce.
	Restitution float64 `env:"RESTITUTION"`
	// MaxSpeed clamps each velocity component. Zero disables the clamp.
	MaxSpeed float64 `env:"MAX_SPEED"`
}

// DefaultForces returns the drift model with pointer attraction and walls.
func DefaultForces() Forces {
	return Forces{
		Model:           ForceDrift,
		Damping:         0.98,
		Lift:            0.02,
		Wander:          0.1,
		Gravity:         0.05,
		Impulse:         Range{Min: 1, Max: 3},
		AttractStrength: 0.0008,
		FieldRadius:     200,
		Walls:           true,
		Restitution:     0.8,
		MaxSpeed:        12,
	}
}

// Attractor is the pointer as seen by the physics step. It pulls only while
// Active, i.e. while a button or touch is held.
type Attractor struct {
	Pos    Vec2
	Active bool
}

// Step advances every particle in store by one frame. bounds is the surface
// in local coordinates. Particles do not interact with each other.
func Step(store *Store, f Forces, cursor Attractor, bounds Rect, rng *rand.Rand) {
	ps := store.Particles()
	radiusSq := f.FieldRadius * f.FieldRadius
	walls := f.Walls && !bounds.Empty()

	for i := range ps {
		p := &ps[i]

		if f.Model == ForceImpulse && p.Lifespan == p.InitialLifespan {
			angle := rng.Float64() * 2 * math.Pi
			speed := f.Impulse.Random(rng)
			p.Vel.X += math.Cos(angle) * speed
			p.Vel.Y += math.Sin(angle) * speed
		}

		p.Pos = p.Pos.Add(p.Vel)

		if f.Wander > 0 {
			p.Vel.X += (rng.Float64()*2 - 1) * f.Wander
		}

		switch f.Model {
		case ForceDrift:
			p.Vel.X *= f.Damping
			p.Vel.Y = p.Vel.Y*f.Damping - f.Lift
		case ForceImpulse:
			p.Vel.Y += f.Gravity
		}

		if cursor.Active && f.AttractStrength > 0 {
			d := cursor.Pos.Sub(p.Pos)
			if d.LenSq() < radiusSq {
				p.Vel = p.Vel.Add(d.Scale(f.AttractStrength))
			}
		}

		if f.MaxSpeed > 0 {
			p.Vel.X = clamp(p.Vel.X, -f.MaxSpeed, f.MaxSpeed)
			p.Vel.Y = clamp(p.Vel.Y, -f.MaxSpeed, f.MaxSpeed)
		}

		if walls {
			bounce(p, bounds, f.Restitution)
		}

		p.Rotation += p.RotationSpeed
		p.Lifespan--
		p.Scale = scaleFor(p)
	}
}

// scaleFor returns Size * max(Lifespan/InitialLifespan, 0), or 0 when the
// result is not a finite positive number.
func scaleFor(p *Particle) float64 {
	if p.InitialLifespan <= 0 {
		return 0
	}
	s := p.Size * math.Max(float64(p.Lifespan)/float64(p.InitialLifespan), 0)
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return 0
	}
	return s
}

func bounce(p *Particle, b Rect, restitution float64) {
	if p.Pos.X < b.X {
		p.Pos.X = b.X
		p.Vel.X = -p.Vel.X * restitution
	} else if p.Pos.X > b.X+b.Width {
		p.Pos.X = b.X + b.Width
		p.Vel.X = -p.Vel.X * restitution
	}
	if p.Pos.Y < b.Y {
		p.Pos.Y = b.Y
		p.Vel.Y = -p.Vel.Y * restitution
	} else if p.Pos.Y > b.Y+b.Height {
		p.Pos.Y = b.Y + b.Height
		p.Vel.Y = -p.Vel.Y * restitution
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
