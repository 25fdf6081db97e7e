package cursorfx

import "math"

// defaultCapacity is the live particle ceiling used when a Store is created
// with a non-positive capacity.
const defaultCapacity = 100

// Particle is a short-lived glyph. Lifespan counts down in frames.
type Particle struct {
	Pos           Vec2
	Vel           Vec2
	Rotation      float64 // radians
	RotationSpeed float64 // radians per frame

	Lifespan        int
	InitialLifespan int

	// Size is the scale factor at birth; Scale is derived from it each step.
	Size  float64
	Scale float64

	// Sprite indexes the shared SpriteSet. Particles never own an image.
	Sprite int
}

// Opacity returns Lifespan/InitialLifespan clamped to [0, 1].
func (p *Particle) Opacity() float64 {
	if p.InitialLifespan <= 0 {
		return 0
	}
	return clamp01(float64(p.Lifespan) / float64(p.InitialLifespan))
}

// Expired reports whether the particle is due for removal.
func (p *Particle) Expired() bool {
	return p.Lifespan < 0
}

// Visible reports whether the particle should be painted this frame.
func (p *Particle) Visible() bool {
	if p.Lifespan < 0 {
		return false
	}
	return p.Scale > 0 && !math.IsInf(p.Scale, 0) && !math.IsNaN(p.Scale)
}

// Store owns every live particle. It is bounded: pushing into a full store
// drops the oldest particle. Order is insertion order.
type Store struct {
	particles []Particle
	capacity  int
}

// NewStore creates a Store holding at most capacity particles.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{
		particles: make([]Particle, 0, capacity),
		capacity:  capacity,
	}
}

// Push appends p, evicting the oldest particle if the store is full.
// Returns the number of particles evicted (0 or 1).
func (s *Store) Push(p Particle) int {
	if len(s.particles) < s.capacity {
		s.particles = append(s.particles, p)
		return 0
	}
	copy(s.particles, s.particles[1:])
	s.particles[len(s.particles)-1] = p
	return 1
}

// Len returns the number of live particles.
func (s *Store) Len() int {
	return len(s.particles)
}

// Cap returns the capacity ceiling.
func (s *Store) Cap() int {
	return s.capacity
}

// Particles returns the live particles. The slice is only valid until the
// next Push, Prune or Clear and MUST NOT be retained.
func (s *Store) Particles() []Particle {
	return s.particles
}

// Prune removes every expired particle, keeping the order of the rest.
// Returns the number removed.
func (s *Store) Prune() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Expired() {
			continue
		}
		if n != i {
			s.particles[n] = s.particles[i]
		}
		n++
	}
	removed := len(s.particles) - n
	clear(s.particles[n:])
	s.particles = s.particles[:n]
	return removed
}

// Clear removes all particles.
func (s *Store) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}
